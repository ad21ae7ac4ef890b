package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slidecraft/slidecraft/internal/domain/entities"
)

func TestInterpretPrompt(t *testing.T) {
	tests := []struct {
		name      string
		prompt    string
		wantTopic string
		wantCount int
	}{
		{
			name:      "hyphenated count",
			prompt:    "Create a 5-slide presentation about renewable energy",
			wantTopic: "Create a presentation about renewable energy",
			wantCount: 5,
		},
		{
			name:      "spaced count",
			prompt:    "10 slides on the history of aviation",
			wantTopic: "on the history of aviation",
			wantCount: 10,
		},
		{
			name:      "no count uses default",
			prompt:    "Quarterly sales review for the board",
			wantTopic: "Quarterly sales review for the board",
			wantCount: entities.DefaultSlideCount,
		},
		{
			name:      "count above ceiling is clamped",
			prompt:    "Make a 50-slide deep dive into Kubernetes",
			wantTopic: "Make a deep dive into Kubernetes",
			wantCount: entities.MaxSlideCount,
		},
		{
			name:      "zero count is clamped up",
			prompt:    "0 slides about nothing",
			wantTopic: "about nothing",
			wantCount: 1,
		},
		{
			name:      "uppercase hint",
			prompt:    "Prepare a 3 SLIDE pitch for investors",
			wantTopic: "Prepare a pitch for investors",
			wantCount: 3,
		},
		{
			name:      "whitespace collapsed after removal",
			prompt:    "An overview,  4 slides , of cloud pricing",
			wantTopic: "An overview, , of cloud pricing",
			wantCount: 4,
		},
		{
			name:      "first hint wins",
			prompt:    "6 slides comparing 12 slide templates",
			wantTopic: "comparing templates",
			wantCount: 6,
		},
		{
			name:      "empty prompt",
			prompt:    "",
			wantTopic: "",
			wantCount: entities.DefaultSlideCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topic, count := InterpretPrompt(tt.prompt)

			assert.Equal(t, tt.wantTopic, topic)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}
