package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlide_Validate(t *testing.T) {
	tests := []struct {
		name    string
		slide   Slide
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid slide",
			slide: Slide{
				Title:   "Introduction",
				Bullets: []string{"Point 1", "Point 2"},
			},
			wantErr: false,
		},
		{
			name: "empty title",
			slide: Slide{
				Title:   "",
				Bullets: []string{"Point 1"},
			},
			wantErr: true,
			errMsg:  "slide title cannot be empty",
		},
		{
			name: "whitespace only title",
			slide: Slide{
				Title:   "   \t ",
				Bullets: []string{"Point 1"},
			},
			wantErr: true,
			errMsg:  "slide title cannot be empty",
		},
		{
			name: "no bullets",
			slide: Slide{
				Title:   "Introduction",
				Bullets: nil,
			},
			wantErr: true,
			errMsg:  "at least one non-empty bullet",
		},
		{
			name: "only empty bullets",
			slide: Slide{
				Title:   "Introduction",
				Bullets: []string{"", "  ", "\n"},
			},
			wantErr: true,
			errMsg:  "at least one non-empty bullet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.slide.Validate()

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSlide_Normalize(t *testing.T) {
	slide := Slide{
		Title:   "  Energy Outlook  ",
		Bullets: []string{" Solar is growing ", "", "Wind capacity doubled", "   "},
	}

	require.True(t, slide.Normalize())
	assert.Equal(t, "Energy Outlook", slide.Title)
	assert.Equal(t, []string{"Solar is growing", "Wind capacity doubled"}, slide.Bullets)
}

func TestNormalizeSlides(t *testing.T) {
	t.Run("drops invalid slides and preserves order", func(t *testing.T) {
		slides := []Slide{
			{Title: "First", Bullets: []string{"a"}},
			{Title: "", Bullets: []string{"b"}},
			{Title: "Second", Bullets: []string{"  "}},
			{Title: "Third", Bullets: []string{"c", "d"}},
		}

		valid := NormalizeSlides(slides, MaxSlideCount)

		require.Len(t, valid, 2)
		assert.Equal(t, "First", valid[0].Title)
		assert.Equal(t, "Third", valid[1].Title)
	})

	t.Run("truncates to max", func(t *testing.T) {
		slides := make([]Slide, 30)
		for i := range slides {
			slides[i] = Slide{Title: "Slide", Bullets: []string{"point"}}
		}

		valid := NormalizeSlides(slides, MaxSlideCount)

		assert.Len(t, valid, MaxSlideCount)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, NormalizeSlides(nil, MaxSlideCount))
	})
}
