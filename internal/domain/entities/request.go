package entities

import (
	"errors"
	"strings"
)

const (
	// DefaultSlideCount is used when the prompt does not specify one
	DefaultSlideCount = 7

	// MaxSlideCount is the hard ceiling on slides per deck
	MaxSlideCount = 20
)

// DeckRequest captures everything needed for one generation run.
// It is constructed once per request and never mutated afterwards.
type DeckRequest struct {
	// Topic is the cleaned presentation topic (slide-count fragment removed)
	Topic string `json:"topic"`

	// SlideCount is the requested number of slides, always in [1, MaxSlideCount]
	SlideCount int `json:"slide_count"`

	// UseLiveContext enables web-search enrichment of the prompt
	UseLiveContext bool `json:"use_live_context"`

	// Model is the backend model identifier (e.g. "openai/gpt-3.5-turbo")
	Model string `json:"model"`

	// Template is the template file name the deck is rendered from
	Template string `json:"template"`
}

// Validate ensures the request is complete and within bounds
func (r *DeckRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return errors.New("topic cannot be empty")
	}

	if r.SlideCount < 1 || r.SlideCount > MaxSlideCount {
		return errors.New("slide count out of range")
	}

	if r.Model == "" {
		return errors.New("model identifier is required")
	}

	return nil
}

// ClampSlideCount bounds a requested slide count to [1, MaxSlideCount]
func ClampSlideCount(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxSlideCount {
		return MaxSlideCount
	}
	return n
}

// Snippet is a short search-result fragment used to ground generation
// in current information. It has no identity beyond its text.
type Snippet string
