package entities

import (
	"errors"
	"strings"
)

// Slide represents a single generated slide: a title plus bullet points.
type Slide struct {
	// Title is the slide headline
	Title string `json:"title"`

	// Bullets contains the slide body as ordered bullet points
	Bullets []string `json:"bullets"`
}

// Validate ensures the slide carries renderable content
func (s *Slide) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return errors.New("slide title cannot be empty")
	}

	if len(s.NonEmptyBullets()) == 0 {
		return errors.New("slide must have at least one non-empty bullet")
	}

	return nil
}

// NonEmptyBullets returns the slide bullets with whitespace trimmed and
// empty entries removed
func (s *Slide) NonEmptyBullets() []string {
	bullets := make([]string, 0, len(s.Bullets))
	for _, b := range s.Bullets {
		if trimmed := strings.TrimSpace(b); trimmed != "" {
			bullets = append(bullets, trimmed)
		}
	}
	return bullets
}

// Normalize trims the title and drops empty bullets in place.
// Returns false if nothing renderable remains.
func (s *Slide) Normalize() bool {
	s.Title = strings.TrimSpace(s.Title)
	s.Bullets = s.NonEmptyBullets()
	return s.Title != "" && len(s.Bullets) > 0
}

// NormalizeSlides trims every slide, drops the unrenderable ones, and
// truncates the result to max entries. Order is preserved.
func NormalizeSlides(slides []Slide, max int) []Slide {
	valid := make([]Slide, 0, len(slides))
	for _, slide := range slides {
		if slide.Normalize() {
			valid = append(valid, slide)
		}
	}
	if max > 0 && len(valid) > max {
		valid = valid[:max]
	}
	return valid
}
