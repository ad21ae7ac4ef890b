package ports

import (
	"context"

	"github.com/slidecraft/slidecraft/internal/domain/entities"
)

// DeckRenderer defines the interface for writing a slide sequence into
// a deck file based on a pre-made template.
type DeckRenderer interface {
	// Render opens the template, lays out one slide per entry and writes
	// the resulting deck to outputPath.
	Render(ctx context.Context, slides []entities.Slide, templatePath string, outputPath string) error
}
