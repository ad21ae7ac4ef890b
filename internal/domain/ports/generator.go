package ports

import (
	"context"

	"github.com/slidecraft/slidecraft/internal/domain/entities"
)

// ContentGenerator defines the interface to the text-generation backend.
// Implementations turn a deck request (plus optional search snippets)
// into an ordered slide sequence.
type ContentGenerator interface {
	// GenerateSlides produces the slide content for the request. The
	// returned slides are normalized: non-empty titles, at least one
	// non-empty bullet each, at most entities.MaxSlideCount entries.
	GenerateSlides(ctx context.Context, req entities.DeckRequest, snippets []entities.Snippet) ([]entities.Slide, error)
}
