package ports

import (
	"context"

	"github.com/slidecraft/slidecraft/internal/domain/entities"
)

// SnippetSearcher defines the interface to a web search backend used to
// enrich generation prompts with current information.
//
// Callers treat any error as "no snippets available": enrichment is
// strictly best-effort and must never fail a generation run.
type SnippetSearcher interface {
	// Search returns up to max non-empty result snippets for the query
	Search(ctx context.Context, query string, max int) ([]entities.Snippet, error)
}
