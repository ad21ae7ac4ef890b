package ports

import (
	"context"

	"github.com/slidecraft/slidecraft/internal/domain/entities"
)

// TemplateRepository discovers deck templates available on disk.
type TemplateRepository interface {
	// List returns all discovered templates, ordered by file name
	List(ctx context.Context) ([]entities.TemplateInfo, error)

	// Get resolves a template by file name or display label
	Get(ctx context.Context, name string) (*entities.TemplateInfo, error)
}
