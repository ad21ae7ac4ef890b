package templates

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/slidecraft/slidecraft/internal/domain/entities"
	"github.com/slidecraft/slidecraft/internal/domain/ports"
)

const (
	templateExtension = ".pptx"
	thumbnailDirName  = "thumbnails"
	thumbnailExt      = ".png"
)

// Repository discovers deck templates in a directory on disk.
// Labels are derived from file names: "business_pitch.pptx" becomes
// "Business Pitch". Thumbnails are optional PNGs under thumbnails/.
type Repository struct {
	dir    string
	titler cases.Caser
}

// NewRepository creates a template repository rooted at dir
func NewRepository(dir string) *Repository {
	return &Repository{
		dir:    dir,
		titler: cases.Title(language.Und),
	}
}

// List returns all discovered templates, ordered by file name
func (r *Repository) List(ctx context.Context) ([]entities.TemplateInfo, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("reading templates directory %s: %w", r.dir, err)
	}

	var templates []entities.TemplateInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), templateExtension) {
			continue
		}
		templates = append(templates, r.describe(entry.Name()))
	}

	sort.Slice(templates, func(i, j int) bool {
		return templates[i].Name < templates[j].Name
	})

	return templates, nil
}

// Get resolves a template by file name or display label. An empty name
// returns the first available template.
func (r *Repository) Get(ctx context.Context, name string) (*entities.TemplateInfo, error) {
	templates, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	if len(templates) == 0 {
		return nil, fmt.Errorf("%w: no templates in %s", ports.ErrTemplateNotFound, r.dir)
	}

	if name == "" {
		return &templates[0], nil
	}

	for i := range templates {
		if templates[i].Name == name || templates[i].Label == name {
			return &templates[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ports.ErrTemplateNotFound, name)
}

// describe builds the template metadata for a file name
func (r *Repository) describe(name string) entities.TemplateInfo {
	base := strings.TrimSuffix(name, templateExtension)
	label := r.titler.String(strings.ReplaceAll(base, "_", " "))

	info := entities.TemplateInfo{
		Name:  name,
		Label: label,
		Path:  filepath.Join(r.dir, name),
	}

	thumbnail := filepath.Join(r.dir, thumbnailDirName, base+thumbnailExt)
	if _, err := os.Stat(thumbnail); err == nil {
		info.ThumbnailPath = thumbnail
	}

	return info
}

// Ensure Repository implements the port
var _ ports.TemplateRepository = (*Repository)(nil)
