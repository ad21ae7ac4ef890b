package pptx

import (
	"context"
	"errors"
	"fmt"

	"github.com/slidecraft/slidecraft/internal/domain/entities"
	"github.com/slidecraft/slidecraft/internal/domain/ports"
)

// defaultBodyFontSize is 18pt expressed in hundredths of a point, the
// unit DrawingML uses for run sizes
const defaultBodyFontSize = 1800

// Renderer implements ports.DeckRenderer by rewriting .pptx templates.
type Renderer struct {
	bodyFontSize int
}

// NewRenderer creates a renderer with the default body font size
func NewRenderer() *Renderer {
	return &Renderer{bodyFontSize: defaultBodyFontSize}
}

// Render opens the template, selects the first layout with title and
// body placeholders, drops the template's single authored slide if
// present, appends one slide per entry and writes the deck.
func (r *Renderer) Render(ctx context.Context, slides []entities.Slide, templatePath string, outputPath string) error {
	if len(slides) == 0 {
		return errors.New("no slides to render")
	}

	tpl, err := OpenTemplate(templatePath)
	if err != nil {
		return err
	}

	return r.render(ctx, tpl, slides, outputPath)
}

// render runs the layout selection and slide emission on an opened template
func (r *Renderer) render(ctx context.Context, tpl *Template, slides []entities.Slide, outputPath string) error {
	layout, err := tpl.FindContentLayout()
	if err != nil {
		return err
	}

	if err := tpl.RemoveAuthoredSlide(); err != nil {
		return fmt.Errorf("removing authored slide: %w", err)
	}

	for i, slide := range slides {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := slide.Validate(); err != nil {
			return fmt.Errorf("slide %d: %w", i+1, err)
		}

		if err := tpl.AddSlide(layout, slide.Title, slide.NonEmptyBullets(), r.bodyFontSize); err != nil {
			return fmt.Errorf("adding slide %d: %w", i+1, err)
		}
	}

	return tpl.WriteFile(outputPath)
}

// Ensure Renderer implements the port
var _ ports.DeckRenderer = (*Renderer)(nil)
