package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/slidecraft/slidecraft/internal/domain/entities"
	"github.com/slidecraft/slidecraft/internal/domain/ports"
)

// DeckOptions carries the user-selected configuration for one run.
type DeckOptions struct {
	// Model is a display label or backend id; empty selects the default
	Model string

	// Template is a template file name or label; empty selects the default
	Template string

	// UseLiveContext enables web-search enrichment
	UseLiveContext bool

	// OutputPath is the destination deck file; empty means a fresh
	// temporary file
	OutputPath string
}

// GeneratedDeck is the result of a successful pipeline run.
type GeneratedDeck struct {
	Request entities.DeckRequest
	Slides  []entities.Slide
	Path    string
}

// DeckDefaults are the configured fallbacks applied when a request
// leaves a choice empty.
type DeckDefaults struct {
	// Model is a display label or backend id from the config file,
	// SLIDECRAFT_MODEL or the --model flag
	Model string

	// Template is the configured default template file or label
	Template string
}

// DeckService orchestrates the generation pipeline: interpret the
// prompt, optionally enrich it with search snippets, generate slide
// content and render the deck file.
type DeckService struct {
	searcher  ports.SnippetSearcher
	generator ports.ContentGenerator
	renderer  ports.DeckRenderer
	templates ports.TemplateRepository
	catalog   entities.ModelCatalog
	defaults  DeckDefaults
	search    entities.SearchConfig
	logger    *log.Logger
}

// NewDeckService creates a new deck generation service
func NewDeckService(
	searcher ports.SnippetSearcher,
	generator ports.ContentGenerator,
	renderer ports.DeckRenderer,
	templates ports.TemplateRepository,
	catalog entities.ModelCatalog,
	defaults DeckDefaults,
	search entities.SearchConfig,
	logger *log.Logger,
) *DeckService {
	if logger == nil {
		logger = log.Default()
	}
	return &DeckService{
		searcher:  searcher,
		generator: generator,
		renderer:  renderer,
		templates: templates,
		catalog:   catalog,
		defaults:  defaults,
		search:    search,
		logger:    logger,
	}
}

// Catalog returns the model catalog the service resolves names against
func (s *DeckService) Catalog() entities.ModelCatalog {
	return s.catalog
}

// SearchEnabled reports whether live-context enrichment is configured on
func (s *DeckService) SearchEnabled() bool {
	return s.search.Enabled
}

// BuildRequest turns a raw prompt plus options into a validated request.
func (s *DeckService) BuildRequest(ctx context.Context, rawPrompt string, opts DeckOptions) (*entities.DeckRequest, error) {
	topic, slideCount := InterpretPrompt(rawPrompt)
	if topic == "" {
		return nil, errors.New("prompt must contain a presentation topic")
	}

	modelName := opts.Model
	if modelName == "" {
		modelName = s.defaults.Model
	}
	if modelName == "" {
		modelName = s.catalog.Default().Label
	}
	modelID, err := s.catalog.Resolve(modelName)
	if err != nil {
		return nil, fmt.Errorf("resolving model: %w", err)
	}

	templateName := opts.Template
	if templateName == "" {
		templateName = s.defaults.Template
	}
	tpl, err := s.templates.Get(ctx, templateName)
	if err != nil {
		return nil, fmt.Errorf("resolving template: %w", err)
	}

	req := &entities.DeckRequest{
		Topic:          topic,
		SlideCount:     slideCount,
		UseLiveContext: opts.UseLiveContext,
		Model:          modelID,
		Template:       tpl.Name,
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid deck request: %w", err)
	}

	return req, nil
}

// Generate runs the full pipeline for a raw prompt. Progress events are
// reported through notify; pass ports.NopProgress to discard them.
func (s *DeckService) Generate(ctx context.Context, jobID string, rawPrompt string, opts DeckOptions, notify ports.ProgressNotifier) (*GeneratedDeck, error) {
	if notify == nil {
		notify = ports.NopProgress
	}

	s.notify(notify, jobID, entities.StageAnalyzing, "Analyzing request...", 0)

	req, err := s.BuildRequest(ctx, rawPrompt, opts)
	if err != nil {
		s.notify(notify, jobID, entities.StageFailed, err.Error(), 0)
		return nil, err
	}

	// Enrichment is best-effort: any searcher failure degrades to an
	// empty snippet set.
	var snippets []entities.Snippet
	if req.UseLiveContext && s.searcher != nil {
		s.notify(notify, jobID, entities.StageSearching, "Gathering information...", 0)

		searchCtx, cancel := context.WithTimeout(ctx, s.search.GetTimeout())
		snippets, err = s.searcher.Search(searchCtx, req.Topic, s.search.GetMaxSnippets())
		cancel()
		if err != nil {
			s.logger.Printf("[WARN] context search failed, continuing without snippets: %v", err)
			snippets = nil
		}
	}

	s.notify(notify, jobID, entities.StageGenerating, "Generating slide content...", 1)

	// Attach the notifier so the generator can surface retry notices
	genCtx := ports.ContextWithProgress(ctx, jobID, notify)
	slides, err := s.generator.GenerateSlides(genCtx, *req, snippets)
	if err != nil {
		s.notify(notify, jobID, entities.StageFailed, "Generation failed", 0)
		return nil, fmt.Errorf("generating slides: %w", err)
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath, err = tempDeckPath()
		if err != nil {
			s.notify(notify, jobID, entities.StageFailed, "Could not create output file", 0)
			return nil, err
		}
	}

	tpl, err := s.templates.Get(ctx, req.Template)
	if err != nil {
		s.notify(notify, jobID, entities.StageFailed, "Template unavailable", 0)
		return nil, fmt.Errorf("resolving template: %w", err)
	}

	s.notify(notify, jobID, entities.StageRendering, "Designing presentation...", 0)

	if err := s.renderer.Render(ctx, slides, tpl.Path, outputPath); err != nil {
		s.notify(notify, jobID, entities.StageFailed, "Rendering failed", 0)
		return nil, fmt.Errorf("rendering deck: %w", err)
	}

	s.notify(notify, jobID, entities.StageComplete, "Presentation generated successfully", 0)

	return &GeneratedDeck{
		Request: *req,
		Slides:  slides,
		Path:    outputPath,
	}, nil
}

func (s *DeckService) notify(notifier ports.ProgressNotifier, jobID string, stage entities.ProgressStage, msg string, attempt int) {
	notifier.Notify(entities.ProgressEvent{
		JobID:     jobID,
		Stage:     stage,
		Message:   msg,
		Attempt:   attempt,
		Timestamp: time.Now(),
	})
}

// tempDeckPath reserves a fresh temporary file for the rendered deck
func tempDeckPath() (string, error) {
	f, err := os.CreateTemp("", "slidecraft-*.pptx")
	if err != nil {
		return "", fmt.Errorf("creating temp deck file: %w", err)
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing temp deck file: %w", err)
	}
	return path, nil
}

// DownloadFilename returns the date-stamped name offered to the user
func DownloadFilename(now time.Time) string {
	return "presentation_" + now.Format("20060102") + ".pptx"
}
