package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slidecraft/slidecraft/internal/domain/entities"
	"github.com/slidecraft/slidecraft/internal/domain/ports"
)

// MockSnippetSearcher is a mock implementation of ports.SnippetSearcher
type MockSnippetSearcher struct {
	mock.Mock
}

func (m *MockSnippetSearcher) Search(ctx context.Context, query string, max int) ([]entities.Snippet, error) {
	args := m.Called(ctx, query, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Snippet), args.Error(1)
}

// MockContentGenerator is a mock implementation of ports.ContentGenerator
type MockContentGenerator struct {
	mock.Mock
}

func (m *MockContentGenerator) GenerateSlides(ctx context.Context, req entities.DeckRequest, snippets []entities.Snippet) ([]entities.Slide, error) {
	args := m.Called(ctx, req, snippets)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Slide), args.Error(1)
}

// MockDeckRenderer is a mock implementation of ports.DeckRenderer
type MockDeckRenderer struct {
	mock.Mock
}

func (m *MockDeckRenderer) Render(ctx context.Context, slides []entities.Slide, templatePath string, outputPath string) error {
	args := m.Called(ctx, slides, templatePath, outputPath)
	return args.Error(0)
}

// MockTemplateRepository is a mock implementation of ports.TemplateRepository
type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) List(ctx context.Context) ([]entities.TemplateInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.TemplateInfo), args.Error(1)
}

func (m *MockTemplateRepository) Get(ctx context.Context, name string) (*entities.TemplateInfo, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TemplateInfo), args.Error(1)
}

func testTemplate() *entities.TemplateInfo {
	return &entities.TemplateInfo{
		Name:  "corporate.pptx",
		Label: "Corporate",
		Path:  "templates/corporate.pptx",
	}
}

func testSlides() []entities.Slide {
	return []entities.Slide{
		{Title: "Overview", Bullets: []string{"Point one", "Point two"}},
		{Title: "Details", Bullets: []string{"More depth"}},
	}
}

func newTestService(
	searcher *MockSnippetSearcher,
	generator *MockContentGenerator,
	renderer *MockDeckRenderer,
	templates *MockTemplateRepository,
) *DeckService {
	return NewDeckService(
		searcher,
		generator,
		renderer,
		templates,
		entities.DefaultModelCatalog(),
		DeckDefaults{},
		entities.SearchConfig{Enabled: true},
		nil,
	)
}

func TestDeckService_BuildRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves model and template", func(t *testing.T) {
		templates := new(MockTemplateRepository)
		templates.On("Get", ctx, "Corporate").Return(testTemplate(), nil)

		svc := newTestService(nil, nil, nil, templates)

		req, err := svc.BuildRequest(ctx, "Create a 5-slide presentation about renewable energy", DeckOptions{
			Model:    "Mistral 7B",
			Template: "Corporate",
		})

		require.NoError(t, err)
		assert.Equal(t, "Create a presentation about renewable energy", req.Topic)
		assert.Equal(t, 5, req.SlideCount)
		assert.Equal(t, "mistralai/mistral-7b-instruct", req.Model)
		assert.Equal(t, "corporate.pptx", req.Template)
		templates.AssertExpectations(t)
	})

	t.Run("empty model selects catalog default", func(t *testing.T) {
		templates := new(MockTemplateRepository)
		templates.On("Get", ctx, "").Return(testTemplate(), nil)

		svc := newTestService(nil, nil, nil, templates)

		req, err := svc.BuildRequest(ctx, "Renewable energy", DeckOptions{})

		require.NoError(t, err)
		assert.Equal(t, "mistralai/mistral-7b-instruct", req.Model)
		assert.Equal(t, entities.DefaultSlideCount, req.SlideCount)
	})

	t.Run("configured defaults fill empty options", func(t *testing.T) {
		templates := new(MockTemplateRepository)
		templates.On("Get", ctx, "Corporate").Return(testTemplate(), nil)

		svc := NewDeckService(
			nil, nil, nil, templates,
			entities.DefaultModelCatalog(),
			DeckDefaults{Model: "openai/gpt-3.5-turbo", Template: "Corporate"},
			entities.SearchConfig{},
			nil,
		)

		req, err := svc.BuildRequest(ctx, "Renewable energy", DeckOptions{})

		require.NoError(t, err)
		assert.Equal(t, "openai/gpt-3.5-turbo", req.Model)
		assert.Equal(t, "corporate.pptx", req.Template)
		templates.AssertExpectations(t)
	})

	t.Run("explicit options win over configured defaults", func(t *testing.T) {
		templates := new(MockTemplateRepository)
		templates.On("Get", ctx, "Academic").Return(&entities.TemplateInfo{
			Name: "academic.pptx", Label: "Academic", Path: "templates/academic.pptx",
		}, nil)

		svc := NewDeckService(
			nil, nil, nil, templates,
			entities.DefaultModelCatalog(),
			DeckDefaults{Model: "openai/gpt-3.5-turbo", Template: "Corporate"},
			entities.SearchConfig{},
			nil,
		)

		req, err := svc.BuildRequest(ctx, "Renewable energy", DeckOptions{
			Model:    "Mistral 7B",
			Template: "Academic",
		})

		require.NoError(t, err)
		assert.Equal(t, "mistralai/mistral-7b-instruct", req.Model)
		assert.Equal(t, "academic.pptx", req.Template)
	})

	t.Run("prompt without topic", func(t *testing.T) {
		svc := newTestService(nil, nil, nil, new(MockTemplateRepository))

		_, err := svc.BuildRequest(ctx, "5 slides", DeckOptions{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "topic")
	})

	t.Run("unknown model", func(t *testing.T) {
		svc := newTestService(nil, nil, nil, new(MockTemplateRepository))

		_, err := svc.BuildRequest(ctx, "Renewable energy", DeckOptions{Model: "GPT-9"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown model")
	})

	t.Run("unknown template", func(t *testing.T) {
		templates := new(MockTemplateRepository)
		templates.On("Get", ctx, "missing").Return(nil, ports.ErrTemplateNotFound)

		svc := newTestService(nil, nil, nil, templates)

		_, err := svc.BuildRequest(ctx, "Renewable energy", DeckOptions{Template: "missing"})

		require.ErrorIs(t, err, ports.ErrTemplateNotFound)
	})
}

func TestDeckService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("full pipeline with live context", func(t *testing.T) {
		searcher := new(MockSnippetSearcher)
		generator := new(MockContentGenerator)
		renderer := new(MockDeckRenderer)
		templates := new(MockTemplateRepository)

		snippets := []entities.Snippet{"Solar capacity grew 20% in 2025"}
		slides := testSlides()
		outputPath := filepath.Join(t.TempDir(), "deck.pptx")

		templates.On("Get", mock.Anything, "").Return(testTemplate(), nil)
		templates.On("Get", mock.Anything, "corporate.pptx").Return(testTemplate(), nil)
		searcher.On("Search", mock.Anything, "Renewable energy", 5).Return(snippets, nil)
		generator.On("GenerateSlides", mock.Anything, mock.MatchedBy(func(req entities.DeckRequest) bool {
			return req.Topic == "Renewable energy" && req.UseLiveContext
		}), snippets).Return(slides, nil)
		renderer.On("Render", mock.Anything, slides, "templates/corporate.pptx", outputPath).Return(nil)

		svc := newTestService(searcher, generator, renderer, templates)

		var stages []entities.ProgressStage
		notify := ports.ProgressFunc(func(event entities.ProgressEvent) {
			stages = append(stages, event.Stage)
		})

		deck, err := svc.Generate(ctx, "job-1", "Renewable energy", DeckOptions{
			UseLiveContext: true,
			OutputPath:     outputPath,
		}, notify)

		require.NoError(t, err)
		assert.Equal(t, slides, deck.Slides)
		assert.Equal(t, outputPath, deck.Path)
		assert.Equal(t, []entities.ProgressStage{
			entities.StageAnalyzing,
			entities.StageSearching,
			entities.StageGenerating,
			entities.StageRendering,
			entities.StageComplete,
		}, stages)

		searcher.AssertExpectations(t)
		generator.AssertExpectations(t)
		renderer.AssertExpectations(t)
	})

	t.Run("search failure degrades to no snippets", func(t *testing.T) {
		searcher := new(MockSnippetSearcher)
		generator := new(MockContentGenerator)
		renderer := new(MockDeckRenderer)
		templates := new(MockTemplateRepository)

		outputPath := filepath.Join(t.TempDir(), "deck.pptx")

		templates.On("Get", mock.Anything, mock.Anything).Return(testTemplate(), nil)
		searcher.On("Search", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("network unreachable"))
		generator.On("GenerateSlides", mock.Anything, mock.Anything, []entities.Snippet(nil)).
			Return(testSlides(), nil)
		renderer.On("Render", mock.Anything, mock.Anything, mock.Anything, outputPath).Return(nil)

		svc := newTestService(searcher, generator, renderer, templates)

		deck, err := svc.Generate(ctx, "job-2", "Renewable energy", DeckOptions{
			UseLiveContext: true,
			OutputPath:     outputPath,
		}, nil)

		require.NoError(t, err)
		assert.Len(t, deck.Slides, 2)
		generator.AssertExpectations(t)
	})

	t.Run("live context disabled skips search", func(t *testing.T) {
		searcher := new(MockSnippetSearcher)
		generator := new(MockContentGenerator)
		renderer := new(MockDeckRenderer)
		templates := new(MockTemplateRepository)

		outputPath := filepath.Join(t.TempDir(), "deck.pptx")

		templates.On("Get", mock.Anything, mock.Anything).Return(testTemplate(), nil)
		generator.On("GenerateSlides", mock.Anything, mock.Anything, []entities.Snippet(nil)).
			Return(testSlides(), nil)
		renderer.On("Render", mock.Anything, mock.Anything, mock.Anything, outputPath).Return(nil)

		svc := newTestService(searcher, generator, renderer, templates)

		_, err := svc.Generate(ctx, "job-3", "Renewable energy", DeckOptions{
			OutputPath: outputPath,
		}, nil)

		require.NoError(t, err)
		searcher.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("generation failure stops before rendering", func(t *testing.T) {
		generator := new(MockContentGenerator)
		renderer := new(MockDeckRenderer)
		templates := new(MockTemplateRepository)

		templates.On("Get", mock.Anything, mock.Anything).Return(testTemplate(), nil)
		generator.On("GenerateSlides", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, ports.ErrGenerationFailed)

		svc := newTestService(new(MockSnippetSearcher), generator, renderer, templates)

		var failed bool
		notify := ports.ProgressFunc(func(event entities.ProgressEvent) {
			if event.Stage == entities.StageFailed {
				failed = true
			}
		})

		_, err := svc.Generate(ctx, "job-4", "Renewable energy", DeckOptions{}, notify)

		require.ErrorIs(t, err, ports.ErrGenerationFailed)
		assert.True(t, failed)
		renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty output path uses a temp file", func(t *testing.T) {
		generator := new(MockContentGenerator)
		renderer := new(MockDeckRenderer)
		templates := new(MockTemplateRepository)

		templates.On("Get", mock.Anything, mock.Anything).Return(testTemplate(), nil)
		generator.On("GenerateSlides", mock.Anything, mock.Anything, mock.Anything).
			Return(testSlides(), nil)
		renderer.On("Render", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		svc := newTestService(new(MockSnippetSearcher), generator, renderer, templates)

		deck, err := svc.Generate(ctx, "job-5", "Renewable energy", DeckOptions{}, nil)

		require.NoError(t, err)
		require.NotEmpty(t, deck.Path)
		assert.Equal(t, ".pptx", filepath.Ext(deck.Path))
		_ = os.Remove(deck.Path)
	})
}

func TestDownloadFilename(t *testing.T) {
	now, err := time.Parse(time.RFC3339, "2026-08-23T10:30:00Z")
	require.NoError(t, err)

	assert.Equal(t, "presentation_20260823.pptx", DownloadFilename(now))
}
