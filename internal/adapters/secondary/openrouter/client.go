package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/slidecraft/slidecraft/internal/domain/entities"
	"github.com/slidecraft/slidecraft/internal/domain/ports"
)

const (
	// generationTemperature keeps output factual rather than creative
	generationTemperature = 0.3

	// generationMaxTokens bounds the response size
	generationMaxTokens = 2000
)

// chatCompleter is the slice of the OpenAI client the generator needs;
// extracted for testability.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Generator implements ports.ContentGenerator against an OpenAI-
// compatible chat-completion API (OpenRouter by default).
type Generator struct {
	client      chatCompleter
	maxAttempts int
	retryDelay  time.Duration
	timeout     time.Duration
}

// NewGenerator creates a generator backed by the configured endpoint
func NewGenerator(cfg entities.GeneratorConfig) *Generator {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Generator{
		client:      openai.NewClientWithConfig(clientConfig),
		maxAttempts: cfg.GetMaxAttempts(),
		retryDelay:  cfg.GetRetryDelay(),
		timeout:     cfg.GetTimeout(),
	}
}

// NewGeneratorWithClient creates a generator with an injected client
func NewGeneratorWithClient(client chatCompleter, cfg entities.GeneratorConfig) *Generator {
	return &Generator{
		client:      client,
		maxAttempts: cfg.GetMaxAttempts(),
		retryDelay:  cfg.GetRetryDelay(),
		timeout:     cfg.GetTimeout(),
	}
}

// slidesEnvelope mirrors the JSON shape the model is instructed to emit
type slidesEnvelope struct {
	Slides []slideEntry `json:"slides"`
}

type slideEntry struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

// GenerateSlides asks the model for slide content and parses the reply.
// Malformed output is retried up to the configured attempt bound with a
// short delay in between; transport and API errors fail fast since
// resending the identical request will not fix credentials or quota.
func (g *Generator) GenerateSlides(ctx context.Context, req entities.DeckRequest, snippets []entities.Snippet) ([]entities.Slide, error) {
	jobID, notify := ports.ProgressFromContext(ctx)

	chatReq := openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(req.SlideCount)},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(req.Topic, snippets)},
		},
		Temperature: generationTemperature,
		MaxTokens:   generationMaxTokens,
	}

	var lastErr error
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if attempt > 1 {
			notify.Notify(entities.ProgressEvent{
				JobID:     jobID,
				Stage:     entities.StageRetrying,
				Message:   fmt.Sprintf("Retrying generation... (attempt %d/%d)", attempt, g.maxAttempts),
				Attempt:   attempt,
				Timestamp: time.Now(),
			})

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(g.retryDelay):
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		resp, err := g.client.CreateChatCompletion(callCtx, chatReq)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("chat completion: %w", err)
		}

		slides, err := parseSlides(resp)
		if err != nil {
			lastErr = err
			continue
		}

		return slides, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %s", ports.ErrGenerationFailed, lastErr)
	}
	return nil, ports.ErrGenerationFailed
}

// parseSlides extracts the slide sequence from a single model response
func parseSlides(resp openai.ChatCompletionResponse) ([]entities.Slide, error) {
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned", ports.ErrInvalidResponse)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)

	payload, err := ExtractJSONObject(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ports.ErrInvalidResponse, err)
	}

	var envelope slidesEnvelope
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %s", ports.ErrInvalidResponse, err)
	}

	if envelope.Slides == nil {
		return nil, fmt.Errorf("%w: missing slides array", ports.ErrInvalidResponse)
	}

	slides := make([]entities.Slide, 0, len(envelope.Slides))
	for _, entry := range envelope.Slides {
		slides = append(slides, entities.Slide{Title: entry.Title, Bullets: entry.Content})
	}

	valid := entities.NormalizeSlides(slides, entities.MaxSlideCount)
	if len(valid) == 0 {
		return nil, fmt.Errorf("%w: no valid slides in response", ports.ErrInvalidResponse)
	}

	return valid, nil
}

// systemPrompt builds the instruction demanding structured JSON output
func systemPrompt(slideCount int) string {
	return fmt.Sprintf(`You are an expert presentation creator. Generate exactly %d slides in JSON format: `+
		`{"slides": [{"title": "Slide 1 Title", "content": ["Point 1", "Point 2", "Point 3"]}]}
Rules:
1. Each slide has 1 title and 3-5 bullet points
2. Use professional business language
3. Content must be factual and educational
4. Final output MUST be valid JSON only`, slideCount)
}

// userPrompt embeds the topic and any search snippets as context bullets
func userPrompt(topic string, snippets []entities.Snippet) string {
	var b strings.Builder
	b.WriteString("Create presentation about: ")
	b.WriteString(topic)

	if len(snippets) > 0 {
		b.WriteString("\n\nCurrent context:")
		for _, s := range snippets {
			b.WriteString("\n- ")
			b.WriteString(string(s))
		}
	}

	return b.String()
}

// Ensure Generator implements the port
var _ ports.ContentGenerator = (*Generator)(nil)
