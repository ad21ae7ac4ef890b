package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"html"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/slidecraft/slidecraft/internal/domain/entities"
	"github.com/slidecraft/slidecraft/internal/domain/ports"
	"github.com/slidecraft/slidecraft/internal/domain/services"
)

// pptxMIMEType is the PowerPoint content type for downloads
const pptxMIMEType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// previewSlideCount limits how many slides the response previews
const previewSlideCount = 3

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string    `json:"error"`
	Message string    `json:"message"`
	Detail  string    `json:"detail,omitempty"`
	Time    time.Time `json:"time"`
}

// ConfigResponse represents the configuration API response
type ConfigResponse struct {
	Models        []entities.ModelOption  `json:"models"`
	Templates     []entities.TemplateInfo `json:"templates"`
	DefaultSlides int                     `json:"default_slides"`
	MaxSlides     int                     `json:"max_slides"`
	LiveContext   bool                    `json:"live_context"`
	WebSocketURL  string                  `json:"websocket_url"`
}

// GenerateRequest is the generation API request body
type GenerateRequest struct {
	Prompt      string `json:"prompt"`
	Model       string `json:"model,omitempty"`
	Template    string `json:"template,omitempty"`
	LiveContext bool   `json:"live_context"`
}

// SlidePreview is one previewed slide in the generation response
type SlidePreview struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	HTML  string `json:"html"`
}

// GenerateResponse is the generation API response body
type GenerateResponse struct {
	JobID       string         `json:"job_id"`
	Topic       string         `json:"topic"`
	SlideCount  int            `json:"slide_count"`
	Preview     []SlidePreview `json:"preview"`
	MoreSlides  int            `json:"more_slides"`
	DownloadURL string         `json:"download_url"`
	Filename    string         `json:"filename"`
}

// handleIndex serves the single-page UI
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(indexPage); err != nil {
		s.logger.Error("Failed to write index response: %v", err)
	}
}

// handleConfig returns the UI configuration: selectable models,
// discovered templates and the generation defaults
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	templates, err := s.templates.List(r.Context())
	if err != nil {
		s.handleError(w, err, http.StatusInternalServerError, "Could not list templates")
		return
	}

	response := ConfigResponse{
		Models:        s.deckSvc.Catalog().Models,
		Templates:     templates,
		DefaultSlides: entities.DefaultSlideCount,
		MaxSlides:     entities.MaxSlideCount,
		LiveContext:   s.deckSvc.SearchEnabled(),
		WebSocketURL:  "/ws",
	}

	s.writeJSON(w, response)
}

// handleGenerate runs the full pipeline for one request
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.handleError(w, err, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Prompt) == "" {
		s.handleError(w, errors.New("empty prompt"), http.StatusBadRequest, "Please enter a presentation topic")
		return
	}

	jobID := uuid.New().String()
	notify := ports.ProgressFunc(func(event entities.ProgressEvent) {
		s.connMgr.Broadcast(event)
	})

	deck, err := s.deckSvc.Generate(r.Context(), jobID, req.Prompt, services.DeckOptions{
		Model:          req.Model,
		Template:       req.Template,
		UseLiveContext: req.LiveContext,
	}, notify)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, ports.ErrTemplateNotFound) || errors.Is(err, ports.ErrNoUsableLayout) {
			status = http.StatusUnprocessableEntity
		}
		s.handleError(w, err, status, "Generation failed")
		return
	}

	j := &job{
		ID:        jobID,
		Path:      deck.Path,
		Filename:  services.DownloadFilename(time.Now()),
		CreatedAt: time.Now(),
	}
	s.rememberJob(j)

	response := GenerateResponse{
		JobID:       jobID,
		Topic:       deck.Request.Topic,
		SlideCount:  len(deck.Slides),
		Preview:     s.renderPreview(deck.Slides),
		DownloadURL: "/api/download/" + jobID,
		Filename:    j.Filename,
	}
	if len(deck.Slides) > previewSlideCount {
		response.MoreSlides = len(deck.Slides) - previewSlideCount
	}

	s.writeJSON(w, response)
}

// handleDownload streams a generated deck file
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	j, ok := s.lookupJob(id)
	if !ok {
		s.handleError(w, errors.New("unknown job"), http.StatusNotFound, "Presentation not found")
		return
	}

	file, err := os.Open(j.Path) // #nosec G304 - path was created by this process
	if err != nil {
		s.handleError(w, err, http.StatusInternalServerError, "Presentation file unavailable")
		return
	}
	defer func() { _ = file.Close() }()

	w.Header().Set("Content-Type", pptxMIMEType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+j.Filename+`"`)
	http.ServeContent(w, r, j.Filename, j.CreatedAt, file)
}

// handleThumbnail serves a template preview image
func (s *Server) handleThumbnail(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	tpl, err := s.templates.Get(r.Context(), name)
	if err != nil || tpl.ThumbnailPath == "" {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, tpl.ThumbnailPath)
}

// renderPreview converts the first few slides to sanitized HTML for the
// UI. Bullets pass through markdown rendering since models occasionally
// emit emphasis markers; the output is sanitized because both model
// output and search snippets are untrusted.
func (s *Server) renderPreview(slides []entities.Slide) []SlidePreview {
	md := goldmark.New()
	policy := bluemonday.UGCPolicy()

	count := len(slides)
	if count > previewSlideCount {
		count = previewSlideCount
	}

	previews := make([]SlidePreview, 0, count)
	for i := 0; i < count; i++ {
		var body strings.Builder
		body.WriteString("<ul>")
		for _, bullet := range slides[i].Bullets {
			var buf bytes.Buffer
			if err := md.Convert([]byte(bullet), &buf); err != nil {
				buf.Reset()
				buf.WriteString(html.EscapeString(bullet))
			}
			body.WriteString("<li>")
			body.WriteString(policy.Sanitize(stripParagraph(buf.String())))
			body.WriteString("</li>")
		}
		body.WriteString("</ul>")

		previews = append(previews, SlidePreview{
			Index: i,
			Title: slides[i].Title,
			HTML:  body.String(),
		})
	}

	return previews
}

// stripParagraph unwraps the single paragraph goldmark puts around
// one-line input
func stripParagraph(rendered string) string {
	rendered = strings.TrimSpace(rendered)
	rendered = strings.TrimPrefix(rendered, "<p>")
	rendered = strings.TrimSuffix(rendered, "</p>")
	return rendered
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode JSON response: %v", err)
	}
}

// handleError writes a JSON error response with a user-facing message
// and the technical detail for on-demand diagnostics
func (s *Server) handleError(w http.ResponseWriter, err error, status int, message string) {
	s.logger.Error("%s: %v", message, err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Detail:  err.Error(),
		Time:    time.Now(),
	})
}
