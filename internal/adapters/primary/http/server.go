package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/slidecraft/slidecraft/internal/domain/entities"
	"github.com/slidecraft/slidecraft/internal/domain/ports"
	"github.com/slidecraft/slidecraft/internal/domain/services"
)

// job tracks one completed generation run so its deck file can be
// downloaded afterwards
type job struct {
	ID        string
	Path      string
	Filename  string
	CreatedAt time.Time
}

// Server is the web UI shell around the generation pipeline
type Server struct {
	server    *http.Server
	connMgr   *ConnectionManager
	deckSvc   *services.DeckService
	templates ports.TemplateRepository
	config    *entities.ServerConfig
	logger    *HTTPLogger

	mu      sync.RWMutex
	jobs    map[string]*job
	running bool
}

// NewServer creates a new HTTP server.
// config must not be nil - use config.GetDefaultConfig().Server if needed
func NewServer(deckSvc *services.DeckService, templates ports.TemplateRepository, config *entities.ServerConfig, loggingConfig *entities.LoggingConfig) *Server {
	if config == nil {
		panic("server config cannot be nil - provide a valid ServerConfig")
	}

	level := entities.LogLevelInfo
	verbose := false
	if loggingConfig != nil {
		level = loggingConfig.GetLevel()
		verbose = loggingConfig.Verbose
	}

	return &Server{
		deckSvc:   deckSvc,
		templates: templates,
		connMgr:   NewConnectionManager(),
		config:    config,
		logger:    NewHTTPLoggerWithLevel("server", verbose, level),
		jobs:      make(map[string]*job),
	}
}

// setupRoutes wires the HTTP routes
func (s *Server) setupRoutes() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	router.HandleFunc("/ws", s.handleWebSocket)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/config", s.handleConfig).Methods(http.MethodGet)
	api.HandleFunc("/generate", s.handleGenerate).Methods(http.MethodPost)
	api.HandleFunc("/download/{id}", s.handleDownload).Methods(http.MethodGet)
	api.HandleFunc("/thumbnails/{name}", s.handleThumbnail).Methods(http.MethodGet)

	return router
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context, port int, host string) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}

	go s.connMgr.Run(ctx)

	router := s.setupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	handler := c.Handler(securityHeadersMiddleware(createLoggingMiddleware(router, s.logger)))

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      handler,
		ReadTimeout:  s.config.GetReadTimeout(),
		WriteTimeout: s.config.GetWriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}
	s.running = true
	s.mu.Unlock()

	go func() {
		s.logger.Info("HTTP server starting on %s:%d", host, port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return errors.New("server not running")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.GetShutdownTimeout())
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.running = false
	s.logger.Info("HTTP server stopped")
	return nil
}

// rememberJob registers a completed generation for download
func (s *Server) rememberJob(j *job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[j.ID] = j
}

// lookupJob fetches a completed generation by id
func (s *Server) lookupJob(id string) (*job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	return j, ok
}
