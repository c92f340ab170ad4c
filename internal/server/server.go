// Package server provides the HTTP API for yoyak: text structuring and
// scoring, transition diffs, and document level management.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/pinchlab/yoyak/internal/config"
	"github.com/pinchlab/yoyak/internal/diff"
	"github.com/pinchlab/yoyak/internal/docstore"
	"github.com/pinchlab/yoyak/internal/levels"
	"github.com/pinchlab/yoyak/internal/priority"
	"github.com/pinchlab/yoyak/internal/textstruct"
	"github.com/pinchlab/yoyak/internal/tfidf"
	"github.com/pinchlab/yoyak/internal/watcher"
)

// Server is the HTTP server for the yoyak API.
type Server struct {
	store      *docstore.Store
	provider   levels.Provider
	structurer *textstruct.Structurer
	scorer     *tfidf.Engine
	calc       *priority.Calculator
	differ     *diff.Engine

	watch      *watcher.Watcher
	config     *config.Config
	configPath string
	configMu   sync.Mutex

	logger *zap.Logger
	server *http.Server
}

// NewServer creates a server with the given dependencies. watch may be nil
// when directory ingestion is disabled.
func NewServer(
	store *docstore.Store,
	provider levels.Provider,
	watch *watcher.Watcher,
	cfg *config.Config,
	configPath string,
	logger *zap.Logger,
) *Server {
	return &Server{
		store:      store,
		provider:   provider,
		structurer: textstruct.NewStructurer(),
		scorer:     tfidf.NewEngine(),
		calc:       priority.NewCalculator(),
		differ:     diff.NewEngine(),
		watch:      watch,
		config:     cfg,
		configPath: configPath,
		logger:     logger,
	}
}

// Router builds the chi router with all API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/structure", s.handleStructure)
	r.Post("/api/v1/diff", s.handleDiff)
	r.Post("/api/v1/documents", s.handleAddDocument)
	r.Get("/api/v1/documents", s.handleListDocuments)
	r.Get("/api/v1/documents/{id}", s.handleGetDocument)
	r.Delete("/api/v1/documents/{id}", s.handleDeleteDocument)
	r.Get("/api/v1/documents/{id}/levels/{level}", s.handleGetLevel)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/api/v1/directories", s.handleDirectoriesList)
	r.Post("/api/v1/directories", s.handleDirectoriesAdd)
	r.Delete("/api/v1/directories", s.handleDirectoriesRemove)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
