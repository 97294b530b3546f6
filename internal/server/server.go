// Package server exposes the stackcanvas API over HTTP: AI graph
// generation, explanations, scaffold scripts, builder prompts, layout, and
// the generation history. Routes mirror what the canvas frontend calls.
package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/stackcanvas/stackcanvas/internal/config"
	"github.com/stackcanvas/stackcanvas/pkg/flow/layout"
	"github.com/stackcanvas/stackcanvas/pkg/genai"
	"github.com/stackcanvas/stackcanvas/pkg/history"
	"github.com/stackcanvas/stackcanvas/pkg/store"
)

// Options wires the server's dependencies.
type Options struct {
	// Addr is the listen address.
	Addr string

	// CORSOrigins lists allowed browser origins. "*" allows any.
	CORSOrigins []string

	// AI generates graphs, explanations, and scripts.
	AI *genai.Client

	// History records generations. Required.
	History history.Store

	// Diagrams is the optional persistent diagram store. Nil disables
	// the /api/diagrams routes.
	Diagrams *store.DiagramStore

	// Layout is the default layout configuration for generated graphs
	// and the /api/layout endpoint.
	Layout layout.Config

	// Logger receives request and error logs.
	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.Addr == "" {
		o.Addr = "localhost:5001"
	}
	if o.History == nil {
		o.History = history.NewMemoryStore()
	}
	if o.AI == nil {
		o.AI = genai.New(genai.Options{})
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Server is the stackcanvas HTTP API.
type Server struct {
	opts   Options
	router chi.Router
}

// New builds the server and its route table.
func New(opts Options) *Server {
	opts.setDefaults()
	s := &Server{opts: opts}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(opts.Logger))
	r.Use(chimw.Recoverer)
	r.Use(corsMiddleware(opts.CORSOrigins))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate-graph", s.handleGenerateGraph)
		r.Post("/explain-graph", s.handleExplainGraph)
		r.Post("/generate-script", s.handleGenerateScript)
		r.Post("/builder-prompt", s.handleBuilderPrompt)
		r.Post("/layout", s.handleLayout)
		r.Post("/export-svg", s.handleExportSVG)

		r.Route("/history", func(r chi.Router) {
			r.Get("/", s.handleHistoryList)
			r.Delete("/", s.handleHistoryClear)
			r.Get("/{id}", s.handleHistoryGet)
			r.Delete("/{id}", s.handleHistoryDelete)
		})

		if opts.Diagrams != nil {
			r.Route("/diagrams", func(r chi.Router) {
				r.Post("/", s.handleDiagramSave)
				r.Get("/", s.handleDiagramList)
				r.Get("/{id}", s.handleDiagramGet)
				r.Delete("/{id}", s.handleDiagramDelete)
			})
		}
	})

	s.router = r
	return s
}

// FromConfig builds server options from application configuration.
// The caller still injects the stores and AI client.
func FromConfig(cfg config.Config) Options {
	return Options{
		Addr:        cfg.Server.Addr,
		CORSOrigins: cfg.Server.CORSOrigins,
		Layout:      cfg.LayoutConfig(),
	}
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.opts.Logger.Info("server listening", "addr", s.opts.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.opts.Logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
