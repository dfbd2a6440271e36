package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"recette/internal/config"
	"recette/internal/logging"
	"recette/internal/notifications"
	"recette/internal/pipeline"
	"recette/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// PipelineRunner runs one video URL through the extraction pipeline.
type PipelineRunner interface {
	Run(ctx context.Context, url string) (pipeline.Outcome, error)
}

// Server hosts the review UI.
type Server struct {
	cfg       *config.Config
	logger    *slog.Logger
	store     *store.Store
	runner    PipelineRunner
	notifier  notifications.Service
	templates *template.Template
}

// New assembles the web server from its collaborators.
func New(cfg *config.Config, logger *slog.Logger, st *store.Store, runner PipelineRunner, notifier notifications.Service) (*Server, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Server{
		cfg:       cfg,
		logger:    logger.With(logging.String(logging.FieldComponent, "web")),
		store:     st,
		runner:    runner,
		notifier:  notifier,
		templates: templates,
	}, nil
}

// Router returns the HTTP handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/add", s.handleAddForm)
	r.Post("/add", s.handleAddSubmit)
	r.Post("/save", s.handleSave)
	r.Route("/recipe/{id}", func(r chi.Router) {
		r.Get("/", s.handleDetail)
		r.Get("/edit", s.handleEditForm)
		r.Post("/edit", s.handleEditSubmit)
		r.Post("/delete", s.handleDelete)
	})
	return r
}

// ListenAndServe blocks until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Paths.WebBind,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web server listening", logging.String("bind", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown web server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web server: %w", err)
	}
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("render template", logging.String("template", name), logging.Error(err))
	}
}
