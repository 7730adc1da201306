// Package server exposes the intake pipeline over HTTP: an upload form, and
// a processing endpoint that extracts one PDF and returns the selected
// generated documents as a single file or a zip bundle.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/carefoundry/intake-server/internal/config"
	"github.com/carefoundry/intake-server/internal/extract"
	"github.com/carefoundry/intake-server/internal/pdfsource"
	"github.com/carefoundry/intake-server/internal/render"
)

// Server wires the extraction engine and renderers behind the web surface
type Server struct {
	cfg    *config.Config
	parser *extract.Parser
	theme  render.Theme
	http   *http.Server
}

// NewServer creates the server and its router
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		cfg:    cfg,
		parser: extract.NewParser(cfg.IsDebug()),
		theme:  render.DefaultTheme(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/upload", s.handleUpload)

	s.http = &http.Server{
		Addr:              cfg.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Run serves until the context is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("%s listening on %s", s.cfg.ServerName, s.cfg.Address())
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// logSignatures runs the bounded signature scan when enabled. The scan is
// informational: the generated documents carry signature placeholders and
// the care team attaches the real images during review.
func (s *Server) logSignatures(path string) {
	if !s.cfg.SignatureScan {
		return
	}
	scanner := pdfsource.NewSignatureScanner(s.cfg.SignaturePageCap, s.cfg.SignatureBudget, s.cfg.IsDebug())
	for _, img := range scanner.Scan(path) {
		log.Printf("signature scan: %s candidate on page %d (%dx%d %s)",
			img.Role, img.PageNumber, img.Width, img.Height, img.Format)
	}
}
