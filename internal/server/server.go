// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server renders the search widget on the server for clients that do
// not run scripts. Each request gets its own page; the backend client and the
// warm-up cooldown are shared.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pdiddy/site-search/internal/cooldown"
	"github.com/pdiddy/site-search/internal/metrics"
	"github.com/pdiddy/site-search/internal/search"
	"github.com/pdiddy/site-search/internal/ui"
	"github.com/pdiddy/site-search/internal/view"
	"github.com/pdiddy/site-search/internal/widget"
	"github.com/pdiddy/site-search/pkg/types"
)

const (
	defaultAddr            = ":8080"
	defaultShutdownTimeout = 10 * time.Second
)

// Server serves the widget page.
type Server struct {
	searcher widget.Searcher
	tracker  *cooldown.Tracker
	renderer view.Renderer
	log      *zap.Logger
	page     string // custom page HTML, empty for the built-in page
}

// New returns a Server. page is the HTML of a custom page, or "" for the
// built-in one.
func New(s widget.Searcher, tracker *cooldown.Tracker, renderer view.Renderer, page string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{searcher: s, tracker: tracker, renderer: renderer, page: page, log: log}
}

// LoadPage reads a custom page from path and checks that it can be parsed.
func LoadPage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading page %s: %w", path, err)
	}
	if _, err := ui.NewDocument(strings.NewReader(string(data))); err != nil {
		return "", err
	}
	return string(data), nil
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(requestLog(s.log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(metrics.Middleware())

	r.Get("/", s.handleIndex)
	r.Get("/search", s.handleSearch)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// requestLog writes one line per request and echoes the request id.
func requestLog(log *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.Info("http_request",
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}

func (s *Server) newPage() (*ui.Document, error) {
	if s.page == "" {
		return ui.DefaultDocument(), nil
	}
	return ui.NewDocument(strings.NewReader(s.page))
}

func (s *Server) newWidget(r *http.Request, page ui.Page) *widget.Widget {
	log := s.log.With(zap.String("request_id", chiMiddleware.GetReqID(r.Context())))
	return widget.New(s.searcher, s.tracker, page,
		widget.WithRenderer(s.renderer),
		widget.WithLogger(log))
}

// handleIndex serves the empty page. Loading the page is the moment a user is
// about to search, so it also warms the backend up.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := s.newPage()
	if err != nil {
		s.fail(w, err)
		return
	}
	s.newWidget(r, page).WarmUp(r.Context())
	s.writePage(w, page)
}

// handleSearch runs the search and serves the page with the results
// container filled in. A blank query serves the page untouched.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params, err := search.ParseQuery(r.URL.RawQuery)
	if err != nil {
		http.Error(w, "invalid query string", http.StatusBadRequest)
		return
	}

	page, err := s.newPage()
	if err != nil {
		s.fail(w, err)
		return
	}

	if _, err := s.newWidget(r, page).Submit(r.Context(), params); err != nil && !errors.Is(err, widget.ErrEmptyQuery) {
		s.fail(w, err)
		return
	}
	s.writePage(w, page)
}

func (s *Server) writePage(w http.ResponseWriter, page *ui.Document) {
	html, err := page.HTML()
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.log.Error("rendering page", zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// ListenAndServe serves handler on cfg.Addr until ctx is cancelled, then
// shuts down gracefully within cfg.ShutdownTimeout.
func ListenAndServe(ctx context.Context, cfg types.ServerConfig, handler http.Handler, log *zap.Logger) error {
	addr := cfg.Addr
	if addr == "" {
		addr = defaultAddr
	}
	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
