// Package web hosts the demo shop that renders breadcrumb trails.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/crumbtrail/internal/breadcrumb"
	"github.com/louisbranch/crumbtrail/internal/platform/timeouts"
	"github.com/louisbranch/crumbtrail/internal/services/web/platform/httpx"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr string
	// Crumbs supplies the Registry each request starts with.
	Crumbs  breadcrumb.RegistrySource
	Catalog *Catalog
	Logger  *log.Logger
}

// Server hosts the demo HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewHandler builds the root handler.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Crumbs == nil || cfg.Crumbs.Registry() == nil {
		return nil, errors.New("breadcrumb registry is required")
	}
	catalog := cfg.Catalog
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	h := handlers{catalog: catalog}

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", pageHandler(h.home))
	mux.Handle("GET /categories/{id}", pageHandler(h.category))
	mux.Handle("GET /products/{id}", pageHandler(h.product))
	mux.Handle("GET /search", pageHandler(h.search))
	mux.Handle("GET /about", pageHandler(h.about))
	mux.Handle("/healthz", httpx.RequireMethod(http.MethodGet)(http.HandlerFunc(healthz)))
	mux.Handle("/", pageHandler(func(*http.Request) (page, error) {
		return page{}, errNotFound
	}))

	return httpx.Chain(mux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		httpx.RequestLogger(cfg.Logger),
		withLanguage(),
		breadcrumb.Middleware(cfg.Crumbs, requestLocalizer),
	), nil
}

// NewServer validates config and constructs a server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until ctx is cancelled or the server stops.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
