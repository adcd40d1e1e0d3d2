// Package server exposes explorer views over HTTP.
//
// Each view is an [explorer.Loop] owned by the server and addressed by a
// UUID. Clicks and drags are submitted to the loop, so they are applied
// between layout ticks. The registry is bounded: creating a view beyond
// the limit evicts the least recently used one and stops its loop.
//
//	POST   /api/v1/views               create a view
//	GET    /api/v1/views/{id}          graph, step and current frame
//	DELETE /api/v1/views/{id}          stop and remove a view
//	GET    /api/v1/views/{id}/frame    current frame only
//	GET    /api/v1/views/{id}/svg      current frame rendered with graphviz
//	POST   /api/v1/views/{id}/click    {"address": "..."}
//	POST   /api/v1/views/{id}/drag     {"address": "...", "phase": "start|move|end", "x": 0, "y": 0}
//	GET    /api/v1/categories          market categories (?refresh=true)
//	GET    /healthz                    build info
//	GET    /metrics                    Prometheus metrics
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/addrscope/pkg/errors"
	"github.com/matzehuels/addrscope/pkg/explorer"
	"github.com/matzehuels/addrscope/pkg/integrations/coingecko"
	"github.com/matzehuels/addrscope/pkg/metrics"
	"github.com/matzehuels/addrscope/pkg/reveal"
)

// DefaultMaxViews bounds the view registry when Options.MaxViews is unset.
const DefaultMaxViews = 128

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// CategorySource supplies the market-category hierarchy.
type CategorySource interface {
	FetchCategories(ctx context.Context, refresh bool) *coingecko.Categories
}

// Options configures a [Server].
type Options struct {
	// Provider supplies the bootstrap graph and reveal steps. Required.
	Provider reveal.Provider
	// Session configures every new view.
	Session explorer.Options
	// FrameInterval is the layout clock of each view.
	FrameInterval time.Duration
	// MaxViews bounds the number of live views.
	MaxViews int
	// Categories serves /api/v1/categories. Nil disables the route.
	Categories CategorySource
	// Metrics serves /metrics and records request metrics. Nil disables both.
	Metrics *metrics.Registry
	// Logger receives request and view logs. Nil means log.Default().
	Logger *log.Logger
}

// Server is the HTTP surface.
type Server struct {
	opts   Options
	views  *registry
	router chi.Router
	logger *log.Logger

	// base outlives requests; view loops run under it.
	base   context.Context
	cancel context.CancelFunc
}

// New creates a server. Call [Server.Close] to stop all view loops.
func New(opts Options) (*Server, error) {
	if opts.Provider == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "server needs a reveal provider")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.MaxViews <= 0 {
		opts.MaxViews = DefaultMaxViews
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = explorer.DefaultFrameInterval
	}
	if opts.Session.Logger == nil {
		opts.Session.Logger = opts.Logger
	}

	views, err := newRegistry(opts.MaxViews, opts.Metrics, opts.Logger)
	if err != nil {
		return nil, err
	}

	base, cancel := context.WithCancel(context.Background())
	s := &Server{
		opts:   opts,
		views:  views,
		logger: opts.Logger,
		base:   base,
		cancel: cancel,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.loggingMiddleware)
	if s.opts.Metrics != nil {
		r.Use(s.metricsMiddleware)
		r.Method(http.MethodGet, "/metrics", s.opts.Metrics.Handler())
	}

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/views", s.handleCreateView)
		r.Route("/views/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetView)
			r.Delete("/", s.handleDeleteView)
			r.Get("/frame", s.handleFrame)
			r.Get("/svg", s.handleSVG)
			r.Post("/click", s.handleClick)
			r.Post("/drag", s.handleDrag)
		})
		if s.opts.Categories != nil {
			r.Get("/categories", s.handleCategories)
		}
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully and stops every view.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.Close()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	if err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close stops every view loop and empties the registry.
func (s *Server) Close() {
	s.cancel()
	s.views.purge()
}

// Views returns the number of live views.
func (s *Server) Views() int { return s.views.len() }
