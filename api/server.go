package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"gopallet/api/handlers"
	"gopallet/runtime/store"
)

// Options configures the HTTP surface.
type Options struct {
	Addr string

	// Block submission rate per client. Zero disables limiting.
	BlockRate  float64
	BlockBurst int

	// Metrics is mounted at MetricsPath when non-nil.
	Metrics     http.Handler
	MetricsPath string

	Logger logrus.FieldLogger
}

// Server represents the HTTP API server
type Server struct {
	store    store.StateStore
	executor handlers.BlockExecutor
	opts     Options
	log      logrus.FieldLogger
	router   chi.Router
	srv      *http.Server
}

// NewServer creates a new API server
func NewServer(stateStore store.StateStore, executor handlers.BlockExecutor, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}

	server := &Server{
		store:    stateStore,
		executor: executor,
		opts:     opts,
		log:      log.WithField("component", "api"),
		router:   chi.NewRouter(),
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all HTTP endpoints
func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.requestLogger)

	s.router.Route("/api", func(r chi.Router) {
		// Chain endpoints
		r.Get("/chain/height", func(w http.ResponseWriter, r *http.Request) {
			handlers.HandleChainHeight(w, r, s.store)
		})
		r.Get("/state", func(w http.ResponseWriter, r *http.Request) {
			handlers.HandleState(w, r, s.store)
		})

		// Account and claim queries
		r.Get("/accounts/{id}", func(w http.ResponseWriter, r *http.Request) {
			handlers.HandleGetAccount(w, r, s.store)
		})
		r.Get("/claims/{content}", func(w http.ResponseWriter, r *http.Request) {
			handlers.HandleGetClaim(w, r, s.store)
		})

		// Block submission
		r.Group(func(r chi.Router) {
			if s.opts.BlockRate > 0 {
				r.Use(NewRateLimiter(s.opts.BlockRate, s.opts.BlockBurst, s.log).Handler)
			}
			r.Post("/blocks", func(w http.ResponseWriter, r *http.Request) {
				handlers.HandleSubmitBlock(w, r, s.executor)
			})
		})
	})

	if s.opts.Metrics != nil {
		s.router.Method(http.MethodGet, s.opts.MetricsPath, s.opts.Metrics)
	}

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, http.StatusNotFound, "No route for "+r.URL.Path)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start),
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("Request served")
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
