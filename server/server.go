// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/time/rate"

	"github.com/sartorproj/goseason/analysis"
)

const tracerName = "github.com/sartorproj/goseason/server"

// DefaultMaxUploadBytes is used when Options.MaxUploadBytes is not positive.
const DefaultMaxUploadBytes = 10 << 20

// Options configures a Server.
type Options struct {
	MaxUploadBytes int64
	RateLimit      float64 // analyses per second; <= 0 disables limiting
	RateBurst      int
	TracerProvider trace.TracerProvider
}

// Server routes HTTP requests to an analysis.Analyzer.
type Server struct {
	analyzer       *analysis.Analyzer
	logger         *logrus.Logger
	metrics        *Metrics
	registry       *prometheus.Registry
	limiter        *rate.Limiter
	maxUploadBytes int64
	router         *mux.Router
}

// New creates a Server with its own metrics registry.
func New(analyzer *analysis.Analyzer, logger *logrus.Logger, opts Options) *Server {
	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	burst := opts.RateBurst
	if burst < 1 {
		burst = 1
	}
	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadBytes
	}
	tp := opts.TracerProvider
	if tp == nil {
		tp = noop.NewTracerProvider()
	}

	reg := prometheus.NewRegistry()
	s := &Server{
		analyzer:       analyzer,
		logger:         logger,
		metrics:        NewMetrics(reg),
		registry:       reg,
		limiter:        rate.NewLimiter(limit, burst),
		maxUploadBytes: maxUpload,
		router:         mux.NewRouter(),
	}

	s.router.Use(requestIDMiddleware)
	s.router.Use(observeMiddleware(logger, s.metrics, tp.Tracer(tracerName)))
	s.RegisterRoutes(s.router)
	return s
}

// RegisterRoutes registers the API, health and metrics routes on router.
func (s *Server) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api").Subrouter()
	api.Use(corsMiddleware)
	api.Use(s.rateLimitMiddleware)
	api.HandleFunc("/analyze", s.Analyze).Methods(http.MethodPost)
	api.HandleFunc("/analyze", s.Preflight).Methods(http.MethodOptions)

	router.HandleFunc("/health", s.Health).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}
