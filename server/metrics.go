package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of one Server.
type Metrics struct {
	Requests         *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	Analyses         *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
	RowsAnalyzed     prometheus.Histogram
	RateLimited      prometheus.Counter
}

// NewMetrics creates the collectors and registers them, along with the Go
// runtime and process collectors, on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goseason_http_requests_total",
				Help: "HTTP requests by route, method and status code",
			},
			[]string{"route", "method", "code"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "goseason_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		Analyses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goseason_analyses_total",
				Help: "Completed analyses by outcome",
			},
			[]string{"outcome"},
		),
		AnalysisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "goseason_analysis_duration_seconds",
			Help:    "Time spent in the analysis pipeline",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		RowsAnalyzed: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "goseason_analysis_rows",
			Help:    "Rows per successfully analyzed series",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "goseason_rate_limited_total",
			Help: "Analysis requests rejected by the rate limiter",
		}),
	}
}
