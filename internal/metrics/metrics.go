// Package metrics exposes Prometheus instrumentation for the board pipeline.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors of one laneboard session.
//
// Each instance owns its registry so tests can create as many as they need
// without duplicate registration panics. All methods are safe on a nil receiver.
//
// Metrics:
//   - laneboard_webapi_requests_total{code,method}
//   - laneboard_webapi_request_duration_seconds{code,method}
//   - laneboard_webapi_in_flight_requests
//   - laneboard_aggregations_total{result}
//   - laneboard_aggregation_duration_seconds
//   - laneboard_board_records
//   - laneboard_stale_results_total
type Metrics struct {
	Registry *prometheus.Registry

	WebAPIRequests *prometheus.CounterVec
	WebAPIDuration *prometheus.HistogramVec
	WebAPIInFlight prometheus.Gauge

	Aggregations        *prometheus.CounterVec
	AggregationDuration prometheus.Histogram
	BoardRecords        prometheus.Gauge
	StaleResults        prometheus.Counter
}

// New creates a Metrics instance with a private registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		WebAPIRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "laneboard_webapi_requests_total",
				Help: "Total number of Web API requests",
			},
			[]string{"code", "method"},
		),

		WebAPIDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "laneboard_webapi_request_duration_seconds",
				Help:    "Duration of Web API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"code", "method"},
		),

		WebAPIInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "laneboard_webapi_in_flight_requests",
			Help: "Number of Web API requests currently in flight",
		}),

		Aggregations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "laneboard_aggregations_total",
				Help: "Total number of board aggregations",
			},
			[]string{"result"}, // "ok" or "error"
		),

		AggregationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "laneboard_aggregation_duration_seconds",
			Help:    "Duration of board aggregations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		BoardRecords: factory.NewGauge(prometheus.GaugeOpts{
			Name: "laneboard_board_records",
			Help: "Number of records on the board after the last aggregation",
		}),

		StaleResults: factory.NewCounter(prometheus.CounterOpts{
			Name: "laneboard_stale_results_total",
			Help: "Aggregation results discarded because a newer one was issued",
		}),
	}
}

// InstrumentRoundTripper wraps next with request counters, latency and in-flight tracking
func (m *Metrics) InstrumentRoundTripper(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	if m == nil {
		return next
	}
	return promhttp.InstrumentRoundTripperInFlight(m.WebAPIInFlight,
		promhttp.InstrumentRoundTripperCounter(m.WebAPIRequests,
			promhttp.InstrumentRoundTripperDuration(m.WebAPIDuration, next),
		),
	)
}

// ObserveAggregation records the outcome of one aggregation
func (m *Metrics) ObserveAggregation(err error, d time.Duration, records int) {
	if m == nil {
		return
	}
	m.AggregationDuration.Observe(d.Seconds())
	if err != nil {
		m.Aggregations.WithLabelValues("error").Inc()
		return
	}
	m.Aggregations.WithLabelValues("ok").Inc()
	m.BoardRecords.Set(float64(records))
}

// StaleResult counts a discarded aggregation result
func (m *Metrics) StaleResult() {
	if m == nil {
		return
	}
	m.StaleResults.Inc()
}

// Handler returns a router serving /metrics and /healthz
func (m *Metrics) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if m != nil {
		r.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry}))
	}
	return r
}

// Serve runs the metrics endpoint on addr until ctx is done
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
