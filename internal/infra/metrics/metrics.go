package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const namespace = "homework_bot"

// Cycle results.
const (
	ResultDelivered = "delivered"
	ResultNoUpdate  = "no_update"
	ResultError     = "error"
)

var (
	pollCycles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_cycles_total",
			Help:      "Poll cycles by result",
		},
		[]string{"result"},
	)

	pollErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_errors_total",
			Help:      "Failed poll cycles by error kind",
		},
		[]string{"kind"},
	)

	cursorGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cursor_unix_seconds",
			Help:      "Current from_date cursor",
		},
	)
)

// RecordCycle counts a finished poll cycle.
func RecordCycle(result string) {
	pollCycles.WithLabelValues(result).Inc()
}

// RecordError counts a failed cycle by error kind.
func RecordError(kind string) {
	pollCycles.WithLabelValues(ResultError).Inc()
	pollErrors.WithLabelValues(kind).Inc()
}

// SetCursor exposes the current cursor value.
func SetCursor(unix int64) {
	cursorGauge.Set(float64(unix))
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, logger *logrus.Entry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.WithField("addr", addr).Info("Metrics endpoint listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
