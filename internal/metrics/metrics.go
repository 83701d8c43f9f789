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

// Search outcomes used as the "outcome" label.
const (
	OutcomeOK        = "ok"
	OutcomeEmpty     = "empty"
	OutcomeError     = "error"
	OutcomeInvalid   = "invalid"
	OutcomeDiscarded = "discarded"
)

var (
	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookfinder_searches_total",
		Help: "Searches by outcome",
	}, []string{"outcome"})

	SearchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookfinder_catalog_request_duration_seconds",
		Help:    "Duration of catalog search requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	FavoriteMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookfinder_favorite_mutations_total",
		Help: "Favorites mutations by operation and persistence result",
	}, []string{"op", "persisted"})

	FavoritesCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bookfinder_favorites",
		Help: "Current number of favorites",
	})
)

// ObserveFavorite records one favorites mutation and the resulting size.
func ObserveFavorite(op string, persisted bool, count int) {
	label := "true"
	if !persisted {
		label = "false"
	}
	FavoriteMutationsTotal.WithLabelValues(op, label).Inc()
	FavoritesCount.Set(float64(count))
}

// ObserveSearch records a finished catalog call.
func ObserveSearch(outcome string, took time.Duration) {
	SearchesTotal.WithLabelValues(outcome).Inc()
	if took > 0 {
		SearchDuration.WithLabelValues(outcome).Observe(took.Seconds())
	}
}

// Serve exposes /metrics on addr until ctx is done. An empty addr disables it.
func Serve(ctx context.Context, addr string, log *logrus.Entry) error {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", addr).Info("metrics listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
