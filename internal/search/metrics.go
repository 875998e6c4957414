package search

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "github.com/Humanoid-1/Web-backend/pkg/errors"
)

var (
	searchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_requests_total",
			Help: "Ranked search requests by entity and outcome",
		},
		[]string{"entity", "outcome"},
	)

	searchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "search_duration_seconds",
			Help:    "Ranked search latency including store calls",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"entity"},
	)
)

func observe(entity string, start time.Time, err error) {
	searchDuration.WithLabelValues(entity).Observe(time.Since(start).Seconds())

	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrInvalidInput):
		outcome = "invalid"
	default:
		outcome = "error"
	}
	searchRequests.WithLabelValues(entity, outcome).Inc()
}
