package database

import (
	"errors"
	"time"

	"story-editor/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registry holds every metric of the data-access layer.
	// Метрики регистрируются в локальном реестре, а не в prometheus.DefaultRegistry.
	Registry = prometheus.NewRegistry()

	queriesTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_editor_db_queries_total",
			Help: "Total number of repository operations, partitioned by repository, operation and outcome.",
		},
		[]string{"repo", "op", "status"},
	)
	queryDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "story_editor_db_query_duration_seconds",
			Help:    "Duration of repository operations.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"repo", "op"},
	)
)

const (
	statusOK       = "ok"
	statusNotFound = "not_found"
	statusInvalid  = "invalid"
	statusError    = "error"
)

// observe records one repository operation. Call it deferred with a pointer
// to the named error result.
func observe(repo, op string, start time.Time, errp *error) {
	status := statusOK
	if errp != nil && *errp != nil {
		switch {
		case errors.Is(*errp, models.ErrNotFound):
			status = statusNotFound
		case errors.Is(*errp, models.ErrInvalidArgument):
			status = statusInvalid
		default:
			status = statusError
		}
	}
	queriesTotal.WithLabelValues(repo, op, status).Inc()
	queryDuration.WithLabelValues(repo, op).Observe(time.Since(start).Seconds())
}
