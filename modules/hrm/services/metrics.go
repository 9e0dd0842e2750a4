package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iota-uz/deptemp/pkg/serrors"
)

const outcomeOK = "ok"

var (
	mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hrm",
		Name:      "mutations_total",
		Help:      "Orchestrated department and employee mutations broken down by outcome.",
	}, []string{"entity", "operation", "outcome"})

	mutationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hrm",
		Name:      "mutation_duration_seconds",
		Help:      "Latency distribution of orchestrated mutations.",
		Buckets: []float64{
			0.001, 0.002, 0.005,
			0.01, 0.02, 0.05, 0.1,
			0.2, 0.5, 1, 2, 5,
		},
	}, []string{"entity", "operation"})
)

func outcome(err error) string {
	if err == nil {
		return outcomeOK
	}
	return serrors.KindOf(err).String()
}

func recordMutation(entity, operation string, started time.Time, err error) {
	mutationsTotal.With(prometheus.Labels{
		"entity":    entity,
		"operation": operation,
		"outcome":   outcome(err),
	}).Inc()
	mutationDuration.With(prometheus.Labels{
		"entity":    entity,
		"operation": operation,
	}).Observe(time.Since(started).Seconds())
}
