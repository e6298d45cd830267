package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	admissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "saas_barbearia",
			Name:      "booking_admissions_total",
			Help:      "Booking admission attempts by outcome.",
		},
		[]string{"outcome"},
	)

	cancellations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "saas_barbearia",
			Name:      "booking_cancellations_total",
			Help:      "Bookings cancelled.",
		},
	)

	gridsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "saas_barbearia",
			Name:      "slot_grids_generated_total",
			Help:      "Slot grid computations by cache result.",
		},
		[]string{"source"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(admissions, cancellations, gridsGenerated)
	})
}

// Admission outcomes.
const (
	OutcomeCommitted = "committed"
	OutcomeConflict  = "conflict"
	OutcomeInvalid   = "invalid"
	OutcomeError     = "error"
)

func IncAdmission(outcome string) {
	admissions.WithLabelValues(outcome).Inc()
}

func IncCancellation() {
	cancellations.Inc()
}

func IncGridGenerated(source string) {
	gridsGenerated.WithLabelValues(source).Inc()
}

// Grid sources.
const (
	GridSourceCache    = "cache"
	GridSourceComputed = "computed"
)
