package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	drawTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "giftcycle_draw_total",
		Help: "Total draws by result (ok or error code)",
	}, []string{"result"})

	drawAttempts = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "giftcycle_draw_attempts",
		Help:    "Permutations or search steps needed by successful draws",
		Buckets: []float64{1, 2, 5, 10, 50, 100, 500, 1000, 5000},
	})

	assignmentReads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "giftcycle_assignment_reads_total",
		Help: "Total assignment reveals by result",
	}, []string{"result"})

	exclusionChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "giftcycle_exclusion_changes_total",
		Help: "Total exclusion adds and removes by result",
	}, []string{"op", "result"})
)
