package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	serialsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lccfund_serials_issued_total",
		Help: "Number of workplan serials issued across all grants.",
	})

	assignments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lccfund_assignments_total",
		Help: "Number of MOU assignment operations by type and outcome.",
	}, []string{"operation", "outcome"})
)
