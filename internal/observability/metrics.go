package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlacedTotal   = promauto.NewCounter(prometheus.CounterOpts{Namespace: "foodmart", Name: "orders_placed_total", Help: "Total orders placed"})
	EscrowHoldsTotal    = promauto.NewCounter(prometheus.CounterOpts{Namespace: "foodmart", Name: "escrow_holds_total", Help: "Total successful escrow holds"})
	EscrowReleasesTotal = promauto.NewCounter(prometheus.CounterOpts{Namespace: "foodmart", Name: "escrow_releases_total", Help: "Total escrow releases on delivery"})
	RefundsTotal        = promauto.NewCounter(prometheus.CounterOpts{Namespace: "foodmart", Name: "refunds_total", Help: "Total cancellations with refund"})
	AssignmentConflicts = promauto.NewCounter(prometheus.CounterOpts{Namespace: "foodmart", Name: "assignment_conflicts_total", Help: "Accept attempts that lost the race"})
	AssignmentsAccepted = promauto.NewCounter(prometheus.CounterOpts{Namespace: "foodmart", Name: "assignments_accepted_total", Help: "Total accepted assignments"})

	ReconcilerSweeps = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "foodmart", Name: "reconciler_rows_total", Help: "Rows touched by reconciler sweeps"},
		[]string{"task"},
	)
	ReconcilerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "foodmart", Name: "reconciler_errors_total", Help: "Reconciler sweep failures"},
		[]string{"task"},
	)
)
