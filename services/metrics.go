package services

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	bookingTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coffeehub_booking_transitions_total",
			Help: "Booking status changes by source and target status",
		},
		[]string{"from", "to"},
	)

	orderTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coffeehub_order_transitions_total",
			Help: "Order status changes by source and target status",
		},
		[]string{"from", "to"},
	)

	tableAssignments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coffeehub_table_assignments_total",
			Help: "Assignment engine outcomes by reason",
		},
		[]string{"reason"},
	)

	cascadeStepFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coffeehub_cascade_step_failures_total",
			Help: "Failed cancellation cascade steps",
		},
		[]string{"step"},
	)

	refundsInitiated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "coffeehub_refunds_initiated_total",
			Help: "Refunds handed to the payment gateway",
		},
	)

	refundRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coffeehub_refund_retries_total",
			Help: "Refund retry attempts by outcome",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		bookingTransitions,
		orderTransitions,
		tableAssignments,
		cascadeStepFailures,
		refundsInitiated,
		refundRetries,
	)
}
