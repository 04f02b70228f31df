package services

import (
	"time"

	"gorm.io/gorm"
)

// Options tunes the wiring done by New. Zero values fall back to defaults.
type Options struct {
	Weights       PriorityWeights
	Gateway       RefundGateway
	Notifier      Notifier
	RetryInterval time.Duration
}

// Services holds every collaborator of the café backend, wired to one database.
type Services struct {
	Tables    *TableRegistry
	Scorer    *PriorityScorer
	Engine    *AssignmentEngine
	History   *HistoryLedger
	Payments  *PaymentService
	Refunds   *RefundMonitor
	Cascade   *CancellationCascade
	Orders    *OrderService
	Customers *CustomerService
	Bookings  *BookingService
	Notifier  Notifier
}

// New wires the services. Without a notifier, notifications are stored and pushed to
// the KDS screens.
func New(db *gorm.DB, opts Options) *Services {
	if opts.Weights == (PriorityWeights{}) {
		opts.Weights = DefaultPriorityWeights()
	}
	if opts.Notifier == nil {
		opts.Notifier = NewStoreNotifier(db)
	}

	s := &Services{Notifier: opts.Notifier}
	s.Tables = NewTableRegistry(db)
	s.Scorer = NewPriorityScorer(db, opts.Weights)
	s.Engine = NewAssignmentEngine(s.Tables, s.Scorer)
	s.History = NewHistoryLedger(db)
	s.Payments = NewPaymentService(db, opts.Gateway, opts.Notifier)
	s.Refunds = NewRefundMonitor(s.Payments, opts.RetryInterval)
	s.Cascade = NewCancellationCascade(db, s.Tables, s.History, s.Payments, s.Refunds, opts.Notifier)
	s.Orders = NewOrderService(db, opts.Notifier)
	s.Customers = NewCustomerService(db)
	s.Bookings = NewBookingService(db, s.Tables, s.Engine, s.History, s.Cascade, opts.Notifier, s.Customers)
	return s
}
