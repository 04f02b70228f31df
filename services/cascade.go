package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/kds"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
	"gorm.io/gorm"
)

// Cascade steps, used in reports, logs and metrics.
const (
	StepCancelOrder   = "cancel_order"
	StepListPayments  = "list_payments"
	StepRefundPayment = "refund_payment"
	StepFreeTable     = "free_table"
	StepCloseHistory  = "close_history"
)

// PaymentProvider is the slice of the payment collaborator the cascade needs.
type PaymentProvider interface {
	GetPaymentsByBooking(bookingID uint) ([]models.Payment, error)
	InitiateRefund(ctx context.Context, paymentID uint, reason string) (*models.Payment, error)
}

// RefundQueue takes refunds that could not be started so they are tried again later.
type RefundQueue interface {
	Enqueue(paymentID uint, reason string)
}

// StepError is one failed step of a cascade. It matches ErrCascadeStepFailed.
type StepError struct {
	Step string `json:"step"`
	ID   uint   `json:"id,omitempty"`
	Err  error  `json:"-"`
}

func (e StepError) Error() string {
	return fmt.Sprintf("%s: %s %d: %v", ErrCascadeStepFailed, e.Step, e.ID, e.Err)
}

func (e StepError) Unwrap() []error {
	return []error{ErrCascadeStepFailed, e.Err}
}

type CascadeReport struct {
	BookingID        uint        `json:"booking_id"`
	OrdersCancelled  []uint      `json:"orders_cancelled"`
	RefundsInitiated []uint      `json:"refunds_initiated"`
	TableFreed       bool        `json:"table_freed"`
	HistoryClosed    bool        `json:"history_closed"`
	Failures         []StepError `json:"failures,omitempty"`
}

// Changed reports whether the run touched anything.
func (r *CascadeReport) Changed() bool {
	return len(r.OrdersCancelled) > 0 || len(r.RefundsInitiated) > 0 || r.TableFreed || r.HistoryClosed
}

// Err joins the step failures, nil when every step went through.
func (r *CascadeReport) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// CascadeNotice controls the customer message at the end of a run.
type CascadeNotice struct {
	Declined bool
	Reason   string
	// Notify forces the message; otherwise it is only sent when the run changed something.
	Notify bool
}

// CancellationCascade cleans up after a cancelled booking. Every step is independent and
// safe to repeat; a failing step is reported and never stops the others.
type CancellationCascade struct {
	DB       *gorm.DB
	Tables   *TableRegistry
	History  *HistoryLedger
	Payments PaymentProvider
	Refunds  RefundQueue
	Notifier Notifier
	Now      func() time.Time
}

func NewCancellationCascade(db *gorm.DB, tables *TableRegistry, history *HistoryLedger, payments PaymentProvider,
	refunds RefundQueue, notifier Notifier) *CancellationCascade {
	return &CancellationCascade{
		DB:       db,
		Tables:   tables,
		History:  history,
		Payments: payments,
		Refunds:  refunds,
		Notifier: notifier,
		Now:      time.Now,
	}
}

// Retry re-runs the cascade for a booking that is already CANCELLED.
func (c *CancellationCascade) Retry(ctx context.Context, bookingID uint) (*CascadeReport, error) {
	booking, err := getBooking(c.DB, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusCancelled {
		return nil, fmt.Errorf("%w: cascade needs a CANCELLED booking, booking %d is %s",
			ErrInvalidTransition, booking.ID, booking.Status)
	}
	return c.Run(ctx, booking, CascadeNotice{Reason: booking.RejectionReason}), nil
}

func (c *CancellationCascade) Run(ctx context.Context, booking *models.Booking, notice CascadeNotice) *CascadeReport {
	report := &CascadeReport{
		BookingID:        booking.ID,
		OrdersCancelled:  []uint{},
		RefundsInitiated: []uint{},
	}

	c.cancelOrders(ctx, booking, report)
	c.refundPayments(ctx, booking, notice, report)
	c.freeTable(booking, report)
	c.closeHistory(booking, report)

	if notice.Notify || report.Changed() {
		c.notifyCustomer(ctx, booking, notice, report)
	}

	fields := map[string]interface{}{
		"booking_id":        booking.ID,
		"orders_cancelled":  len(report.OrdersCancelled),
		"refunds_initiated": len(report.RefundsInitiated),
		"failures":          len(report.Failures),
	}
	if err := report.Err(); err != nil {
		logError("cascade", "cancellation cascade finished with failures", err, fields)
	} else {
		logInfo("cascade", "cancellation cascade finished", fields)
	}
	return report
}

func (c *CancellationCascade) fail(report *CascadeReport, step string, id uint, err error) {
	cascadeStepFailures.WithLabelValues(step).Inc()
	logError("cascade", "cascade step failed", err, map[string]interface{}{
		"booking_id": report.BookingID,
		"step":       step,
		"id":         id,
	})
	report.Failures = append(report.Failures, StepError{Step: step, ID: id, Err: err})
}

func (c *CancellationCascade) cancelOrders(ctx context.Context, booking *models.Booking, report *CascadeReport) {
	var orders []models.Order
	if err := c.DB.Where("booking_id = ? AND status IN ?", booking.ID, cancellableOrderStatuses).
		Order("id asc").Find(&orders).Error; err != nil {
		c.fail(report, StepCancelOrder, 0, err)
		return
	}

	for i := range orders {
		order := &orders[i]
		from := order.Status
		now := c.Now()
		res := c.DB.Model(&models.Order{}).
			Where("id = ? AND status IN ?", order.ID, cancellableOrderStatuses).
			Updates(map[string]interface{}{
				"status":       models.OrderStatusCancelled,
				"cancelled_at": now,
				"updated_at":   now,
			})
		if res.Error != nil {
			c.fail(report, StepCancelOrder, order.ID, res.Error)
			continue
		}
		if res.RowsAffected == 0 {
			continue
		}
		order.Status = models.OrderStatusCancelled
		order.CancelledAt = &now
		order.UpdatedAt = now
		report.OrdersCancelled = append(report.OrdersCancelled, order.ID)
		orderTransitions.WithLabelValues(from, models.OrderStatusCancelled).Inc()

		if c.Notifier != nil {
			c.Notifier.Notify(ctx, channelNotice(models.ChannelKitchen, NotifyOrderCancelledKitchen, "Order Cancelled",
				fmt.Sprintf("Stop %s: booking #%d was cancelled.", order.Label(), booking.ID),
				map[string]interface{}{
					"order_id":    order.ID,
					"booking_id":  booking.ID,
					"customer_id": order.CustomerID,
					"from":        from,
				}))
		}
		kds.BroadcastOrderUpdate(*order)
	}
}

func (c *CancellationCascade) refundPayments(ctx context.Context, booking *models.Booking, notice CascadeNotice, report *CascadeReport) {
	if c.Payments == nil {
		return
	}
	payments, err := c.Payments.GetPaymentsByBooking(booking.ID)
	if err != nil {
		c.fail(report, StepListPayments, 0, err)
		return
	}

	reason := notice.Reason
	if reason == "" {
		reason = fmt.Sprintf("booking #%d cancelled", booking.ID)
	}
	for _, p := range payments {
		if p.Status != models.PaymentStatusPaid {
			continue
		}
		if _, err := c.Payments.InitiateRefund(ctx, p.ID, reason); err != nil {
			c.fail(report, StepRefundPayment, p.ID, err)
			if c.Refunds != nil {
				c.Refunds.Enqueue(p.ID, reason)
			}
			continue
		}
		report.RefundsInitiated = append(report.RefundsInitiated, p.ID)
	}
}

// freeTable only touches a table that still points at this booking.
func (c *CancellationCascade) freeTable(booking *models.Booking, report *CascadeReport) {
	if booking.TableID == nil {
		return
	}
	var freed *models.Table
	err := c.DB.Transaction(func(tx *gorm.DB) error {
		t, released, err := c.Tables.release(tx, *booking.TableID, booking.ID)
		if released {
			freed = t
		}
		return err
	})
	if err != nil {
		c.fail(report, StepFreeTable, *booking.TableID, err)
		return
	}
	if freed != nil {
		report.TableFreed = true
		kds.BroadcastTableUpdate(*freed)
	}
}

func (c *CancellationCascade) closeHistory(booking *models.Booking, report *CascadeReport) {
	err := c.DB.Transaction(func(tx *gorm.DB) error {
		entry, err := c.History.close(tx, booking, models.HistoryStatusCancelled)
		report.HistoryClosed = entry != nil
		return err
	})
	if err != nil {
		report.HistoryClosed = false
		c.fail(report, StepCloseHistory, booking.ID, err)
	}
}

func (c *CancellationCascade) notifyCustomer(ctx context.Context, booking *models.Booking, notice CascadeNotice, report *CascadeReport) {
	if c.Notifier == nil {
		return
	}
	typ, title := NotifyBookingCancelled, "Booking Cancelled"
	var msg strings.Builder
	if notice.Declined {
		typ, title = NotifyBookingDeclined, "Booking Declined"
		fmt.Fprintf(&msg, "Sorry, your booking for %s at %s was declined.", booking.Date, booking.TimeSlot)
		if notice.Reason != "" {
			fmt.Fprintf(&msg, " Reason: %s.", strings.TrimSuffix(notice.Reason, "."))
		}
	} else {
		fmt.Fprintf(&msg, "Your booking for %s at %s has been cancelled.", booking.Date, booking.TimeSlot)
	}
	if n := len(report.OrdersCancelled); n > 0 {
		fmt.Fprintf(&msg, " %d order(s) were cancelled.", n)
	}
	if n := len(report.RefundsInitiated); n > 0 {
		fmt.Fprintf(&msg, " A refund has been started for %d payment(s).", n)
	}

	c.Notifier.Notify(ctx, customerNotice(booking.CustomerID, typ, title, msg.String(), map[string]interface{}{
		"booking_id":        booking.ID,
		"reference":         booking.Reference,
		"orders_cancelled":  report.OrdersCancelled,
		"refunds_initiated": report.RefundsInitiated,
	}))
}
