package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
)

func TestRecordPaymentValidates(t *testing.T) {
	env := newTestEnv(t)
	_, booking := env.activeBooking(t)

	_, err := env.payments.RecordPayment(booking.ID, nil, 10, "bitcoin", "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = env.payments.RecordPayment(booking.ID, nil, 0, "cash", "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = env.payments.RecordPayment(999, nil, 10, "cash", "")
	assert.ErrorIs(t, err, ErrNotFound)

	payment, err := env.payments.RecordPayment(booking.ID, nil, 10, " QRIS ", "")
	require.NoError(t, err)
	assert.Equal(t, "qris", payment.PaymentMethod)
	assert.Equal(t, models.PaymentStatusPaid, payment.Status)
	assert.True(t, strings.HasPrefix(payment.ReferenceID, "PAY-"))
	assert.NotNil(t, payment.PaidAt)
}

func TestRecordPaymentForAnOrder(t *testing.T) {
	env := newTestEnv(t)
	customer, booking := env.activeBooking(t)
	order, err := env.orders.CreateOrder(ctxBG, customer.ID, booking.ID, []OrderItemInput{{Name: "Latte", Price: 25, Quantity: 1}})
	require.NoError(t, err)

	_, err = env.payments.RecordPayment(booking.ID, &order.ID, 25, "card", "MT-123")
	require.NoError(t, err)

	stored, err := env.orders.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPaymentPaid, stored.PaymentStatus)

	other := env.addCustomer(t, "Lain")
	env.addTable(t, "A2", 4, "Hall")
	otherBooking, err := env.bookings.Create(ctxBG, env.request(other.ID, 2))
	require.NoError(t, err)
	_, err = env.payments.RecordPayment(otherBooking.ID, &order.ID, 25, "card", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestInitiateRefundCallsGatewayOnce(t *testing.T) {
	env := newTestEnv(t)
	gw := &mockGateway{}
	env.payments.Gateway = gw
	customer, booking := env.activeBooking(t)
	order, err := env.orders.CreateOrder(ctxBG, customer.ID, booking.ID, []OrderItemInput{{Name: "Latte", Price: 25, Quantity: 1}})
	require.NoError(t, err)
	payment, err := env.payments.RecordPayment(booking.ID, &order.ID, 25, "qris", "MT-9")
	require.NoError(t, err)
	before := testutil.ToFloat64(refundsInitiated)

	gw.On("Refund", payment.ID, "wrong table").Return("RF-9", nil).Once()
	refunded, err := env.payments.InitiateRefund(ctxBG, payment.ID, "wrong table")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPendingRefund, refunded.Status)
	assert.Equal(t, "wrong table", refunded.RefundReason)

	again, err := env.payments.InitiateRefund(ctxBG, payment.ID, "wrong table")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPendingRefund, again.Status)

	gw.AssertNumberOfCalls(t, "Refund", 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(refundsInitiated)-before)

	stored, err := env.orders.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPaymentPendingRefund, stored.PaymentStatus)

	admin := env.notes.ofType(NotifyRefundInitiated)
	require.Len(t, admin, 1)
	assert.Equal(t, models.ChannelAdmin, admin[0].Channel)
}

func TestInitiateRefundGatewayErrorKeepsPaid(t *testing.T) {
	env := newTestEnv(t)
	gw := &mockGateway{}
	env.payments.Gateway = gw
	_, booking := env.activeBooking(t)
	payment, err := env.payments.RecordPayment(booking.ID, nil, 40, "card", "MT-1")
	require.NoError(t, err)

	gw.On("Refund", payment.ID, "x").Return("", errors.New("503 from gateway")).Once()
	_, err = env.payments.InitiateRefund(ctxBG, payment.ID, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503 from gateway")

	stored, err := env.payments.GetPaymentByID(payment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, stored.Status)
	assert.Empty(t, env.notes.ofType(NotifyRefundInitiated))
}

func TestInitiateRefundRejectsUnpaidPayments(t *testing.T) {
	env := newTestEnv(t)
	_, booking := env.activeBooking(t)
	payment, err := env.payments.RecordPayment(booking.ID, nil, 40, "cash", "")
	require.NoError(t, err)
	require.NoError(t, env.db.Model(&models.Payment{}).Where("id = ?", payment.ID).
		Update("status", models.PaymentStatusFailed).Error)

	_, err = env.payments.InitiateRefund(ctxBG, payment.ID, "x")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = env.payments.InitiateRefund(ctxBG, 999, "x")
	assert.ErrorIs(t, err, ErrNotFound)
}
