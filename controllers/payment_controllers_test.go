package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/controllers"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/services"
)

func setupPaymentRouter(svc *services.Services) *gin.Engine {
	router := gin.New()
	paymentCtrl := controllers.NewPaymentController(svc.Payments, svc.Refunds)
	router.POST("/payments", paymentCtrl.CreatePayment)
	router.GET("/payments/:payment_id", paymentCtrl.GetPaymentByID)
	router.GET("/bookings/:booking_id/payments", paymentCtrl.GetBookingPayments)
	router.POST("/payments/:payment_id/refund", paymentCtrl.RefundPayment)
	router.GET("/refunds/pending", paymentCtrl.GetRefundQueue)
	return router
}

func TestCreatePayment(t *testing.T) {
	svc, _, booking := confirmedBooking(t)
	router := setupPaymentRouter(svc)

	payload := map[string]interface{}{
		"booking_id":     booking.ID,
		"payment_method": "QRIS",
		"amount":         45000,
		"reference_id":   "ORDER-123",
	}
	w, resp := perform(t, router, http.MethodPost, "/payments", payload)
	require.Equal(t, http.StatusCreated, w.Code, resp.Message)
	assert.Equal(t, "Payment recorded", resp.Message)
	payment := dataAs[models.Payment](t, resp)
	assert.Equal(t, models.PaymentStatusPaid, payment.Status)
	assert.Equal(t, "qris", payment.PaymentMethod)
	assert.Equal(t, "ORDER-123", payment.ReferenceID)

	w, resp = perform(t, router, http.MethodGet, fmt.Sprintf("/payments/%d", payment.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, payment.ID, dataAs[models.Payment](t, resp).ID)

	w, resp = perform(t, router, http.MethodGet, fmt.Sprintf("/bookings/%d/payments", booking.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataAs[[]models.Payment](t, resp), 1)
}

func TestCreatePaymentInvalid(t *testing.T) {
	svc, _, booking := confirmedBooking(t)
	router := setupPaymentRouter(svc)

	w, _ := perform(t, router, http.MethodPost, "/payments", map[string]interface{}{"booking_id": booking.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = perform(t, router, http.MethodPost, "/payments", map[string]interface{}{
		"booking_id": booking.ID, "payment_method": "bitcoin", "amount": 10000,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = perform(t, router, http.MethodPost, "/payments", map[string]interface{}{
		"booking_id": booking.ID + 100, "payment_method": "cash", "amount": 10000,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRefundPayment(t *testing.T) {
	svc, _, booking := confirmedBooking(t)
	payment, err := svc.Payments.RecordPayment(booking.ID, nil, 50000, "cash", "")
	require.NoError(t, err)
	router := setupPaymentRouter(svc)
	url := fmt.Sprintf("/payments/%d/refund", payment.ID)

	w, _ := perform(t, router, http.MethodPost, url, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp := perform(t, router, http.MethodPost, url, map[string]string{"reason": "double charge"})
	assert.Equal(t, http.StatusOK, w.Code)
	refunded := dataAs[models.Payment](t, resp)
	assert.Equal(t, models.PaymentStatusPendingRefund, refunded.Status)
	assert.Equal(t, "double charge", refunded.RefundReason)

	// refund yang sudah berjalan dikembalikan apa adanya
	w, _ = perform(t, router, http.MethodPost, url, map[string]string{"reason": "again"})
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp = perform(t, router, http.MethodGet, "/refunds/pending", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	queue := dataAs[struct {
		Pending []uint                 `json:"pending"`
		Metrics services.RefundMetrics `json:"metrics"`
	}](t, resp)
	assert.Empty(t, queue.Pending)
}
