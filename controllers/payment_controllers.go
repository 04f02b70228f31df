package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/services"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/utils"
)

type PaymentController struct {
	Payments *services.PaymentService
	Refunds  *services.RefundMonitor
}

func NewPaymentController(payments *services.PaymentService, refunds *services.RefundMonitor) *PaymentController {
	return &PaymentController{Payments: payments, Refunds: refunds}
}

// CreatePayment -> kasir mencatat pembayaran (cash, card, qris, transfer)
func (pc *PaymentController) CreatePayment(c *gin.Context) {
	type reqBody struct {
		BookingID     uint    `json:"booking_id" binding:"required"`
		OrderID       *uint   `json:"order_id"`
		PaymentMethod string  `json:"payment_method" binding:"required"`
		Amount        float64 `json:"amount" binding:"required"`
		ReferenceID   string  `json:"reference_id"`
	}

	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	payment, err := pc.Payments.RecordPayment(body.BookingID, body.OrderID, body.Amount, body.PaymentMethod, body.ReferenceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Payment recorded", payment)
}

func (pc *PaymentController) GetPaymentByID(c *gin.Context) {
	id, ok := paramID(c, "payment_id")
	if !ok {
		return
	}
	payment, err := pc.Payments.GetPaymentByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment detail", payment)
}

func (pc *PaymentController) GetBookingPayments(c *gin.Context) {
	id, ok := paramID(c, "booking_id")
	if !ok {
		return
	}
	payments, err := pc.Payments.GetPaymentsByBooking(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking payments", payments)
}

// RefundPayment -> refund manual oleh admin di luar pembatalan booking
func (pc *PaymentController) RefundPayment(c *gin.Context) {
	id, ok := paramID(c, "payment_id")
	if !ok {
		return
	}
	var body struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	payment, err := pc.Payments.InitiateRefund(c.Request.Context(), id, body.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Refund initiated", payment)
}

// GetRefundQueue -> payment yang refund-nya menunggu dicoba ulang
func (pc *PaymentController) GetRefundQueue(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Refund retry queue", gin.H{
		"pending": pc.Refunds.Pending(),
		"metrics": pc.Refunds.GetMetrics(),
	})
}
