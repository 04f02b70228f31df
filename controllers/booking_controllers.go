package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/kds"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/services"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/utils"
)

type BookingController struct {
	Bookings *services.BookingService
	Cascade  *services.CancellationCascade
	History  *services.HistoryLedger
}

func NewBookingController(bookings *services.BookingService, cascade *services.CancellationCascade, history *services.HistoryLedger) *BookingController {
	return &BookingController{Bookings: bookings, Cascade: cascade, History: history}
}

// CreateBooking -> customer mengajukan booking; langsung CONFIRMED jika ada meja kosong
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req services.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking, err := bc.Bookings.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	msg := "Booking request received"
	if booking.Status == models.BookingStatusConfirmed {
		msg = "Booking confirmed"
	}
	utils.RespondJSON(c, http.StatusCreated, msg, booking)
}

// GetAllBookings -> ?status=PENDING
func (bc *BookingController) GetAllBookings(c *gin.Context) {
	bookings, err := bc.Bookings.List(c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of bookings", bookings)
}

// GetPendingQueue -> antrian approval, prioritas tertinggi dulu
func (bc *BookingController) GetPendingQueue(c *gin.Context) {
	queue, err := bc.Bookings.PendingQueue()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pending bookings", queue)
}

func (bc *BookingController) GetBookingByID(c *gin.Context) {
	id, ok := paramID(c, "booking_id")
	if !ok {
		return
	}
	booking, err := bc.Bookings.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking detail", booking)
}

func (bc *BookingController) GetCustomerBookings(c *gin.Context) {
	id, ok := paramID(c, "customer_id")
	if !ok {
		return
	}
	bookings, err := bc.Bookings.ListByCustomer(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer bookings", bookings)
}

func (bc *BookingController) GetBookingHistory(c *gin.Context) {
	id, ok := paramID(c, "booking_id")
	if !ok {
		return
	}
	entries, err := bc.History.ForBooking(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking history", entries)
}

type noteBody struct {
	Note   string `json:"note"`
	Reason string `json:"reason"`
}

// bindNote: body boleh kosong
func bindNote(c *gin.Context) (noteBody, bool) {
	var body noteBody
	if c.Request.ContentLength == 0 {
		return body, true
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return body, false
	}
	return body, true
}

// ConfirmBooking -> admin menyetujui booking PENDING
func (bc *BookingController) ConfirmBooking(c *gin.Context) {
	id, ok := paramID(c, "booking_id")
	if !ok {
		return
	}
	body, ok := bindNote(c)
	if !ok {
		return
	}
	booking, err := bc.Bookings.Confirm(c.Request.Context(), id, body.Note)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking confirmed", booking)
}

// RejectBooking -> admin menolak; alasan dikirim ke customer
func (bc *BookingController) RejectBooking(c *gin.Context) {
	id, ok := paramID(c, "booking_id")
	if !ok {
		return
	}
	body, ok := bindNote(c)
	if !ok {
		return
	}
	booking, report, err := bc.Bookings.Reject(c.Request.Context(), id, body.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking rejected", gin.H{
		"booking": booking,
		"cascade": report,
	})
}

type customerCancelBody struct {
	CustomerID uint   `json:"customer_id" binding:"required"`
	Reason     string `json:"reason"`
}

// CancelBooking -> customer membatalkan booking miliknya sendiri (customer_id wajib)
func (bc *BookingController) CancelBooking(c *gin.Context) {
	id, ok := paramID(c, "booking_id")
	if !ok {
		return
	}
	var body customerCancelBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	booking, report, err := bc.Bookings.CancelByCustomer(c.Request.Context(), id, body.CustomerID, body.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking cancelled", gin.H{
		"booking": booking,
		"cascade": report,
	})
}

// StaffCancelBooking -> waiter/admin membatalkan atas nama tamu; role dicatat sebagai pelaku
func (bc *BookingController) StaffCancelBooking(c *gin.Context) {
	id, ok := paramID(c, "booking_id")
	if !ok {
		return
	}
	body, ok := bindNote(c)
	if !ok {
		return
	}
	booking, report, err := bc.Bookings.CancelAs(c.Request.Context(), id, body.Reason, c.GetString("role"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking cancelled", gin.H{
		"booking": booking,
		"cascade": report,
	})
}

func (bc *BookingController) SeatBooking(c *gin.Context) {
	id, ok := paramID(c, "booking_id")
	if !ok {
		return
	}
	booking, err := bc.Bookings.Seat(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Guests seated", booking)
}

func (bc *BookingController) ServeBooking(c *gin.Context) {
	id, ok := paramID(c, "booking_id")
	if !ok {
		return
	}
	booking, err := bc.Bookings.Serve(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking served", booking)
}

func (bc *BookingController) NoShowBooking(c *gin.Context) {
	id, ok := paramID(c, "booking_id")
	if !ok {
		return
	}
	booking, err := bc.Bookings.NoShow(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking marked as no-show", booking)
}

// RetryCascade -> jalankan ulang pembersihan booking yang sudah CANCELLED
func (bc *BookingController) RetryCascade(c *gin.Context) {
	id, ok := paramID(c, "booking_id")
	if !ok {
		return
	}
	report, err := bc.Cascade.Retry(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if len(report.Failures) > 0 {
		kds.BroadcastStaffNotification(fmt.Sprintf("Cleanup of booking #%d still has %d failed step(s)", id, len(report.Failures)))
	}
	utils.RespondJSON(c, http.StatusOK, "Cancellation cascade finished", report)
}
