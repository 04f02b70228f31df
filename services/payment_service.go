package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Metode pembayaran yang diterima kasir
var paymentMethods = map[string]bool{
	"cash":     true,
	"card":     true,
	"qris":     true,
	"transfer": true,
}

// PaymentService menangani operasi pembayaran
type PaymentService struct {
	DB       *gorm.DB
	Gateway  RefundGateway
	Notifier Notifier
	Now      func() time.Time
}

// NewPaymentService membuat instance baru PaymentService
func NewPaymentService(db *gorm.DB, gateway RefundGateway, notifier Notifier) *PaymentService {
	if gateway == nil {
		gateway = ManualRefundGateway{}
	}
	return &PaymentService{DB: db, Gateway: gateway, Notifier: notifier, Now: time.Now}
}

// RecordPayment mencatat pembayaran yang sudah diterima (tunai atau diverifikasi staff).
// reference is the gateway order id for non-cash payments; empty generates one.
func (s *PaymentService) RecordPayment(bookingID uint, orderID *uint, amount float64, method, reference string) (*models.Payment, error) {
	method = strings.ToLower(strings.TrimSpace(method))
	if method == "" {
		method = "cash"
	}
	if !paymentMethods[method] {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, method)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if reference == "" {
		reference = "PAY-" + uuid.NewString()
	}

	now := s.Now()
	payment := models.Payment{
		BookingID:     bookingID,
		OrderID:       orderID,
		Amount:        amount,
		Status:        models.PaymentStatusPaid,
		PaymentMethod: method,
		ReferenceID:   reference,
		PaidAt:        &now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := getBooking(tx, bookingID); err != nil {
			return err
		}
		if orderID != nil {
			var order models.Order
			if err := tx.First(&order, *orderID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: order %d", ErrNotFound, *orderID)
				}
				return err
			}
			if order.BookingID != bookingID {
				return fmt.Errorf("%w: order %d is not part of booking %d", ErrValidation, order.ID, bookingID)
			}
			if err := tx.Model(&order).Updates(map[string]interface{}{
				"payment_status": models.OrderPaymentPaid,
				"updated_at":     now,
			}).Error; err != nil {
				return err
			}
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return nil, err
	}

	logInfo("payment", "payment recorded", map[string]interface{}{
		"payment_id": payment.ID,
		"booking_id": bookingID,
		"amount":     amount,
		"method":     method,
	})
	return &payment, nil
}

// GetPaymentByID mendapatkan pembayaran berdasarkan ID
func (s *PaymentService) GetPaymentByID(id uint) (*models.Payment, error) {
	return getPayment(s.DB, id)
}

func (s *PaymentService) GetPaymentsByBooking(bookingID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.DB.Where("booking_id = ?", bookingID).Order("id asc").Find(&payments).Error
	return payments, err
}

// InitiateRefund asks the gateway to refund a PAID payment and parks it in
// PENDING_REFUND. A payment already waiting for its refund is returned as is.
func (s *PaymentService) InitiateRefund(ctx context.Context, paymentID uint, reason string) (*models.Payment, error) {
	payment, err := getPayment(s.DB, paymentID)
	if err != nil {
		return nil, err
	}
	switch payment.Status {
	case models.PaymentStatusPendingRefund:
		return payment, nil
	case models.PaymentStatusPaid:
	default:
		return nil, fmt.Errorf("%w: payment %d is %s", ErrInvalidTransition, payment.ID, payment.Status)
	}

	refundKey, err := s.Gateway.Refund(ctx, *payment, reason)
	if err != nil {
		return nil, fmt.Errorf("%s refund for payment %d: %w", s.Gateway.Name(), payment.ID, err)
	}

	now := s.Now()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Payment{}).
			Where("id = ? AND status = ?", payment.ID, models.PaymentStatusPaid).
			Updates(map[string]interface{}{
				"status":              models.PaymentStatusPendingRefund,
				"refund_reason":       reason,
				"refund_requested_at": now,
				"updated_at":          now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: payment %d", ErrConflict, payment.ID)
		}

		orders := tx.Model(&models.Order{}).Where("payment_status = ?", models.OrderPaymentPaid)
		if payment.OrderID != nil {
			orders = orders.Where("id = ?", *payment.OrderID)
		} else {
			orders = orders.Where("booking_id = ?", payment.BookingID)
		}
		return orders.Updates(map[string]interface{}{
			"payment_status": models.OrderPaymentPendingRefund,
			"updated_at":     now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	payment.Status = models.PaymentStatusPendingRefund
	payment.RefundReason = reason
	payment.RefundRequestedAt = &now
	payment.UpdatedAt = now

	refundsInitiated.Inc()
	logInfo("payment", "refund initiated", map[string]interface{}{
		"payment_id": payment.ID,
		"booking_id": payment.BookingID,
		"gateway":    s.Gateway.Name(),
		"refund_key": refundKey,
	})
	if s.Notifier != nil {
		s.Notifier.Notify(ctx, channelNotice(models.ChannelAdmin, NotifyRefundInitiated, "Refund Initiated",
			fmt.Sprintf("Refund of Rp %s started for payment #%d (booking #%d).",
				utils.FormatCurrency(payment.Amount), payment.ID, payment.BookingID),
			map[string]interface{}{
				"payment_id": payment.ID,
				"booking_id": payment.BookingID,
				"refund_key": refundKey,
				"reason":     reason,
			}))
	}
	return payment, nil
}

func getPayment(db *gorm.DB, id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := db.First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: payment %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &payment, nil
}
