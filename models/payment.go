package models

import (
	"time"
)

// Payment statuses
const (
	PaymentStatusPending       = "PENDING"
	PaymentStatusPaid          = "PAID"
	PaymentStatusPendingRefund = "PENDING_REFUND"
	PaymentStatusFailed        = "FAILED"
)

// Payment represents money collected against a booking (optionally a single order)
type Payment struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	BookingID         uint       `json:"booking_id" gorm:"not null;index"`
	OrderID           *uint      `json:"order_id,omitempty" gorm:"index"`
	Amount            float64    `json:"amount" gorm:"type:decimal(10,2);not null"`
	Status            string     `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	PaymentMethod     string     `json:"payment_method" gorm:"type:varchar(20);not null;default:'cash'"`
	ReferenceID       string     `json:"reference_id" gorm:"type:varchar(100)"`
	RefundReason      string     `json:"refund_reason,omitempty" gorm:"type:text"`
	PaidAt            *time.Time `json:"paid_at,omitempty"`
	RefundRequestedAt *time.Time `json:"refund_requested_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
