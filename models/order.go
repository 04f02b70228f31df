package models

import (
	"fmt"
	"time"
)

// Order statuses
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPreparing = "PREPARING"
	OrderStatusReady     = "READY"
	OrderStatusServed    = "SERVED"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

// Order payment statuses
const (
	OrderPaymentUnpaid        = "UNPAID"
	OrderPaymentPaid          = "PAID"
	OrderPaymentPendingRefund = "PENDING_REFUND"
)

type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	CustomerID    uint        `gorm:"not null;index" json:"customer_id"`
	BookingID     uint        `gorm:"not null;index" json:"booking_id"`
	Status        string      `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	PaymentStatus string      `gorm:"type:varchar(20);not null;default:'UNPAID'" json:"payment_status"`
	TotalAmount   float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
	ServedAt      *time.Time  `json:"served_at,omitempty"`
	CompletedAt   *time.Time  `json:"completed_at,omitempty"`
	CancelledAt   *time.Time  `json:"cancelled_at,omitempty"`
	OrderItems    []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
}

type OrderItem struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	OrderID  uint    `gorm:"not null;index" json:"order_id"`
	Name     string  `gorm:"type:varchar(255);not null" json:"name"`
	Price    float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity int     `gorm:"not null" json:"quantity"`
}

// Subtotal returns price times quantity for the line.
func (i OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// IsCancellable reports whether the order has not yet reached the table.
func (o *Order) IsCancellable() bool {
	switch o.Status {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady:
		return true
	}
	return false
}

// Label is the short identifier used in customer and kitchen messages.
func (o *Order) Label() string {
	return fmt.Sprintf("ORD-%d-%d", o.BookingID, o.ID)
}
