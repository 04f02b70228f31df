package models

import "time"

// Booking statuses
const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
	BookingStatusServed    = "SERVED"
	BookingStatusNoShow    = "NO_SHOW"
)

type Booking struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Reference       string     `gorm:"type:varchar(36);not null;uniqueIndex" json:"reference"`
	CustomerID      uint       `gorm:"not null;index" json:"customer_id"`
	TableID         *uint      `gorm:"index" json:"table_id,omitempty"`
	Table           *Table     `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Date            string     `gorm:"type:varchar(10);not null" json:"date"`
	TimeSlot        string     `gorm:"type:varchar(5);not null" json:"time_slot"`
	Duration        int        `gorm:"not null" json:"duration"`
	ExpectedEndTime time.Time  `json:"expected_end_time"`
	Guests          int        `gorm:"not null" json:"guests"`
	SpecialRequests string     `gorm:"type:text" json:"special_requests,omitempty"`
	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	AdminNote       string     `gorm:"type:text" json:"admin_note,omitempty"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason,omitempty"`
	CancelledBy     string     `gorm:"type:varchar(20)" json:"cancelled_by,omitempty"`
	Version         uint       `gorm:"not null;default:1" json:"version"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null" json:"updated_at"`
	ConfirmedAt     *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
	ServedAt        *time.Time `json:"served_at,omitempty"`
}

// IsActive reports whether the booking still holds (or waits for) a table.
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

func (b *Booking) HasSpecialRequests() bool {
	return b.SpecialRequests != ""
}
