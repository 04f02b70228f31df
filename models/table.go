package models

import "time"

// Table statuses
const (
	TableStatusFree     = "FREE"
	TableStatusBooked   = "BOOKED"
	TableStatusOccupied = "OCCUPIED"
)

type Table struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	TableNumber       string     `gorm:"type:varchar(50);not null;uniqueIndex" json:"table_number"`
	Capacity          int        `gorm:"not null" json:"capacity"`
	Position          string     `gorm:"type:varchar(100)" json:"position"`
	Status            string     `gorm:"type:varchar(20);not null;default:'FREE';index" json:"status"`
	CurrentBookingID  *uint      `gorm:"index" json:"current_booking_id,omitempty"`
	NextAvailableTime *time.Time `json:"next_available_time,omitempty"`
	Version           uint       `gorm:"not null;default:1" json:"version"`
	CreatedAt         time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"not null" json:"updated_at"`
}

func (t *Table) IsFree() bool {
	return t.Status == TableStatusFree
}
