package models

import "time"

// Table history statuses
const (
	HistoryStatusOngoing   = "ONGOING"
	HistoryStatusCompleted = "COMPLETED"
	HistoryStatusCancelled = "CANCELLED"
	HistoryStatusNoShow    = "NO_SHOW"
)

type TableHistory struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	TableID      uint       `gorm:"not null;index" json:"table_id"`
	BookingID    uint       `gorm:"not null;index" json:"booking_id"`
	CustomerID   uint       `gorm:"not null;index" json:"customer_id"`
	Guests       int        `gorm:"not null" json:"guests"`
	CheckInTime  *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`
	Duration     *int       `json:"duration,omitempty"`
	Revenue      *float64   `gorm:"type:decimal(10,2)" json:"revenue,omitempty"`
	Status       string     `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}
