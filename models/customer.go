package models

import (
	"time"
)

// Customer session statuses
const (
	CustomerStatusWaiting   = "waiting"
	CustomerStatusBooked    = "booked"
	CustomerStatusActive    = "active"
	CustomerStatusCompleted = "completed"
	CustomerStatusCancelled = "cancelled"
	CustomerStatusNoShow    = "no_show"
)

type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone"`
	TableID   *uint     `gorm:"index" json:"table_id,omitempty"`
	Status    string    `gorm:"type:varchar(20);not null;default:'inactive'" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
