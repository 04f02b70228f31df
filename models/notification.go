package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification channels
const (
	ChannelCustomer = "customer"
	ChannelAdmin    = "admin"
	ChannelKitchen  = "kitchen"
)

type Notification struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	Channel    string            `gorm:"type:varchar(20);not null;index" json:"channel"`
	CustomerID *uint             `gorm:"index" json:"customer_id,omitempty"`
	Type       string            `gorm:"type:varchar(50);not null;index" json:"type"`
	Title      string            `gorm:"type:varchar(100)" json:"title"`
	Message    string            `gorm:"type:text;not null" json:"message"`
	Data       datatypes.JSONMap `json:"data,omitempty"`
	CreatedAt  time.Time         `gorm:"not null" json:"created_at"`
}
