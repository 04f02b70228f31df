package services

import (
	"context"
	"time"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/kds"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notification types
const (
	NotifyBookingRequest        = "booking_request"
	NotifyBookingInstant        = "booking_instant_confirmed"
	NotifyBookingInstantAdmin   = "booking_instant_admin"
	NotifyBookingConfirmed      = "booking_confirmed"
	NotifyBookingDeclined       = "booking_declined"
	NotifyBookingCancelled      = "booking_cancelled"
	NotifyBookingServed         = "booking_served"
	NotifyBookingNoShow         = "booking_no_show"
	NotifyBookingStatusChanged  = "booking_status_changed"
	NotifyOrderCreated          = "order_created"
	NotifyOrderPreparing        = "order_preparing"
	NotifyOrderReady            = "order_ready"
	NotifyOrderServed           = "order_served"
	NotifyOrderCancelled        = "order_cancelled"
	NotifyOrderCancelledKitchen = "order_cancelled_kitchen"
	NotifyRefundInitiated       = "refund_initiated"
)

// Notifier is the fire-and-forget side channel. Implementations must not block the
// caller on delivery and must not return delivery errors.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification)
}

func customerNotice(customerID uint, typ, title, message string, data map[string]interface{}) models.Notification {
	id := customerID
	return models.Notification{
		Channel:    models.ChannelCustomer,
		CustomerID: &id,
		Type:       typ,
		Title:      title,
		Message:    message,
		Data:       datatypes.JSONMap(data),
	}
}

func channelNotice(channel, typ, title, message string, data map[string]interface{}) models.Notification {
	return models.Notification{
		Channel: channel,
		Type:    typ,
		Title:   title,
		Message: message,
		Data:    datatypes.JSONMap(data),
	}
}

// StoreNotifier menyimpan notifikasi ke database lalu menyiarkannya ke layar KDS.
type StoreNotifier struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewStoreNotifier(db *gorm.DB) *StoreNotifier {
	return &StoreNotifier{DB: db, Now: time.Now}
}

func (s *StoreNotifier) Notify(ctx context.Context, n models.Notification) {
	n.CreatedAt = s.Now()
	if err := s.DB.WithContext(ctx).Create(&n).Error; err != nil {
		utils.ErrorLogger.WithField("type", n.Type).Errorf("Failed to store notification: %v", err)
		return
	}
	kds.BroadcastNotification(n)
}

// MultiNotifier fans a notification out to every sink in order.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, n models.Notification) {
	for _, sink := range m {
		if sink != nil {
			sink.Notify(ctx, n)
		}
	}
}
