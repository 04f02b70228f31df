package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/kds"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/utils"
	"gorm.io/gorm"
)

var cancellableOrderStatuses = []string{
	models.OrderStatusPending,
	models.OrderStatusPreparing,
	models.OrderStatusReady,
}

var orderTransitionRules = map[string][]string{
	models.OrderStatusPending:   {models.OrderStatusPreparing, models.OrderStatusCancelled},
	models.OrderStatusPreparing: {models.OrderStatusReady, models.OrderStatusCancelled},
	models.OrderStatusReady:     {models.OrderStatusServed, models.OrderStatusCancelled},
	models.OrderStatusServed:    {models.OrderStatusCompleted},
}

// CanTransitionOrder reports whether an order may move from one status to another.
// Staying in the same status is not a transition.
func CanTransitionOrder(from, to string) bool {
	for _, allowed := range orderTransitionRules[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type orderNoticeText struct {
	typ, title, message string
}

// customer wording per target status
var orderNotices = map[string]orderNoticeText{
	models.OrderStatusPreparing: {NotifyOrderPreparing, "Order Being Prepared", "Our baristas have started on %s."},
	models.OrderStatusReady:     {NotifyOrderReady, "Order Ready", "%s is ready and on its way to your table."},
	models.OrderStatusServed:    {NotifyOrderServed, "Order Served", "%s has been served. Enjoy!"},
}

type OrderItemInput struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type OrderService struct {
	DB       *gorm.DB
	Notifier Notifier
	Now      func() time.Time
}

func NewOrderService(db *gorm.DB, notifier Notifier) *OrderService {
	return &OrderService{DB: db, Notifier: notifier, Now: time.Now}
}

func getOrder(db *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	if err := db.Preload("OrderItems").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) Get(id uint) (*models.Order, error) {
	return getOrder(s.DB, id)
}

func (s *OrderService) ListByBooking(bookingID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.Preload("OrderItems").Where("booking_id = ?", bookingID).Order("id asc").Find(&orders).Error
	return orders, err
}

func (s *OrderService) List(status string) ([]models.Order, error) {
	var orders []models.Order
	q := s.DB.Preload("OrderItems").Order("id desc")
	if status != "" {
		q = q.Where("status = ?", strings.ToUpper(status))
	}
	err := q.Find(&orders).Error
	return orders, err
}

// KitchenDisplay lists orders the kitchen still has to work on, oldest first.
func (s *OrderService) KitchenDisplay() ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.Preload("OrderItems").
		Where("status IN ?", cancellableOrderStatuses).
		Order("created_at asc, id asc").
		Find(&orders).Error
	return orders, err
}

// CreateOrder places an order against an active booking of the same customer.
// Active means PENDING or CONFIRMED: a walk-in waiting for approval may pre-order,
// and the cascade cancels those orders if the booking is declined.
func (s *OrderService) CreateOrder(ctx context.Context, customerID, bookingID uint, items []OrderItemInput) (*models.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: an order needs at least one item", ErrValidation)
	}
	var total float64
	lines := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" || it.Quantity < 1 || it.Price < 0 {
			return nil, fmt.Errorf("%w: invalid item %q", ErrValidation, it.Name)
		}
		line := models.OrderItem{Name: name, Price: it.Price, Quantity: it.Quantity}
		total += line.Subtotal()
		lines = append(lines, line)
	}

	booking, err := getBooking(s.DB, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsActive() {
		return nil, fmt.Errorf("%w: booking %d is %s", ErrBookingInactive, booking.ID, booking.Status)
	}
	if booking.CustomerID != customerID {
		return nil, fmt.Errorf("%w: booking %d belongs to another customer", ErrValidation, booking.ID)
	}

	now := s.Now()
	order := models.Order{
		CustomerID:    customerID,
		BookingID:     bookingID,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.OrderPaymentUnpaid,
		TotalAmount:   total,
		CreatedAt:     now,
		UpdatedAt:     now,
		OrderItems:    lines,
	}
	if err := s.DB.Create(&order).Error; err != nil {
		return nil, err
	}

	logInfo("order", "order created", map[string]interface{}{
		"order_id":   order.ID,
		"booking_id": bookingID,
		"total":      total,
	})
	s.notify(ctx, channelNotice(models.ChannelKitchen, NotifyOrderCreated, "New Order",
		fmt.Sprintf("%s: %d item(s), Rp %s", order.Label(), len(lines), utils.FormatCurrency(total)),
		map[string]interface{}{"order_id": order.ID, "booking_id": bookingID}))
	kds.BroadcastOrderUpdate(order)
	return &order, nil
}

func (s *OrderService) StartPreparing(ctx context.Context, id uint) (*models.Order, error) {
	return s.transition(ctx, id, models.OrderStatusPreparing)
}

func (s *OrderService) MarkReady(ctx context.Context, id uint) (*models.Order, error) {
	return s.transition(ctx, id, models.OrderStatusReady)
}

func (s *OrderService) Serve(ctx context.Context, id uint) (*models.Order, error) {
	return s.transition(ctx, id, models.OrderStatusServed)
}

func (s *OrderService) Complete(ctx context.Context, id uint) (*models.Order, error) {
	return s.transition(ctx, id, models.OrderStatusCompleted)
}

func (s *OrderService) Cancel(ctx context.Context, id uint) (*models.Order, error) {
	return s.transition(ctx, id, models.OrderStatusCancelled)
}

// UpdateStatus routes a requested status to the matching transition.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	return s.transition(ctx, id, strings.ToUpper(status))
}

func (s *OrderService) transition(ctx context.Context, id uint, to string) (*models.Order, error) {
	order, err := getOrder(s.DB, id)
	if err != nil {
		return nil, err
	}
	from := order.Status
	if !CanTransitionOrder(from, to) {
		return nil, fmt.Errorf("%w: order %s -> %s", ErrInvalidTransition, from, to)
	}

	now := s.Now()
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": now,
	}
	switch to {
	case models.OrderStatusServed:
		updates["served_at"] = now
		order.ServedAt = &now
	case models.OrderStatusCompleted:
		updates["completed_at"] = now
		order.CompletedAt = &now
	case models.OrderStatusCancelled:
		updates["cancelled_at"] = now
		order.CancelledAt = &now
	}

	// status guard so two staff screens cannot both move the same order
	res := s.DB.Model(&models.Order{}).Where("id = ? AND status = ?", order.ID, from).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: order %d", ErrConflict, order.ID)
	}
	order.Status = to
	order.UpdatedAt = now

	orderTransitions.WithLabelValues(from, to).Inc()
	logInfo("order", "order status changed", map[string]interface{}{
		"order_id": order.ID,
		"from":     from,
		"to":       to,
	})

	data := map[string]interface{}{
		"order_id":   order.ID,
		"booking_id": order.BookingID,
		"status":     to,
	}
	if text, ok := orderNotices[to]; ok {
		s.notify(ctx, customerNotice(order.CustomerID, text.typ, text.title, fmt.Sprintf(text.message, order.Label()), data))
	}
	if to == models.OrderStatusCancelled {
		s.notify(ctx, customerNotice(order.CustomerID, NotifyOrderCancelled, "Order Cancelled",
			fmt.Sprintf("%s has been cancelled.", order.Label()), data))
		s.notify(ctx, channelNotice(models.ChannelKitchen, NotifyOrderCancelledKitchen, "Order Cancelled",
			fmt.Sprintf("Stop %s.", order.Label()), data))
	}
	kds.BroadcastOrderUpdate(*order)
	return order, nil
}

func (s *OrderService) notify(ctx context.Context, n models.Notification) {
	if s.Notifier != nil {
		s.Notifier.Notify(ctx, n)
	}
}
