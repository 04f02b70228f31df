package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/kds"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultBookingDuration = 120

var bookingTransitionRules = map[string][]string{
	models.BookingStatusPending:   {models.BookingStatusConfirmed, models.BookingStatusCancelled},
	models.BookingStatusConfirmed: {models.BookingStatusCancelled, models.BookingStatusServed, models.BookingStatusNoShow},
}

func checkBookingTransition(from, to string) error {
	for _, allowed := range bookingTransitionRules[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("%w: booking %s -> %s", ErrInvalidTransition, from, to)
}

// BookingRequest is what a customer submits. TableID is optional; without it the
// assignment engine picks.
type BookingRequest struct {
	CustomerID      uint   `json:"customer_id"`
	TableID         *uint  `json:"table_id,omitempty"`
	Date            string `json:"date"`
	TimeSlot        string `json:"time_slot"`
	Duration        int    `json:"duration"`
	Guests          int    `json:"guests"`
	SpecialRequests string `json:"special_requests"`
}

// Validate normalises the request and returns its expected end time.
func (r *BookingRequest) Validate() (time.Time, error) {
	if r.CustomerID == 0 {
		return time.Time{}, fmt.Errorf("%w: customer_id is required", ErrValidation)
	}
	if r.Guests < 1 {
		return time.Time{}, fmt.Errorf("%w: guests must be at least 1", ErrValidation)
	}
	if r.Duration < 0 {
		return time.Time{}, fmt.Errorf("%w: duration must be positive", ErrValidation)
	}
	if r.Duration == 0 {
		r.Duration = defaultBookingDuration
	}
	r.SpecialRequests = strings.TrimSpace(r.SpecialRequests)
	start, err := time.ParseInLocation("2006-01-02 15:04", r.Date+" "+r.TimeSlot, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date/time_slot must be YYYY-MM-DD and HH:MM", ErrValidation)
	}
	return start.Add(time.Duration(r.Duration) * time.Minute), nil
}

// PendingBooking pairs a waiting booking with its current priority.
type PendingBooking struct {
	Booking  models.Booking   `json:"booking"`
	Priority CustomerPriority `json:"priority"`
}

// BookingService is the booking state machine. Every transition commits booking, table
// and history changes in one transaction; notifications and the cancellation cascade
// run after commit.
type BookingService struct {
	DB       *gorm.DB
	Tables   *TableRegistry
	Engine   *AssignmentEngine
	History  *HistoryLedger
	Cascade  *CancellationCascade
	Notifier Notifier
	Sessions SessionTracker
	Now      func() time.Time
}

func NewBookingService(db *gorm.DB, tables *TableRegistry, engine *AssignmentEngine, history *HistoryLedger,
	cascade *CancellationCascade, notifier Notifier, sessions SessionTracker) *BookingService {
	return &BookingService{
		DB:       db,
		Tables:   tables,
		Engine:   engine,
		History:  history,
		Cascade:  cascade,
		Notifier: notifier,
		Sessions: sessions,
		Now:      time.Now,
	}
}

func getBooking(db *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := db.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &booking, nil
}

func (s *BookingService) Get(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Table").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &booking, nil
}

// List returns bookings newest first, optionally filtered by status.
func (s *BookingService) List(status string) ([]models.Booking, error) {
	var bookings []models.Booking
	q := s.DB.Preload("Table").Order("id desc")
	if status != "" {
		q = q.Where("status = ?", strings.ToUpper(status))
	}
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *BookingService) ListByCustomer(customerID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Preload("Table").Where("customer_id = ?", customerID).Order("id desc").Find(&bookings).Error
	return bookings, err
}

// PendingQueue lists PENDING bookings for the approval screen, highest priority first.
// Equal scores keep arrival order.
func (s *BookingService) PendingQueue() ([]PendingBooking, error) {
	var bookings []models.Booking
	if err := s.DB.Preload("Table").Where("status = ?", models.BookingStatusPending).Find(&bookings).Error; err != nil {
		return nil, err
	}
	queue := make([]PendingBooking, 0, len(bookings))
	for _, b := range bookings {
		queue = append(queue, PendingBooking{
			Booking:  b,
			Priority: s.Engine.Scorer.Score(b.CustomerID, b.Guests, b.HasSpecialRequests()),
		})
	}
	sort.SliceStable(queue, func(i, j int) bool {
		a, b := queue[i], queue[j]
		if a.Priority.Score != b.Priority.Score {
			return a.Priority.Score > b.Priority.Score
		}
		if !a.Booking.CreatedAt.Equal(b.Booking.CreatedAt) {
			return a.Booking.CreatedAt.Before(b.Booking.CreatedAt)
		}
		return a.Booking.ID < b.Booking.ID
	})
	return queue, nil
}

// Create records a booking request. A free suggested table confirms it on the spot; an
// explicitly chosen table is reserved while the request waits for approval; otherwise
// the booking waits without a table.
func (s *BookingService) Create(ctx context.Context, req BookingRequest) (*models.Booking, error) {
	end, err := req.Validate()
	if err != nil {
		return nil, err
	}

	var suggestion *TableSuggestion
	if req.TableID == nil {
		suggestion, err = s.Engine.SuggestTable(req.Guests, req.CustomerID, req.SpecialRequests)
		if err != nil {
			return nil, err
		}
	}

	now := s.Now()
	booking := models.Booking{
		Reference:       uuid.NewString(),
		CustomerID:      req.CustomerID,
		Date:            req.Date,
		TimeSlot:        req.TimeSlot,
		Duration:        req.Duration,
		ExpectedEndTime: end,
		Guests:          req.Guests,
		SpecialRequests: req.SpecialRequests,
		Status:          models.BookingStatusPending,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	var table *models.Table

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		switch {
		case req.TableID != nil:
			t, err := getTable(tx, *req.TableID)
			if err != nil {
				return err
			}
			if !t.IsFree() {
				return fmt.Errorf("%w: table %s is %s", ErrTableUnavailable, t.TableNumber, t.Status)
			}
			if t.Capacity < req.Guests {
				return fmt.Errorf("%w: table %s seats %d", ErrTableUnavailable, t.TableNumber, t.Capacity)
			}
			table = t
		case suggestion != nil:
			t, err := getTable(tx, suggestion.TableID)
			if err != nil {
				return err
			}
			if t.IsFree() {
				table = t
				booking.Status = models.BookingStatusConfirmed
				booking.ConfirmedAt = &now
			}
		}

		if table != nil {
			booking.TableID = &table.ID
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		if table == nil {
			return nil
		}
		if err := s.Tables.hold(tx, table, booking.ID, models.TableStatusBooked, &booking.ExpectedEndTime); err != nil {
			return err
		}
		if booking.Status == models.BookingStatusConfirmed {
			if _, err := s.History.checkIn(tx, &booking); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"booking_id":  booking.ID,
		"customer_id": booking.CustomerID,
		"status":      booking.Status,
		"guests":      booking.Guests,
	}
	if table != nil {
		fields["table"] = table.TableNumber
		kds.BroadcastTableUpdate(*table)
	}
	logInfo("booking", "booking created", fields)

	data := bookingData(&booking, table)
	if booking.Status == models.BookingStatusConfirmed {
		reason := ""
		if suggestion != nil {
			reason = suggestion.Reason
			data["reason"] = reason
		}
		s.notify(ctx, customerNotice(booking.CustomerID, NotifyBookingInstant, "Booking Confirmed",
			fmt.Sprintf("Your table %s is reserved for %d guests on %s at %s.",
				table.TableNumber, booking.Guests, booking.Date, booking.TimeSlot), data))
		s.notify(ctx, channelNotice(models.ChannelAdmin, NotifyBookingInstantAdmin, "Instant Booking",
			fmt.Sprintf("Booking #%d auto-confirmed at table %s (%s).", booking.ID, table.TableNumber, reason), data))
		s.setSession(booking.CustomerID, models.CustomerStatusBooked)
	} else {
		s.notify(ctx, channelNotice(models.ChannelAdmin, NotifyBookingRequest, "New Booking Request",
			fmt.Sprintf("Booking #%d for %d guests on %s at %s is waiting for approval.",
				booking.ID, booking.Guests, booking.Date, booking.TimeSlot), data))
		s.setSession(booking.CustomerID, models.CustomerStatusWaiting)
	}
	booking.Table = table
	kds.BroadcastBookingUpdate(booking)
	return &booking, nil
}

// Confirm approves a PENDING booking. A booking that was queued without a table gets
// one from the assignment engine; if none is free it stays PENDING.
func (s *BookingService) Confirm(ctx context.Context, id uint, note string) (*models.Booking, error) {
	current, err := getBooking(s.DB, id)
	if err != nil {
		return nil, err
	}
	if current.Status == models.BookingStatusConfirmed {
		return current, nil
	}
	if err := checkBookingTransition(current.Status, models.BookingStatusConfirmed); err != nil {
		return nil, err
	}

	var suggestion *TableSuggestion
	if current.TableID == nil {
		suggestion, err = s.Engine.SuggestTable(current.Guests, current.CustomerID, current.SpecialRequests)
		if err != nil {
			return nil, err
		}
		if suggestion == nil {
			return nil, fmt.Errorf("%w: booking %d needs %d seats", ErrNoAvailableTable, id, current.Guests)
		}
	}

	var (
		booking *models.Booking
		table   *models.Table
		changed bool
	)
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		b, err := getBooking(tx, id)
		if err != nil {
			return err
		}
		booking = b
		if b.Status == models.BookingStatusConfirmed {
			return nil
		}
		if err := checkBookingTransition(b.Status, models.BookingStatusConfirmed); err != nil {
			return err
		}

		var tableID uint
		switch {
		case b.TableID != nil:
			tableID = *b.TableID
		case suggestion != nil:
			tableID = suggestion.TableID
		default:
			return fmt.Errorf("%w: booking %d needs %d seats", ErrNoAvailableTable, b.ID, b.Guests)
		}
		t, err := getTable(tx, tableID)
		if err != nil {
			return err
		}
		if b.TableID == nil && !t.IsFree() {
			return fmt.Errorf("%w: table %s was taken", ErrNoAvailableTable, t.TableNumber)
		}
		if b.TableID != nil && !t.IsFree() && (t.CurrentBookingID == nil || *t.CurrentBookingID != b.ID) {
			return fmt.Errorf("%w: table %s is held by another booking", ErrTableUnavailable, t.TableNumber)
		}
		if err := s.Tables.hold(tx, t, b.ID, models.TableStatusBooked, &b.ExpectedEndTime); err != nil {
			return err
		}
		table = t

		now := s.Now()
		b.Status = models.BookingStatusConfirmed
		b.ConfirmedAt = &now
		b.TableID = &tableID
		if note != "" {
			b.AdminNote = note
		}
		if err := s.save(tx, b, map[string]interface{}{
			"status":       b.Status,
			"confirmed_at": now,
			"table_id":     tableID,
			"admin_note":   b.AdminNote,
		}); err != nil {
			return err
		}
		if _, err := s.History.checkIn(tx, b); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !changed {
		return booking, nil
	}

	s.afterTransition(ctx, booking, models.BookingStatusPending, table)
	s.notify(ctx, customerNotice(booking.CustomerID, NotifyBookingConfirmed, "Table Reserved",
		fmt.Sprintf("Your booking for %s at %s is confirmed. Table %s is reserved for you.",
			booking.Date, booking.TimeSlot, table.TableNumber), bookingData(booking, table)))
	s.setSession(booking.CustomerID, models.CustomerStatusBooked)
	return booking, nil
}

// Cancellation actors recorded on the booking.
const (
	ActorCustomer = "customer"
	ActorAdmin    = "admin"
)

type cancelRequest struct {
	reason  string
	actor   string
	owner   uint // 0 = tanpa cek pemilik
	decline bool
}

// Reject is the admin's decline. It shares the cancellation path.
func (s *BookingService) Reject(ctx context.Context, id uint, reason string) (*models.Booking, *CascadeReport, error) {
	return s.cancel(ctx, id, cancelRequest{reason: reason, actor: ActorAdmin, decline: true})
}

func (s *BookingService) Cancel(ctx context.Context, id uint, reason string) (*models.Booking, *CascadeReport, error) {
	return s.cancel(ctx, id, cancelRequest{reason: reason, actor: ActorCustomer})
}

// CancelAs cancels on behalf of a staff member; actor is their role.
func (s *BookingService) CancelAs(ctx context.Context, id uint, reason, actor string) (*models.Booking, *CascadeReport, error) {
	if actor == "" {
		return nil, nil, fmt.Errorf("%w: cancelling actor is required", ErrValidation)
	}
	return s.cancel(ctx, id, cancelRequest{reason: reason, actor: actor})
}

// CancelByCustomer cancels only when the booking belongs to customerID. A booking of
// another customer is reported as not found, same as an unknown id.
func (s *BookingService) CancelByCustomer(ctx context.Context, id, customerID uint, reason string) (*models.Booking, *CascadeReport, error) {
	if customerID == 0 {
		return nil, nil, fmt.Errorf("%w: customer_id is required", ErrValidation)
	}
	return s.cancel(ctx, id, cancelRequest{reason: reason, actor: ActorCustomer, owner: customerID})
}

func (s *BookingService) cancel(ctx context.Context, id uint, req cancelRequest) (*models.Booking, *CascadeReport, error) {
	var (
		booking *models.Booking
		table   *models.Table
		from    string
		changed bool
	)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		b, err := getBooking(tx, id)
		if err != nil {
			return err
		}
		if req.owner != 0 && b.CustomerID != req.owner {
			return fmt.Errorf("%w: booking %d", ErrNotFound, id)
		}
		booking = b
		from = b.Status
		if b.Status == models.BookingStatusCancelled {
			return nil
		}
		if err := checkBookingTransition(b.Status, models.BookingStatusCancelled); err != nil {
			return err
		}

		now := s.Now()
		b.Status = models.BookingStatusCancelled
		b.CancelledAt = &now
		b.ConfirmedAt = nil
		b.CancelledBy = req.actor
		updates := map[string]interface{}{
			"status":       b.Status,
			"cancelled_at": now,
			"confirmed_at": nil,
			"cancelled_by": req.actor,
		}
		if req.reason != "" {
			b.RejectionReason = req.reason
			updates["rejection_reason"] = req.reason
		}
		if err := s.save(tx, b, updates); err != nil {
			return err
		}
		if b.TableID != nil {
			t, released, err := s.Tables.release(tx, *b.TableID, b.ID)
			if err != nil {
				return err
			}
			if released {
				table = t
			}
		}
		if _, err := s.History.close(tx, b, models.HistoryStatusCancelled); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if !changed {
		return booking, &CascadeReport{BookingID: booking.ID}, nil
	}

	logInfo("booking", "booking cancelled", map[string]interface{}{
		"booking_id": booking.ID,
		"from":       from,
		"actor":      req.actor,
	})
	s.afterTransition(ctx, booking, from, table)
	report := s.Cascade.Run(ctx, booking, CascadeNotice{
		Declined: from == models.BookingStatusPending && req.decline,
		Reason:   req.reason,
		Notify:   true,
	})
	s.setSession(booking.CustomerID, models.CustomerStatusCancelled)
	return booking, report, nil
}

// Seat marks the party as arrived: the table becomes OCCUPIED and the visit starts.
// Seating an already seated booking changes nothing.
func (s *BookingService) Seat(ctx context.Context, id uint) (*models.Booking, error) {
	var (
		booking *models.Booking
		table   *models.Table
	)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		b, err := getBooking(tx, id)
		if err != nil {
			return err
		}
		booking = b
		if b.Status != models.BookingStatusConfirmed {
			return fmt.Errorf("%w: only a CONFIRMED booking can be seated, booking %d is %s", ErrInvalidTransition, b.ID, b.Status)
		}
		if b.TableID == nil {
			return fmt.Errorf("%w: booking %d has no table", ErrTableUnavailable, b.ID)
		}
		t, err := getTable(tx, *b.TableID)
		if err != nil {
			return err
		}
		if t.CurrentBookingID == nil || *t.CurrentBookingID != b.ID {
			return fmt.Errorf("%w: table %s is not held by booking %d", ErrTableUnavailable, t.TableNumber, b.ID)
		}
		if t.Status != models.TableStatusOccupied {
			if err := s.Tables.hold(tx, t, b.ID, models.TableStatusOccupied, t.NextAvailableTime); err != nil {
				return err
			}
			table = t
		}
		_, err = s.History.checkIn(tx, b)
		return err
	})
	if err != nil {
		return nil, err
	}
	if table == nil {
		return booking, nil
	}

	logInfo("booking", "party seated", map[string]interface{}{
		"booking_id": booking.ID,
		"table":      table.TableNumber,
	})
	kds.BroadcastTableUpdate(*table)
	if s.Sessions != nil {
		if err := s.Sessions.SeatCustomer(booking.CustomerID, table.ID); err != nil {
			logError("booking", "update customer session", err, map[string]interface{}{
				"customer_id": booking.CustomerID,
				"table_id":    table.ID,
			})
		}
	}
	return booking, nil
}

// Serve closes the visit: the table is freed and the history entry is checked out with
// the revenue of everything served.
func (s *BookingService) Serve(ctx context.Context, id uint) (*models.Booking, error) {
	var (
		booking *models.Booking
		table   *models.Table
		revenue float64
		changed bool
	)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		b, err := getBooking(tx, id)
		if err != nil {
			return err
		}
		booking = b
		if b.Status == models.BookingStatusServed {
			return nil
		}
		if err := checkBookingTransition(b.Status, models.BookingStatusServed); err != nil {
			return err
		}

		if err := tx.Model(&models.Order{}).
			Where("booking_id = ? AND status IN ?", b.ID, []string{models.OrderStatusServed, models.OrderStatusCompleted}).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&revenue).Error; err != nil {
			return err
		}

		now := s.Now()
		b.Status = models.BookingStatusServed
		b.ServedAt = &now
		b.ConfirmedAt = nil
		if err := s.save(tx, b, map[string]interface{}{
			"status":       b.Status,
			"served_at":    now,
			"confirmed_at": nil,
		}); err != nil {
			return err
		}
		if b.TableID != nil {
			t, released, err := s.Tables.release(tx, *b.TableID, b.ID)
			if err != nil {
				return err
			}
			if released {
				table = t
			}
		}
		if _, err := s.History.checkOut(tx, b.ID, &revenue); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !changed {
		return booking, nil
	}

	s.afterTransition(ctx, booking, models.BookingStatusConfirmed, table)
	data := bookingData(booking, table)
	data["revenue"] = revenue
	s.notify(ctx, customerNotice(booking.CustomerID, NotifyBookingServed, "Thank You",
		"Thanks for visiting Coffee Hub. We hope to see you again soon.", data))
	s.setSession(booking.CustomerID, models.CustomerStatusCompleted)
	return booking, nil
}

// NoShow releases the table of a party that never arrived. Payments are kept.
func (s *BookingService) NoShow(ctx context.Context, id uint) (*models.Booking, error) {
	var (
		booking *models.Booking
		table   *models.Table
		changed bool
	)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		b, err := getBooking(tx, id)
		if err != nil {
			return err
		}
		booking = b
		if b.Status == models.BookingStatusNoShow {
			return nil
		}
		if err := checkBookingTransition(b.Status, models.BookingStatusNoShow); err != nil {
			return err
		}

		b.Status = models.BookingStatusNoShow
		if err := s.save(tx, b, map[string]interface{}{"status": b.Status}); err != nil {
			return err
		}
		if b.TableID != nil {
			t, released, err := s.Tables.release(tx, *b.TableID, b.ID)
			if err != nil {
				return err
			}
			if released {
				table = t
			}
		}
		if _, err := s.History.close(tx, b, models.HistoryStatusNoShow); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !changed {
		return booking, nil
	}

	s.afterTransition(ctx, booking, models.BookingStatusConfirmed, table)
	s.notify(ctx, customerNotice(booking.CustomerID, NotifyBookingNoShow, "Booking Missed",
		fmt.Sprintf("We held your table for %s at %s but you did not arrive. The booking is closed.",
			booking.Date, booking.TimeSlot), bookingData(booking, table)))
	s.setSession(booking.CustomerID, models.CustomerStatusNoShow)
	return booking, nil
}

// save writes the given columns if the booking row is still at the version we read.
func (s *BookingService) save(tx *gorm.DB, b *models.Booking, updates map[string]interface{}) error {
	now := s.Now()
	updates["version"] = gorm.Expr("version + 1")
	updates["updated_at"] = now

	res := tx.Model(&models.Booking{}).
		Where("id = ? AND version = ?", b.ID, b.Version).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: booking %d", ErrConflict, b.ID)
	}
	b.Version++
	b.UpdatedAt = now
	return nil
}

// afterTransition does the bookkeeping every committed status change shares.
func (s *BookingService) afterTransition(ctx context.Context, b *models.Booking, from string, table *models.Table) {
	bookingTransitions.WithLabelValues(from, b.Status).Inc()
	logInfo("booking", "booking status changed", map[string]interface{}{
		"booking_id": b.ID,
		"from":       from,
		"to":         b.Status,
	})

	data := bookingData(b, table)
	data["from"] = from
	data["to"] = b.Status
	s.notify(ctx, channelNotice(models.ChannelAdmin, NotifyBookingStatusChanged, "Booking Status Changed",
		fmt.Sprintf("Booking #%d changed from %s to %s.", b.ID, from, b.Status), data))

	if table != nil {
		kds.BroadcastTableUpdate(*table)
	}
	kds.BroadcastBookingUpdate(*b)
}

func (s *BookingService) notify(ctx context.Context, n models.Notification) {
	if s.Notifier != nil {
		s.Notifier.Notify(ctx, n)
	}
}

func (s *BookingService) setSession(customerID uint, status string) {
	if s.Sessions == nil {
		return
	}
	if err := s.Sessions.SetCustomerStatus(customerID, status); err != nil {
		logError("booking", "update customer session", err, map[string]interface{}{
			"customer_id": customerID,
			"status":      status,
		})
	}
}

func bookingData(b *models.Booking, table *models.Table) map[string]interface{} {
	data := map[string]interface{}{
		"booking_id": b.ID,
		"reference":  b.Reference,
		"status":     b.Status,
		"date":       b.Date,
		"time_slot":  b.TimeSlot,
		"guests":     b.Guests,
	}
	if table != nil {
		data["table_id"] = table.ID
		data["table_number"] = table.TableNumber
	}
	return data
}
