package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
	"gorm.io/gorm"
)

// HistoryLedger is the append-only record of table occupancy episodes.
type HistoryLedger struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewHistoryLedger(db *gorm.DB) *HistoryLedger {
	return &HistoryLedger{DB: db, Now: time.Now}
}

type TableUtilization struct {
	TableID         uint    `json:"table_id"`
	BookingCount    int     `json:"booking_count"`
	TotalRevenue    float64 `json:"total_revenue"`
	AverageDuration float64 `json:"average_duration"`
}

type CustomerVisits struct {
	CustomerID   uint    `json:"customer_id"`
	Visits       int     `json:"visits"`
	TotalRevenue float64 `json:"total_revenue"`
}

// CheckIn opens the ONGOING entry for a confirmed booking. If one is already open it is
// returned unchanged.
func (l *HistoryLedger) CheckIn(bookingID uint) (*models.TableHistory, error) {
	var entry *models.TableHistory
	err := l.DB.Transaction(func(tx *gorm.DB) error {
		booking, err := getBooking(tx, bookingID)
		if err != nil {
			return err
		}
		entry, err = l.checkIn(tx, booking)
		return err
	})
	return entry, err
}

func (l *HistoryLedger) checkIn(tx *gorm.DB, booking *models.Booking) (*models.TableHistory, error) {
	open, err := l.ongoing(tx, booking.ID)
	if err != nil || open != nil {
		return open, err
	}
	if booking.Status != models.BookingStatusConfirmed {
		return nil, fmt.Errorf("%w: booking %d is %s", ErrBookingInactive, booking.ID, booking.Status)
	}
	if booking.TableID == nil {
		return nil, fmt.Errorf("%w: booking %d has no table", ErrTableUnavailable, booking.ID)
	}

	now := l.Now()
	entry := models.TableHistory{
		TableID:     *booking.TableID,
		BookingID:   booking.ID,
		CustomerID:  booking.CustomerID,
		Guests:      booking.Guests,
		CheckInTime: &now,
		Status:      models.HistoryStatusOngoing,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// CheckOut closes the ONGOING entry as COMPLETED. Returns nil without error when there is
// nothing open, since check-out is often called speculatively.
func (l *HistoryLedger) CheckOut(bookingID uint, revenue *float64) (*models.TableHistory, error) {
	var entry *models.TableHistory
	err := l.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		entry, err = l.checkOut(tx, bookingID, revenue)
		return err
	})
	return entry, err
}

func (l *HistoryLedger) checkOut(tx *gorm.DB, bookingID uint, revenue *float64) (*models.TableHistory, error) {
	entry, err := l.ongoing(tx, bookingID)
	if err != nil || entry == nil {
		return nil, err
	}

	now := l.Now()
	duration := 0
	if entry.CheckInTime != nil && now.After(*entry.CheckInTime) {
		duration = int(now.Sub(*entry.CheckInTime).Minutes())
	}
	entry.CheckOutTime = &now
	entry.Duration = &duration
	entry.Revenue = revenue
	entry.Status = models.HistoryStatusCompleted
	entry.UpdatedAt = now
	if err := tx.Save(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// close ends a booking's episode as CANCELLED or NO_SHOW. A booking that held a table
// but never opened an entry gets a closed one written, so the table's record shows it.
func (l *HistoryLedger) close(tx *gorm.DB, booking *models.Booking, status string) (*models.TableHistory, error) {
	entry, err := l.ongoing(tx, booking.ID)
	if err != nil {
		return nil, err
	}
	now := l.Now()

	if entry == nil {
		if booking.TableID == nil {
			return nil, nil
		}
		var existing int64
		if err := tx.Model(&models.TableHistory{}).Where("booking_id = ?", booking.ID).Count(&existing).Error; err != nil {
			return nil, err
		}
		if existing > 0 {
			return nil, nil
		}
		entry = &models.TableHistory{
			TableID:    *booking.TableID,
			BookingID:  booking.ID,
			CustomerID: booking.CustomerID,
			Guests:     booking.Guests,
			Status:     status,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := tx.Create(entry).Error; err != nil {
			return nil, err
		}
		return entry, nil
	}

	entry.CheckOutTime = &now
	entry.Status = status
	entry.UpdatedAt = now
	if err := tx.Save(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (l *HistoryLedger) ongoing(tx *gorm.DB, bookingID uint) (*models.TableHistory, error) {
	var entry models.TableHistory
	err := tx.Where("booking_id = ? AND status = ?", bookingID, models.HistoryStatusOngoing).
		Order("id asc").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (l *HistoryLedger) ForTable(tableID uint) ([]models.TableHistory, error) {
	var entries []models.TableHistory
	err := l.DB.Where("table_id = ?", tableID).Order("id desc").Find(&entries).Error
	return entries, err
}

func (l *HistoryLedger) ForBooking(bookingID uint) ([]models.TableHistory, error) {
	var entries []models.TableHistory
	err := l.DB.Where("booking_id = ?", bookingID).Order("id asc").Find(&entries).Error
	return entries, err
}

// Utilization aggregates COMPLETED entries per table.
func (l *HistoryLedger) Utilization() ([]TableUtilization, error) {
	var entries []models.TableHistory
	if err := l.DB.Where("status = ?", models.HistoryStatusCompleted).Find(&entries).Error; err != nil {
		return nil, err
	}
	return AggregateUtilization(entries), nil
}

// AggregateUtilization ignores anything that is not COMPLETED. Output is ordered by table id.
func AggregateUtilization(entries []models.TableHistory) []TableUtilization {
	byTable := make(map[uint]*TableUtilization)
	durations := make(map[uint]int)
	for _, e := range entries {
		if e.Status != models.HistoryStatusCompleted {
			continue
		}
		u, ok := byTable[e.TableID]
		if !ok {
			u = &TableUtilization{TableID: e.TableID}
			byTable[e.TableID] = u
		}
		u.BookingCount++
		if e.Revenue != nil {
			u.TotalRevenue += *e.Revenue
		}
		if e.Duration != nil {
			durations[e.TableID] += *e.Duration
		}
	}

	out := make([]TableUtilization, 0, len(byTable))
	for id, u := range byTable {
		u.AverageDuration = float64(durations[id]) / float64(u.BookingCount)
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TableID < out[j].TableID })
	return out
}

// Visits summarises a customer's completed visits for loyalty screens.
func (l *HistoryLedger) Visits(customerID uint) (CustomerVisits, error) {
	var entries []models.TableHistory
	err := l.DB.Where("customer_id = ? AND status = ?", customerID, models.HistoryStatusCompleted).Find(&entries).Error
	if err != nil {
		return CustomerVisits{}, err
	}
	v := CustomerVisits{CustomerID: customerID, Visits: len(entries)}
	for _, e := range entries {
		if e.Revenue != nil {
			v.TotalRevenue += *e.Revenue
		}
	}
	return v, nil
}
