package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/database"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
)

var ctxBG = context.Background()

func setupTestDB(t *testing.T) *gorm.DB {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// recordingNotifier keeps every notification in memory.
type recordingNotifier struct {
	mu    sync.Mutex
	notes []models.Notification
}

func (r *recordingNotifier) Notify(ctx context.Context, n models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

func (r *recordingNotifier) all() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Notification(nil), r.notes...)
}

func (r *recordingNotifier) channel(ch string) []models.Notification {
	var out []models.Notification
	for _, n := range r.all() {
		if n.Channel == ch {
			out = append(out, n)
		}
	}
	return out
}

func (r *recordingNotifier) ofType(typ string) []models.Notification {
	var out []models.Notification
	for _, n := range r.all() {
		if n.Type == typ {
			out = append(out, n)
		}
	}
	return out
}

func (r *recordingNotifier) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = nil
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Name() string { return "mock" }

func (m *mockGateway) Refund(ctx context.Context, payment models.Payment, reason string) (string, error) {
	args := m.Called(payment.ID, reason)
	return args.String(0), args.Error(1)
}

type testEnv struct {
	db        *gorm.DB
	clock     *fakeClock
	notes     *recordingNotifier
	tables    *TableRegistry
	scorer    *PriorityScorer
	engine    *AssignmentEngine
	history   *HistoryLedger
	payments  *PaymentService
	refunds   *RefundMonitor
	cascade   *CancellationCascade
	orders    *OrderService
	customers *CustomerService
	bookings  *BookingService
}

func newTestEnv(t *testing.T) *testEnv {
	db := setupTestDB(t)
	clock := newFakeClock()
	notes := &recordingNotifier{}

	tables := NewTableRegistry(db)
	tables.Now = clock.Now
	scorer := NewPriorityScorer(db, DefaultPriorityWeights())
	scorer.Now = clock.Now
	engine := NewAssignmentEngine(tables, scorer)
	history := NewHistoryLedger(db)
	history.Now = clock.Now
	payments := NewPaymentService(db, ManualRefundGateway{}, notes)
	payments.Now = clock.Now
	refunds := NewRefundMonitor(payments, time.Minute)
	cascade := NewCancellationCascade(db, tables, history, payments, refunds, notes)
	cascade.Now = clock.Now
	orders := NewOrderService(db, notes)
	orders.Now = clock.Now
	customers := NewCustomerService(db)
	customers.Now = clock.Now
	bookings := NewBookingService(db, tables, engine, history, cascade, notes, customers)
	bookings.Now = clock.Now

	return &testEnv{
		db:        db,
		clock:     clock,
		notes:     notes,
		tables:    tables,
		scorer:    scorer,
		engine:    engine,
		history:   history,
		payments:  payments,
		refunds:   refunds,
		cascade:   cascade,
		orders:    orders,
		customers: customers,
		bookings:  bookings,
	}
}

func (e *testEnv) addTable(t *testing.T, number string, capacity int, position string) models.Table {
	now := e.clock.Now()
	table := models.Table{
		TableNumber: number,
		Capacity:    capacity,
		Position:    position,
		Status:      models.TableStatusFree,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, e.db.Create(&table).Error)
	return table
}

func (e *testEnv) addCustomer(t *testing.T, name string) models.Customer {
	c, err := e.customers.Create(name, "0812000000")
	require.NoError(t, err)
	return *c
}

// addPastBookings gives a customer n bookings in the given status, e.g. to make a VIP.
func (e *testEnv) addPastBookings(t *testing.T, customerID uint, status string, n int) {
	for i := 0; i < n; i++ {
		now := e.clock.Now().Add(-time.Duration(i+1) * 24 * time.Hour)
		b := models.Booking{
			Reference:  uuid.NewString(),
			CustomerID: customerID,
			Date:       "2026-01-01",
			TimeSlot:   "10:00",
			Duration:   60,
			Guests:     2,
			Status:     status,
			Version:    1,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		require.NoError(t, e.db.Create(&b).Error)
	}
}

func (e *testEnv) request(customerID uint, guests int) BookingRequest {
	return BookingRequest{
		CustomerID: customerID,
		Date:       "2026-03-14",
		TimeSlot:   "12:00",
		Duration:   90,
		Guests:     guests,
	}
}

func (e *testEnv) reloadTable(t *testing.T, id uint) models.Table {
	var table models.Table
	require.NoError(t, e.db.First(&table, id).Error)
	return table
}

func (e *testEnv) reloadBooking(t *testing.T, id uint) models.Booking {
	var booking models.Booking
	require.NoError(t, e.db.First(&booking, id).Error)
	return booking
}

// requireOccupancyInvariant checks that a table is held exactly when one PENDING or
// CONFIRMED booking references it.
func (e *testEnv) requireOccupancyInvariant(t *testing.T) {
	var tables []models.Table
	require.NoError(t, e.db.Find(&tables).Error)
	for _, table := range tables {
		var active int64
		require.NoError(t, e.db.Model(&models.Booking{}).
			Where("table_id = ? AND status IN ?", table.ID,
				[]string{models.BookingStatusPending, models.BookingStatusConfirmed}).
			Count(&active).Error)
		if table.IsFree() {
			require.Zero(t, active, "free table %s has active bookings", table.TableNumber)
			require.Nil(t, table.CurrentBookingID)
		} else {
			require.Equal(t, int64(1), active, "held table %s", table.TableNumber)
			require.NotNil(t, table.CurrentBookingID)
		}
	}
}
