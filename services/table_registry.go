package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
	"gorm.io/gorm"
)

// TableRegistry is the physical table inventory. Reads are public; writes are only made
// by booking transitions inside their transaction.
type TableRegistry struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewTableRegistry(db *gorm.DB) *TableRegistry {
	return &TableRegistry{DB: db, Now: time.Now}
}

// List returns every table ordered by id.
func (r *TableRegistry) List() ([]models.Table, error) {
	var tables []models.Table
	if err := r.DB.Order("id asc").Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *TableRegistry) ListByStatus(status string) ([]models.Table, error) {
	var tables []models.Table
	if err := r.DB.Where("status = ?", status).Order("id asc").Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *TableRegistry) FreeTables() ([]models.Table, error) {
	return r.ListByStatus(models.TableStatusFree)
}

func (r *TableRegistry) Get(id uint) (*models.Table, error) {
	return getTable(r.DB, id)
}

// Stats counts tables per status for dashboards.
func (r *TableRegistry) Stats() (map[string]int64, error) {
	stats := map[string]int64{
		models.TableStatusFree:     0,
		models.TableStatusBooked:   0,
		models.TableStatusOccupied: 0,
	}
	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.DB.Model(&models.Table{}).Select("status, count(*) as count").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	var total int64
	for _, row := range rows {
		stats[row.Status] = row.Count
		total += row.Count
	}
	stats["TOTAL"] = total
	return stats, nil
}

func getTable(db *gorm.DB, id uint) (*models.Table, error) {
	var table models.Table
	if err := db.First(&table, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: table %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &table, nil
}

// hold marks the table as held by bookingID (BOOKED or OCCUPIED). The update only lands
// if nobody else touched the row since it was read.
func (r *TableRegistry) hold(tx *gorm.DB, table *models.Table, bookingID uint, status string, until *time.Time) error {
	updates := map[string]interface{}{
		"status":              status,
		"current_booking_id":  bookingID,
		"next_available_time": until,
	}
	if err := r.update(tx, table, updates); err != nil {
		return err
	}
	table.Status = status
	table.CurrentBookingID = &bookingID
	table.NextAvailableTime = until
	return nil
}

// release frees the table if it is still held by bookingID. It reports whether anything
// changed, so callers can tell an already-free table from a freed one.
func (r *TableRegistry) release(tx *gorm.DB, tableID, bookingID uint) (*models.Table, bool, error) {
	table, err := getTable(tx, tableID)
	if err != nil {
		return nil, false, err
	}
	if table.IsFree() || table.CurrentBookingID == nil || *table.CurrentBookingID != bookingID {
		return table, false, nil
	}
	updates := map[string]interface{}{
		"status":              models.TableStatusFree,
		"current_booking_id":  nil,
		"next_available_time": nil,
	}
	if err := r.update(tx, table, updates); err != nil {
		return nil, false, err
	}
	table.Status = models.TableStatusFree
	table.CurrentBookingID = nil
	table.NextAvailableTime = nil
	return table, true, nil
}

func (r *TableRegistry) update(tx *gorm.DB, table *models.Table, updates map[string]interface{}) error {
	now := r.Now()
	updates["version"] = gorm.Expr("version + 1")
	updates["updated_at"] = now

	res := tx.Model(&models.Table{}).
		Where("id = ? AND version = ?", table.ID, table.Version).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: table %d", ErrConflict, table.ID)
	}
	table.Version++
	table.UpdatedAt = now
	return nil
}
