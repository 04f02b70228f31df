package database

import (
	"errors"
	"fmt"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/config"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/utils"
	"gorm.io/gorm"
)

// SeedTables makes sure every inventory table exists. Existing rows keep their live
// status; capacity and position follow the inventory file. Tables are never deleted.
func SeedTables(db *gorm.DB, seeds []config.TableSeed) (int, error) {
	created := 0
	for _, s := range seeds {
		var table models.Table
		err := db.Where("table_number = ?", s.Number).First(&table).Error
		switch {
		case err == nil:
			if table.Capacity == s.Capacity && table.Position == s.Position {
				continue
			}
			if err := db.Model(&table).Updates(map[string]interface{}{
				"capacity": s.Capacity,
				"position": s.Position,
			}).Error; err != nil {
				return created, fmt.Errorf("update table %s: %w", s.Number, err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			table = models.Table{
				TableNumber: s.Number,
				Capacity:    s.Capacity,
				Position:    s.Position,
				Status:      models.TableStatusFree,
				Version:     1,
			}
			if err := db.Create(&table).Error; err != nil {
				return created, fmt.Errorf("create table %s: %w", s.Number, err)
			}
			created++
		default:
			return created, fmt.Errorf("lookup table %s: %w", s.Number, err)
		}
	}

	utils.InfoLogger.Printf("Table inventory seeded: %d new, %d total in file", created, len(seeds))
	return created, nil
}
