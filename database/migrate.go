package database

import (
	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/utils"
	"gorm.io/gorm"
)

// Models lists every persisted entity, in dependency order.
var Models = []interface{}{
	&models.Table{},
	&models.Customer{},
	&models.Booking{},
	&models.Order{},
	&models.OrderItem{},
	&models.Payment{},
	&models.TableHistory{},
	&models.Notification{},
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return err
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}
