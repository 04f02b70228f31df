package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
	"gorm.io/gorm"
)

// SessionTracker follows where a customer is in their visit.
type SessionTracker interface {
	SetCustomerStatus(customerID uint, status string) error
	// SeatCustomer marks the customer ACTIVE at tableID.
	SeatCustomer(customerID, tableID uint) error
}

var customerStatuses = map[string]bool{
	models.CustomerStatusWaiting:   true,
	models.CustomerStatusBooked:    true,
	models.CustomerStatusActive:    true,
	models.CustomerStatusCompleted: true,
	models.CustomerStatusCancelled: true,
	models.CustomerStatusNoShow:    true,
}

type CustomerService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{DB: db, Now: time.Now}
}

func (s *CustomerService) Create(name, phone string) (*models.Customer, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrValidation)
	}
	now := s.Now()
	customer := models.Customer{
		Name:      name,
		Phone:     phone,
		Status:    models.CustomerStatusWaiting,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.DB.Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *CustomerService) Get(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := s.DB.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &customer, nil
}

func (s *CustomerService) List() ([]models.Customer, error) {
	var customers []models.Customer
	err := s.DB.Order("id desc").Find(&customers).Error
	return customers, err
}

// SetCustomerStatus updates the session status. A finished visit clears the table link.
func (s *CustomerService) SetCustomerStatus(customerID uint, status string) error {
	if !customerStatuses[status] {
		return fmt.Errorf("%w: unknown customer status %q", ErrValidation, status)
	}
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": s.Now(),
	}
	switch status {
	case models.CustomerStatusCompleted, models.CustomerStatusCancelled, models.CustomerStatusNoShow:
		updates["table_id"] = nil
	}
	return s.updateSession(customerID, updates)
}

func (s *CustomerService) SeatCustomer(customerID, tableID uint) error {
	if tableID == 0 {
		return fmt.Errorf("%w: table_id is required", ErrValidation)
	}
	return s.updateSession(customerID, map[string]interface{}{
		"status":     models.CustomerStatusActive,
		"table_id":   tableID,
		"updated_at": s.Now(),
	})
}

func (s *CustomerService) updateSession(customerID uint, updates map[string]interface{}) error {
	res := s.DB.Model(&models.Customer{}).Where("id = ?", customerID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: customer %d", ErrNotFound, customerID)
	}
	return nil
}
