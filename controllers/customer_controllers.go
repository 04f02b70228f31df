package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/services"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/utils"
)

type CustomerController struct {
	Customers *services.CustomerService
	History   *services.HistoryLedger
}

func NewCustomerController(customers *services.CustomerService, history *services.HistoryLedger) *CustomerController {
	return &CustomerController{Customers: customers, History: history}
}

// GetAllCustomers -> Mendapatkan semua customer
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	customers, err := cc.Customers.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of customers", customers)
}

// CreateCustomer -> Membuat sesi customer baru sebelum booking
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	type reqBody struct {
		Name  string `json:"name" binding:"required"`
		Phone string `json:"phone"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customer, err := cc.Customers.Create(req.Name, req.Phone)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("New customer created (ID=%d)", customer.ID)
	utils.RespondJSON(c, http.StatusCreated, "Customer created", customer)
}

// GetCustomerByID -> Menampilkan detail 1 customer
func (cc *CustomerController) GetCustomerByID(c *gin.Context) {
	id, ok := paramID(c, "customer_id")
	if !ok {
		return
	}
	customer, err := cc.Customers.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer detail", customer)
}

// UpdateCustomerStatus -> koreksi manual status sesi oleh staff
func (cc *CustomerController) UpdateCustomerStatus(c *gin.Context) {
	id, ok := paramID(c, "customer_id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := cc.Customers.SetCustomerStatus(id, req.Status); err != nil {
		respondServiceError(c, err)
		return
	}
	customer, err := cc.Customers.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer updated", customer)
}

// GetCustomerVisits -> jumlah kunjungan selesai dan total belanja
func (cc *CustomerController) GetCustomerVisits(c *gin.Context) {
	id, ok := paramID(c, "customer_id")
	if !ok {
		return
	}
	visits, err := cc.History.Visits(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer visits", visits)
}
