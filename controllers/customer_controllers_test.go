package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/controllers"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/services"
)

func setupCustomerRouter(svc *services.Services) *gin.Engine {
	router := gin.New()
	customerCtrl := controllers.NewCustomerController(svc.Customers, svc.History)
	router.GET("/customers", customerCtrl.GetAllCustomers)
	router.POST("/customers", customerCtrl.CreateCustomer)
	router.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)
	router.PATCH("/customers/:customer_id/status", customerCtrl.UpdateCustomerStatus)
	router.GET("/customers/:customer_id/visits", customerCtrl.GetCustomerVisits)
	return router
}

func TestCreateAndUpdateCustomer(t *testing.T) {
	_, svc := setupServices(t)
	router := setupCustomerRouter(svc)

	w, _ := perform(t, router, http.MethodPost, "/customers", map[string]string{"phone": "0812"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp := perform(t, router, http.MethodPost, "/customers", map[string]string{"name": "Agus", "phone": "0813"})
	require.Equal(t, http.StatusCreated, w.Code)
	customer := dataAs[models.Customer](t, resp)
	assert.Equal(t, "Agus", customer.Name)

	url := fmt.Sprintf("/customers/%d/status", customer.ID)
	w, _ = perform(t, router, http.MethodPatch, url, map[string]string{"status": "sleeping"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, resp = perform(t, router, http.MethodPatch, url, map[string]string{"status": models.CustomerStatusActive})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.CustomerStatusActive, dataAs[models.Customer](t, resp).Status)

	w, _ = perform(t, router, http.MethodPatch, "/customers/500/status", map[string]string{"status": models.CustomerStatusActive})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, resp = perform(t, router, http.MethodGet, "/customers", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataAs[[]models.Customer](t, resp), 1)
}

func TestGetCustomerVisits(t *testing.T) {
	db, svc := setupServices(t)
	seedTable(t, db, "V1", 2)
	customer := seedCustomer(t, svc, "Rudi")
	booking, err := svc.Bookings.Create(ctx, bookingRequest(customer.ID, 2))
	require.NoError(t, err)
	order, err := svc.Orders.CreateOrder(ctx, customer.ID, booking.ID,
		[]services.OrderItemInput{{Name: "Cold Brew", Price: 35000, Quantity: 2}})
	require.NoError(t, err)
	for _, step := range []string{"preparing", "ready", "served"} {
		_, err = svc.Orders.UpdateStatus(ctx, order.ID, step)
		require.NoError(t, err)
	}
	_, err = svc.Bookings.Seat(ctx, booking.ID)
	require.NoError(t, err)
	_, err = svc.Bookings.Serve(ctx, booking.ID)
	require.NoError(t, err)

	router := setupCustomerRouter(svc)
	w, resp := perform(t, router, http.MethodGet, fmt.Sprintf("/customers/%d/visits", customer.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	visits := dataAs[services.CustomerVisits](t, resp)
	assert.Equal(t, 1, visits.Visits)
	assert.Equal(t, 70000.0, visits.TotalRevenue)

	w, resp = perform(t, router, http.MethodGet, fmt.Sprintf("/customers/%d", customer.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.CustomerStatusCompleted, dataAs[models.Customer](t, resp).Status)
}
