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

func setupOrderRouter(svc *services.Services) *gin.Engine {
	router := gin.New()
	orderCtrl := controllers.NewOrderController(svc.Orders)
	router.GET("/orders", orderCtrl.GetAllOrders)
	router.POST("/bookings/:booking_id/orders", orderCtrl.CreateOrder)
	router.GET("/bookings/:booking_id/orders", orderCtrl.GetBookingOrders)
	router.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	router.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	router.POST("/orders/:order_id/cancel", orderCtrl.CancelOrder)
	router.GET("/kitchen/display", orderCtrl.GetKitchenDisplay)
	return router
}

func confirmedBooking(t *testing.T) (*services.Services, models.Customer, models.Booking) {
	db, svc := setupServices(t)
	seedTable(t, db, "K1", 4)
	customer := seedCustomer(t, svc, "Fajar")
	booking, err := svc.Bookings.Create(ctx, bookingRequest(customer.ID, 2))
	require.NoError(t, err)
	require.Equal(t, models.BookingStatusConfirmed, booking.Status)
	return svc, customer, *booking
}

func TestCreateAndGetOrder(t *testing.T) {
	svc, customer, booking := confirmedBooking(t)
	router := setupOrderRouter(svc)

	// Payload untuk membuat order
	payload := map[string]interface{}{
		"customer_id": customer.ID,
		"items": []map[string]interface{}{
			{"name": "Flat White", "price": 32000, "quantity": 2},
			{"name": "Croissant", "price": 25000, "quantity": 1},
		},
	}
	w, resp := perform(t, router, http.MethodPost, fmt.Sprintf("/bookings/%d/orders", booking.ID), payload)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Order created", resp.Message)
	order := dataAs[models.Order](t, resp)
	assert.Equal(t, 89000.0, order.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Len(t, order.OrderItems, 2)

	// Uji GET order by ID
	w, resp = perform(t, router, http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Order detail", resp.Message)
	assert.Equal(t, order.ID, dataAs[models.Order](t, resp).ID)

	w, resp = perform(t, router, http.MethodGet, fmt.Sprintf("/bookings/%d/orders", booking.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataAs[[]models.Order](t, resp), 1)
}

func TestCreateOrderRejected(t *testing.T) {
	svc, customer, booking := confirmedBooking(t)
	router := setupOrderRouter(svc)
	url := fmt.Sprintf("/bookings/%d/orders", booking.ID)

	w, _ := perform(t, router, http.MethodPost, url, map[string]interface{}{"customer_id": customer.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = perform(t, router, http.MethodPost, url, map[string]interface{}{
		"customer_id": customer.ID,
		"items":       []map[string]interface{}{{"name": "Mocha", "price": 30000, "quantity": 0}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = perform(t, router, http.MethodPost, url, map[string]interface{}{
		"customer_id": customer.ID + 1,
		"items":       []map[string]interface{}{{"name": "Mocha", "price": 30000, "quantity": 1}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = perform(t, router, http.MethodPost, "/bookings/77/orders", map[string]interface{}{
		"customer_id": customer.ID,
		"items":       []map[string]interface{}{{"name": "Mocha", "price": 30000, "quantity": 1}},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	svc, customer, booking := confirmedBooking(t)
	order, err := svc.Orders.CreateOrder(ctx, customer.ID, booking.ID,
		[]services.OrderItemInput{{Name: "Americano", Price: 22000, Quantity: 1}})
	require.NoError(t, err)
	router := setupOrderRouter(svc)
	url := fmt.Sprintf("/orders/%d/status", order.ID)

	// melompati PREPARING tidak diizinkan
	w, _ := perform(t, router, http.MethodPatch, url, map[string]string{"status": "ready"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, resp := perform(t, router, http.MethodGet, "/kitchen/display", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataAs[[]models.Order](t, resp), 1)

	for _, status := range []string{"preparing", "ready", "served"} {
		w, resp = perform(t, router, http.MethodPatch, url, map[string]string{"status": status})
		require.Equal(t, http.StatusOK, w.Code, resp.Message)
	}
	updated := dataAs[models.Order](t, resp)
	assert.Equal(t, models.OrderStatusServed, updated.Status)
	assert.NotNil(t, updated.ServedAt)

	w, resp = perform(t, router, http.MethodGet, "/kitchen/display", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, dataAs[[]models.Order](t, resp))

	w, _ = perform(t, router, http.MethodPost, fmt.Sprintf("/orders/%d/cancel", order.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = perform(t, router, http.MethodPatch, url, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = perform(t, router, http.MethodGet, "/orders?status=served", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataAs[[]models.Order](t, resp), 1)
}

func TestCancelOrder(t *testing.T) {
	svc, customer, booking := confirmedBooking(t)
	order, err := svc.Orders.CreateOrder(ctx, customer.ID, booking.ID,
		[]services.OrderItemInput{{Name: "Matcha", Price: 30000, Quantity: 1}})
	require.NoError(t, err)
	router := setupOrderRouter(svc)

	w, resp := perform(t, router, http.MethodPost, fmt.Sprintf("/orders/%d/cancel", order.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.OrderStatusCancelled, dataAs[models.Order](t, resp).Status)

	w, _ = perform(t, router, http.MethodPost, "/orders/404/cancel", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
