package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/database"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/services"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/utils"
)

var ctx = context.Background()

func TestMain(m *testing.M) {
	utils.InitLoggerWithLevel("error")
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// setupTestDB menggunakan SQLite in-memory, satu database per test
func setupTestDB(t *testing.T) *gorm.DB {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func setupServices(t *testing.T) (*gorm.DB, *services.Services) {
	db := setupTestDB(t)
	return db, services.New(db, services.Options{})
}

func seedTable(t *testing.T, db *gorm.DB, number string, capacity int) models.Table {
	table := models.Table{
		TableNumber: number,
		Capacity:    capacity,
		Position:    "indoor",
		Status:      models.TableStatusFree,
		Version:     1,
	}
	require.NoError(t, db.Create(&table).Error)
	return table
}

func seedCustomer(t *testing.T, svc *services.Services, name string) models.Customer {
	customer, err := svc.Customers.Create(name, "0812")
	require.NoError(t, err)
	return *customer
}

func bookingRequest(customerID uint, guests int) services.BookingRequest {
	return services.BookingRequest{
		CustomerID: customerID,
		Date:       "2026-03-14",
		TimeSlot:   "12:00",
		Guests:     guests,
	}
}

type response struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func perform(t *testing.T, router *gin.Engine, method, url string, payload interface{}) (*httptest.ResponseRecorder, response) {
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req, err := http.NewRequest(method, url, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func dataAs[T any](t *testing.T, resp response) T {
	var v T
	require.NoError(t, json.Unmarshal(resp.Data, &v))
	return v
}
