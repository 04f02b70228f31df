package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/kds"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/services"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/utils"
)

type AdminController struct {
	DB      *gorm.DB
	Tables  *services.TableRegistry
	History *services.HistoryLedger
	Refunds *services.RefundMonitor
	Now     func() time.Time
}

func NewAdminController(db *gorm.DB, tables *services.TableRegistry, history *services.HistoryLedger, refunds *services.RefundMonitor) *AdminController {
	return &AdminController{DB: db, Tables: tables, History: history, Refunds: refunds, Now: time.Now}
}

type DashboardStats struct {
	TableStats     map[string]int64 `json:"table_stats"`
	BookingStats   map[string]int64 `json:"booking_stats"`
	OrderStats     map[string]int64 `json:"order_stats"`
	TodayBookings  int64            `json:"today_bookings"`
	TodayRevenue   float64          `json:"today_revenue"`
	PendingRefunds int              `json:"pending_refunds"`
	ConnectedKDS   int              `json:"connected_kds"`
}

// GetDashboardStats mengambil statistik untuk dashboard admin
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	var stats DashboardStats
	var err error

	if stats.TableStats, err = ac.Tables.Stats(); err != nil {
		respondServiceError(c, err)
		return
	}
	if stats.BookingStats, err = countByStatus(ac.DB, &models.Booking{}); err != nil {
		respondServiceError(c, err)
		return
	}
	if stats.OrderStats, err = countByStatus(ac.DB, &models.Order{}); err != nil {
		respondServiceError(c, err)
		return
	}

	now := ac.Now()
	today := now.Format("2006-01-02")
	if err := ac.DB.Model(&models.Booking{}).Where("date = ?", today).Count(&stats.TodayBookings).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	// Today's revenue
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := ac.DB.Model(&models.Payment{}).
		Where("status = ? AND paid_at >= ?", models.PaymentStatusPaid, start).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TodayRevenue).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	stats.PendingRefunds = len(ac.Refunds.Pending())
	stats.ConnectedKDS = kds.ClientCount()

	// Broadcast stats update
	kds.BroadcastDashboardUpdate(stats)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}

// GetUtilization -> laporan pemakaian per meja dari ledger
func (ac *AdminController) GetUtilization(c *gin.Context) {
	report, err := ac.History.Utilization()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table utilization", report)
}

func countByStatus(db *gorm.DB, model interface{}) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := db.Model(model).Select("status, count(*) as count").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
