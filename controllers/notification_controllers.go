package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/utils"
)

const defaultNotificationLimit = 50

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetAllNotifications -> ?channel=kitchen&limit=20, terbaru dulu
func (nc *NotificationController) GetAllNotifications(c *gin.Context) {
	q := nc.DB.Order("id desc").Limit(queryLimit(c))
	if ch := c.Query("channel"); ch != "" {
		q = q.Where("channel = ?", ch)
	}

	var notifs []models.Notification
	if err := q.Find(&notifs).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All notifications", notifs)
}

// GetCustomerNotifications -> pesan untuk satu customer
func (nc *NotificationController) GetCustomerNotifications(c *gin.Context) {
	id, ok := paramID(c, "customer_id")
	if !ok {
		return
	}

	var notifs []models.Notification
	if err := nc.DB.Where("channel = ? AND customer_id = ?", models.ChannelCustomer, id).
		Order("id desc").Limit(queryLimit(c)).Find(&notifs).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer notifications", notifs)
}

// GetNotificationByID
func (nc *NotificationController) GetNotificationByID(c *gin.Context) {
	id, ok := paramID(c, "notif_id")
	if !ok {
		return
	}

	var notif models.Notification
	if err := nc.DB.First(&notif, id).Error; err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, gorm.ErrRecordNotFound) {
			code = http.StatusNotFound
		}
		utils.RespondError(c, code, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notification detail", notif)
}

// DeleteNotification
func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	id, ok := paramID(c, "notif_id")
	if !ok {
		return
	}

	if err := nc.DB.Delete(&models.Notification{}, id).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notification deleted", gin.H{"notif_id": id})
}

func queryLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 || limit > 500 {
		return defaultNotificationLimit
	}
	return limit
}
