package controllers

import (
	"net/http"

	"github.com/anitha-dev/gigconnect-api/config"
	"github.com/anitha-dev/gigconnect-api/services"
	"github.com/gin-gonic/gin"
)

func notifications() *services.Notifications {
	return services.NewNotifications(config.GetDB())
}

// ListNotifications handles GET /api/notifications?userId= - a user's
// notifications, newest first
func ListNotifications(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, errorBody("VALIDATION_ERROR", "userId required"))
		return
	}

	list, err := notifications().List(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("DATABASE_ERROR", "Failed to fetch notifications"))
		return
	}
	c.JSON(http.StatusOK, list)
}

// NotificationCount handles GET /api/notifications/count?userId= - the
// unread badge count
func NotificationCount(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, errorBody("VALIDATION_ERROR", "userId required"))
		return
	}

	count, err := notifications().UnreadCount(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("DATABASE_ERROR", "Failed to count notifications"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkNotificationRead handles POST /api/notifications/:id/read
func MarkNotificationRead(c *gin.Context) {
	if err := notifications().MarkRead(c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MarkAllNotificationsRead handles POST /api/notifications/mark-all-read
func MarkAllNotificationsRead(c *gin.Context) {
	var req struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	if err := notifications().MarkAllRead(req.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("DATABASE_ERROR", "Failed to mark notifications read"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
