package controllers

import (
	"net/http"
	"testing"

	"github.com/anitha-dev/gigconnect-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedNotification(t *testing.T, db *gorm.DB, userID, kind, message string) *models.Notification {
	t.Helper()

	n := models.Notification{UserID: userID, Type: kind, Message: message}
	if err := db.Create(&n).Error; err != nil {
		t.Fatalf("Failed to seed notification: %v", err)
	}
	return &n
}

func TestListNotificationsEndpoint(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "user")
	seedNotification(t, db, user.ID, models.NotificationTypeRequest, "someone applied")
	seedNotification(t, db, "other", models.NotificationTypeInfo, "not yours")
	router := newTestRouter()

	w, _ := performJSON(t, router, "GET", "/api/notifications?userId="+user.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	list := decodeList(t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "someone applied", list[0]["message"])
	assert.Equal(t, models.NotificationTypeRequest, list[0]["type"])
	assert.Equal(t, false, list[0]["read"])

	w, response := performJSON(t, router, "GET", "/api/notifications", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(response))
}

func TestNotificationCountEndpoint(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "user")
	seedNotification(t, db, user.ID, models.NotificationTypeRequest, "a")
	read := seedNotification(t, db, user.ID, models.NotificationTypeInfo, "b")
	require.NoError(t, db.Model(read).Update("read", true).Error)
	router := newTestRouter()

	w, response := performJSON(t, router, "GET", "/api/notifications/count?userId="+user.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, response["count"])

	w, response = performJSON(t, router, "GET", "/api/notifications/count", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(response))
}

func TestMarkNotificationReadEndpoint(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "user")
	n := seedNotification(t, db, user.ID, models.NotificationTypeRequest, "a")
	router := newTestRouter()

	w, _ := performJSON(t, router, "POST", "/api/notifications/"+n.ID+"/read", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Notification
	require.NoError(t, db.First(&got, "id = ?", n.ID).Error)
	assert.True(t, got.Read)

	// Marking again stays 200; the operation is idempotent
	w, _ = performJSON(t, router, "POST", "/api/notifications/"+n.ID+"/read", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, response := performJSON(t, router, "POST", "/api/notifications/missing/read", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOTIFICATION_NOT_FOUND", errorCode(response))
}

func TestMarkAllNotificationsReadEndpoint(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "user")
	seedNotification(t, db, user.ID, models.NotificationTypeRequest, "a")
	seedNotification(t, db, user.ID, models.NotificationTypeMessage, "b")
	router := newTestRouter()

	w, _ := performJSON(t, router, "POST", "/api/notifications/mark-all-read",
		map[string]interface{}{"userId": user.ID})
	require.Equal(t, http.StatusOK, w.Code)

	var unread int64
	db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", user.ID, false).
		Count(&unread)
	assert.Zero(t, unread)
}
