package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/anitha-dev/gigconnect-api/services"
	"github.com/gin-gonic/gin"
)

// errorBody builds the standard failure envelope
func errorBody(code, message string) gin.H {
	return gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
}

// validationError responds 400 with binding details attached
func validationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request data",
			"details": err.Error(),
		},
	})
}

// serviceError maps service-layer sentinel errors to HTTP responses.
// Anything unrecognized is a store failure; the service already rolled its
// transaction back.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrJobNotFound):
		c.JSON(http.StatusNotFound, errorBody("JOB_NOT_FOUND", "Job not found"))
	case errors.Is(err, services.ErrApplicationNotFound):
		c.JSON(http.StatusNotFound, errorBody("APPLICATION_NOT_FOUND", "Application not found"))
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, errorBody("USER_NOT_FOUND", "User not found"))
	case errors.Is(err, services.ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, errorBody("NOTIFICATION_NOT_FOUND", "Notification not found"))
	case errors.Is(err, services.ErrJobNotOpen):
		c.JSON(http.StatusBadRequest, errorBody("JOB_NOT_OPEN", "Job no longer open"))
	case errors.Is(err, services.ErrJobNotLocked):
		c.JSON(http.StatusBadRequest, errorBody("JOB_NOT_LOCKED", "Job has no accepted worker to complete it"))
	case errors.Is(err, services.ErrApplicationNotPending):
		c.JSON(http.StatusBadRequest, errorBody("APPLICATION_NOT_PENDING", "Cannot cancel processed application"))
	case errors.Is(err, services.ErrAlreadyApplied):
		c.JSON(http.StatusConflict, errorBody("ALREADY_APPLIED", "Already applied"))
	case errors.Is(err, services.ErrApplicationDecided):
		c.JSON(http.StatusConflict, errorBody("APPLICATION_DECIDED", "Application has already been decided"))
	default:
		c.JSON(http.StatusInternalServerError, errorBody("DATABASE_ERROR", err.Error()))
	}
}

// isDuplicateError detects unique-constraint violations across PostgreSQL
// and SQLite by error text, the way both report them through gorm
func isDuplicateError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique")
}
