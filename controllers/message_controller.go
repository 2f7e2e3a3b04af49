package controllers

import (
	"net/http"

	"github.com/anitha-dev/gigconnect-api/config"
	"github.com/anitha-dev/gigconnect-api/services"
	"github.com/gin-gonic/gin"
)

// SendMessageRequest represents the request body for sending a chat message
type SendMessageRequest struct {
	JobID    string `json:"jobId" binding:"required"`
	SenderID string `json:"senderId" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

func chat() *services.Chat {
	return services.NewChat(config.GetDB(), config.GetConfig().StrictUsers)
}

// SendMessage handles POST /api/messages - appends a message to a job chat
func SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	message, err := chat().Send(req.JobID, req.SenderID, req.Content)
	if err != nil {
		serviceError(c, err)
		return
	}

	services.NewPresence(config.GetDB()).Touch(req.SenderID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}

// ListMessages handles GET /api/messages/:jobId - a job's chat history in
// chronological order
func ListMessages(c *gin.Context) {
	messages, err := chat().History(c.Param("jobId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("DATABASE_ERROR", "Failed to fetch messages"))
		return
	}
	c.JSON(http.StatusOK, messages)
}

// MarkMessagesRead handles POST /api/messages/:jobId/mark-read - marks the
// messages sent to the caller in this job as read
func MarkMessagesRead(c *gin.Context) {
	var req struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	if err := chat().MarkRead(c.Param("jobId"), req.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("DATABASE_ERROR", "Failed to mark messages read"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
