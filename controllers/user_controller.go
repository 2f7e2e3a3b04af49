package controllers

import (
	"net/http"
	"strings"

	"github.com/anitha-dev/gigconnect-api/config"
	"github.com/anitha-dev/gigconnect-api/models"
	"github.com/anitha-dev/gigconnect-api/services"
	"github.com/anitha-dev/gigconnect-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// UpdateUserRequest represents the request body for a profile update.
// Rating, review count and credits are client-writable because the system
// has no authentication layer; callers already act as any user by id.
type UpdateUserRequest struct {
	Name         *string  `json:"name"`
	Email        *string  `json:"email" binding:"omitempty,email"`
	Phone        *string  `json:"phone"`
	Address      *string  `json:"address"`
	Availability *string  `json:"availability"`
	Skills       []string `json:"skills" binding:"omitempty,dive,skillname"`
	Rating       *float64 `json:"rating" binding:"omitempty,gte=0,lte=5"`
	ReviewCount  *int     `json:"reviewCount" binding:"omitempty,gte=0"`
	Credits      *int     `json:"credits" binding:"omitempty,gte=0"`
}

// GetUser handles GET /api/users/:id - fetches a profile
func GetUser(c *gin.Context) {
	db := config.GetDB()
	var user models.User
	if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, errorBody("USER_NOT_FOUND", "User not found"))
		return
	}

	user.MarkOnline(config.GetConfig().OnlineWindow)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

// GetUserStatus handles GET /api/users/:id/status - the profile plus the
// derived online flag, polled by chat clients
func GetUserStatus(c *gin.Context) {
	GetUser(c)
}

// UpdateUser handles PUT /api/users/:id - partial profile update
func UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	db := config.GetDB()
	var user models.User
	if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, errorBody("USER_NOT_FOUND", "User not found"))
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Availability != nil {
		updates["availability"] = *req.Availability
	}
	if req.Skills != nil {
		updates["skills"] = datatypes.JSONSlice[string](utils.NormalizeSkills(req.Skills))
	}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	if req.ReviewCount != nil {
		updates["review_count"] = *req.ReviewCount
	}
	if req.Credits != nil {
		updates["credits"] = *req.Credits
	}

	if len(updates) == 0 {
		user.MarkOnline(config.GetConfig().OnlineWindow)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"user":    user,
		})
		return
	}

	if req.Phone != nil {
		var count int64
		if err := db.Model(&models.User{}).
			Where("phone = ? AND id <> ?", *req.Phone, user.ID).
			Count(&count).Error; err == nil && count > 0 {
			c.JSON(http.StatusConflict, errorBody("PHONE_EXISTS", "Phone number already registered"))
			return
		}
	}

	if err := db.Model(&user).Updates(updates).Error; err != nil {
		if isDuplicateError(err) {
			c.JSON(http.StatusConflict, errorBody("EMAIL_EXISTS", "Email already registered"))
			return
		}
		c.JSON(http.StatusInternalServerError, errorBody("DATABASE_ERROR", "Failed to update user"))
		return
	}

	if err := db.First(&user, "id = ?", user.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("DATABASE_ERROR", "Failed to fetch updated user"))
		return
	}

	user.MarkOnline(config.GetConfig().OnlineWindow)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

// Heartbeat handles POST /api/users/:id/heartbeat - a lightweight presence
// ping. Always succeeds; the touch itself is best-effort.
func Heartbeat(c *gin.Context) {
	services.NewPresence(config.GetDB()).Touch(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"success": true})
}
