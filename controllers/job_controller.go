package controllers

import (
	"net/http"

	"github.com/anitha-dev/gigconnect-api/config"
	"github.com/anitha-dev/gigconnect-api/models"
	"github.com/anitha-dev/gigconnect-api/services"
	"github.com/gin-gonic/gin"
)

// CreateJobRequest represents the request body for posting a job
type CreateJobRequest struct {
	Title        string             `json:"title" binding:"required"`
	Description  string             `json:"description" binding:"required"`
	Category     string             `json:"category" binding:"required"`
	Amount       models.BudgetRange `json:"amount"`
	Location     string             `json:"location"`
	DeliveryType string             `json:"deliveryType"`
	Urgency      string             `json:"urgency"`
	CustomerName string             `json:"customerName"`
	PaymentMode  string             `json:"paymentMode"`
	CreatorID    string             `json:"creatorId" binding:"required"`
}

// postedJob is a job with its applications embedded, as returned by
// the my-postings view
type postedJob struct {
	models.Job
	Applications []models.JobApplication `json:"applications"`
}

// ListJobs handles GET /api/jobs - lists jobs still taking applications
// (open) or holding on one (on_hold)
func ListJobs(c *gin.Context) {
	db := config.GetDB()
	var jobs []models.Job
	if err := db.
		Where("status IN ?", []string{models.JobStatusOpen, models.JobStatusOnHold}).
		Order("created_at ASC").
		Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("DATABASE_ERROR", "Failed to fetch jobs"))
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// GetJob handles GET /api/jobs/:id - fetches a single job
func GetJob(c *gin.Context) {
	db := config.GetDB()
	var job models.Job
	if err := db.First(&job, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, errorBody("JOB_NOT_FOUND", "Job not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"job":     job,
	})
}

// CreateJob handles POST /api/jobs - posts a new job
func CreateJob(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	if req.Amount.Min <= 0 || req.Amount.Max <= 0 {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_BUDGET", "Budget amounts must be greater than 0"))
		return
	}
	if req.Amount.Min > req.Amount.Max {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_BUDGET", "Minimum budget cannot exceed maximum budget"))
		return
	}

	location := req.Location
	if location == "" {
		location = "Online"
	}
	deliveryType := req.DeliveryType
	if deliveryType == "" {
		deliveryType = "pickup"
	}
	urgency := req.Urgency
	if urgency == "" {
		urgency = "flexible"
	}
	paymentMode := req.PaymentMode
	if paymentMode == "" {
		paymentMode = "online"
	}

	job := models.Job{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		MinAmount:    req.Amount.Min,
		MaxAmount:    req.Amount.Max,
		Location:     location,
		DeliveryType: deliveryType,
		Urgency:      urgency,
		CustomerName: req.CustomerName,
		PaymentMode:  paymentMode,
		Status:       models.JobStatusOpen,
		CreatorID:    req.CreatorID,
	}

	db := config.GetDB()
	if err := db.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("DATABASE_ERROR", "Failed to create job"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"job":     job,
	})
}

// DeleteJob handles DELETE /api/jobs/:id - removes a job and its applications
func DeleteJob(c *gin.Context) {
	cfg := config.GetConfig()
	lifecycle := services.NewLifecycle(config.GetDB(), cfg.StrictUsers)
	if err := lifecycle.DeleteJob(c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MyPostings handles POST /api/my-postings - lists the caller's jobs with
// their applications embedded
func MyPostings(c *gin.Context) {
	var req struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	db := config.GetDB()
	var jobs []models.Job
	if err := db.Where("creator_id = ?", req.UserID).
		Order("created_at ASC").
		Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("DATABASE_ERROR", "Failed to fetch postings"))
		return
	}

	postings := make([]postedJob, 0, len(jobs))
	for _, job := range jobs {
		var apps []models.JobApplication
		if err := db.Where("job_id = ?", job.ID).
			Preload("Worker").
			Order("created_at ASC").
			Find(&apps).Error; err != nil {
			c.JSON(http.StatusInternalServerError, errorBody("DATABASE_ERROR", "Failed to fetch applications"))
			return
		}
		postings = append(postings, postedJob{Job: job, Applications: apps})
	}

	c.JSON(http.StatusOK, postings)
}

// RecommendedJobs handles GET /api/jobs/recommended?userId= - scored and
// sorted job matches for a worker
func RecommendedJobs(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, errorBody("VALIDATION_ERROR", "User ID required"))
		return
	}

	recommender := services.NewRecommender(config.GetDB())
	jobs, err := recommender.Recommend(userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}
