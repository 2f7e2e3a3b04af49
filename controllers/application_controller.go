package controllers

import (
	"net/http"

	"github.com/anitha-dev/gigconnect-api/config"
	"github.com/anitha-dev/gigconnect-api/models"
	"github.com/anitha-dev/gigconnect-api/services"
	"github.com/gin-gonic/gin"
)

// ApplyRequest represents the request body for applying to a job
type ApplyRequest struct {
	WorkerID string `json:"workerId" binding:"required"`
}

// CompleteJobRequest represents the request body for completing a job
type CompleteJobRequest struct {
	Rating float64 `json:"rating" binding:"required,gte=1,lte=5"`
	Review string  `json:"review"`
}

// appliedJob is a job annotated with the caller's own application, as
// returned by the my-applications view
type appliedJob struct {
	models.Job
	MyApplicationStatus string `json:"myApplicationStatus"`
	MyApplicationID     string `json:"myApplicationId"`
}

func lifecycle() *services.Lifecycle {
	return services.NewLifecycle(config.GetDB(), config.GetConfig().StrictUsers)
}

// ApplyToJob handles POST /api/jobs/:id/apply - a worker requests a job
func ApplyToJob(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	job, application, err := lifecycle().Apply(c.Param("id"), req.WorkerID)
	if err != nil {
		serviceError(c, err)
		return
	}

	services.NewPresence(config.GetDB()).Touch(req.WorkerID)
	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Application sent. Job is now On Hold.",
		"job":         job,
		"application": application,
	})
}

// AcceptApplication handles POST /api/applications/:id/accept
func AcceptApplication(c *gin.Context) {
	if err := lifecycle().Accept(c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RejectApplication handles POST /api/applications/:id/reject
func RejectApplication(c *gin.Context) {
	if err := lifecycle().Reject(c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CancelApplication handles POST /api/applications/:id/cancel
func CancelApplication(c *gin.Context) {
	if err := lifecycle().Cancel(c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CompleteJob handles POST /api/jobs/:id/complete - the customer signs off
// a locked job and rates the worker
func CompleteJob(c *gin.Context) {
	var req CompleteJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	if err := lifecycle().Complete(c.Param("id"), req.Rating, req.Review); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MyApplications handles POST /api/my-applications - jobs the caller has
// applied for, annotated with their application state
func MyApplications(c *gin.Context) {
	var req struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	db := config.GetDB()
	var apps []models.JobApplication
	if err := db.Where("worker_id = ?", req.UserID).
		Order("created_at ASC").
		Find(&apps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("DATABASE_ERROR", "Failed to fetch applications"))
		return
	}

	results := make([]appliedJob, 0, len(apps))
	for _, app := range apps {
		var job models.Job
		if err := db.First(&job, "id = ?", app.JobID).Error; err != nil {
			// Application rows can briefly outlive a deleted job
			continue
		}
		results = append(results, appliedJob{
			Job:                 job,
			MyApplicationStatus: app.Status,
			MyApplicationID:     app.ID,
		})
	}

	c.JSON(http.StatusOK, results)
}
