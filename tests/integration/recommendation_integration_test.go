package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anitha-dev/gigconnect-api/config"
	"github.com/anitha-dev/gigconnect-api/controllers"
	"github.com/anitha-dev/gigconnect-api/models"
	"github.com/anitha-dev/gigconnect-api/tests/testutil"
	"github.com/anitha-dev/gigconnect-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// RecommendationIntegrationTestSuite exercises the recommendation feed
// against profiles updated through the HTTP surface.
type RecommendationIntegrationTestSuite struct {
	suite.Suite
	router *gin.Engine
	db     *gorm.DB
}

// SetupSuite runs once before all tests
func (suite *RecommendationIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	utils.RegisterValidators()
}

// SetupTest runs before each test
func (suite *RecommendationIntegrationTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.JobApplication{},
		&models.Message{},
		&models.Notification{},
	)
	suite.NoError(err)

	config.SetDB(db)
	config.SetConfig(&config.Config{
		Port:         "8080",
		GoEnv:        "test",
		OnlineWindow: 2 * time.Minute,
	})

	suite.router = gin.New()
	api := suite.router.Group("/api")
	{
		api.POST("/register", controllers.Register)
		api.PUT("/users/:id", controllers.UpdateUser)
		api.POST("/jobs", controllers.CreateJob)
		api.GET("/jobs/recommended", controllers.RecommendedJobs)
	}
}

// TearDownTest runs after each test
func (suite *RecommendationIntegrationTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func (suite *RecommendationIntegrationTestSuite) requestJSON(method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	return w, response
}

func (suite *RecommendationIntegrationTestSuite) registerUser(name, email, phone string) string {
	w, response := suite.requestJSON("POST", "/api/register", map[string]interface{}{
		"name":  name,
		"email": email,
		"phone": phone,
	})
	suite.Equal(http.StatusCreated, w.Code)
	return response["user"].(map[string]interface{})["id"].(string)
}

func (suite *RecommendationIntegrationTestSuite) postJob(creatorID, title, category, location string) {
	w, _ := suite.requestJSON("POST", "/api/jobs", map[string]interface{}{
		"title":       title,
		"description": "integration job",
		"category":    category,
		"location":    location,
		"amount":      map[string]interface{}{"min": 100, "max": 300},
		"creatorId":   creatorID,
	})
	suite.Equal(http.StatusCreated, w.Code)
}

// TestFeedFollowsProfileSkills verifies the feed reorders as the worker
// updates their skills through the profile endpoint.
func (suite *RecommendationIntegrationTestSuite) TestFeedFollowsProfileSkills() {
	customerID := suite.registerUser("Customer", "customer@test.com", "111")
	workerID := suite.registerUser("Worker", "worker@test.com", "222")

	suite.postJob(customerID, "Typing backlog", "Office Work", "")
	suite.postJob(customerID, "Mehendi for a wedding", "Beauty & Wellness", "")

	// With no skills listed, everything surfaces unscored
	w, _ := suite.requestJSON("GET", "/api/jobs/recommended?userId="+workerID, nil)
	suite.Equal(http.StatusOK, w.Code)
	var feed []map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &feed))
	suite.Len(feed, 2)

	// Listing a skill narrows and scores the feed
	w, _ = suite.requestJSON("PUT", "/api/users/"+workerID, map[string]interface{}{
		"skills": []string{"Beauty Services"},
	})
	suite.Equal(http.StatusOK, w.Code)

	w, _ = suite.requestJSON("GET", "/api/jobs/recommended?userId="+workerID, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &feed))
	suite.Len(feed, 1)
	suite.Equal("Mehendi for a wedding", feed[0]["title"])
	suite.EqualValues(100, feed[0]["matchScore"])
}

// TestFeedRespectsLocation verifies the location filter applies on top of skills
func (suite *RecommendationIntegrationTestSuite) TestFeedRespectsLocation() {
	customerID := suite.registerUser("Customer", "customer@test.com", "111")
	workerID := suite.registerUser("Worker", "worker@test.com", "222")

	suite.postJob(customerID, "Local filing", "Office Work", "Hyderabad")
	suite.postJob(customerID, "Far filing", "Office Work", "Mumbai")

	w, _ := suite.requestJSON("PUT", "/api/users/"+workerID, map[string]interface{}{
		"address": "Hyderabad",
		"skills":  []string{"Data Entry"},
	})
	suite.Equal(http.StatusOK, w.Code)

	w, _ = suite.requestJSON("GET", "/api/jobs/recommended?userId="+workerID, nil)
	suite.Equal(http.StatusOK, w.Code)
	var feed []map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &feed))
	suite.Len(feed, 1)
	suite.Equal("Local filing", feed[0]["title"])
}

// TestRecommendationIntegrationSuite runs the integration test suite
func TestRecommendationIntegrationSuite(t *testing.T) {
	testutil.MustSetTestEnvironment(t)
	testutil.RequireTestEnvironment(t)
	suite.Run(t, new(RecommendationIntegrationTestSuite))
}
