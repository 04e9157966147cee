package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"interview-service/internal/models"
	"interview-service/internal/service"
)

type TestHandler struct {
	Service *service.TestService
}

func NewTestHandler(s *service.TestService) *TestHandler {
	return &TestHandler{Service: s}
}

// CreateTest schedules an interview and issues an activation code.
func (h *TestHandler) CreateTest(c *gin.Context) {
	var req struct {
		UserID       string `json:"user_id" binding:"required"`
		UserName     string `json:"user_name"`
		JobID        string `json:"job_id"`
		JobTitle     string `json:"job_title"`
		Language     string `json:"language" binding:"required"`
		Difficulty   string `json:"difficulty" binding:"required"`
		TestTime     int    `json:"test_time" binding:"required"`
		ExaminePoint string `json:"examine_point" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	test, err := h.Service.CreateTest(c.Request.Context(), service.CreateTestParams{
		UserID:       req.UserID,
		UserName:     req.UserName,
		JobID:        req.JobID,
		JobTitle:     req.JobTitle,
		Language:     models.Language(req.Language),
		Difficulty:   models.Difficulty(req.Difficulty),
		TestTime:     req.TestTime,
		ExaminePoint: req.ExaminePoint,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, test)
}

// ActivateTest redeems an activation code and returns the session
// configuration the candidate should create their session with.
func (h *TestHandler) ActivateTest(c *gin.Context) {
	var req struct {
		ActivateCode string `json:"activate_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	config, err := h.Service.Activate(c.Request.Context(), req.ActivateCode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, config)
}
