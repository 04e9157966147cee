package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"interview-service/internal/engine"
	"interview-service/internal/models"
	"interview-service/internal/repository"
)

type SessionHandler struct {
	Engine      *engine.Engine
	Checkpoints *repository.CheckpointRepository
}

func NewSessionHandler(eng *engine.Engine, checkpoints *repository.CheckpointRepository) *SessionHandler {
	return &SessionHandler{Engine: eng, Checkpoints: checkpoints}
}

// CreateSession starts an interview session, or returns the committed view
// of an existing one (re-entrant on session id).
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req struct {
		SessionID       string `json:"session_id" binding:"required"`
		JobTitle        string `json:"job_title"`
		KnowledgePoints string `json:"knowledge_points" binding:"required"`
		DurationMinutes int    `json:"duration_minutes" binding:"required"`
		Language        string `json:"language" binding:"required"`
		Difficulty      string `json:"difficulty" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	config := models.SessionConfig{
		SessionID:       req.SessionID,
		UserID:          c.GetHeader("X-User-ID"),
		JobTitle:        req.JobTitle,
		KnowledgePoints: req.KnowledgePoints,
		DurationMinutes: req.DurationMinutes,
		Language:        models.Language(req.Language),
		Difficulty:      models.Difficulty(req.Difficulty),
	}

	result, err := h.Engine.Create(c.Request.Context(), config)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SubmitAnswer resumes a session suspended in AWAITING_ANSWER with the
// candidate's answer.
func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	sessionID := c.Param("id")

	var req struct {
		AnswerText string `json:"answer_text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid answer format",
			"details": err.Error(),
		})
		return
	}

	result, err := h.Engine.Resume(c.Request.Context(), sessionID, req.AnswerText)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetSessionStatus reports the committed state without mutating anything.
func (h *SessionHandler) GetSessionStatus(c *gin.Context) {
	sessionID := c.Param("id")

	cp, err := h.Checkpoints.Get(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	status := gin.H{
		"session_id":      cp.SessionID,
		"state":           cp.State,
		"question_count":  len(cp.Payload.QAHistory),
		"elapsed_seconds": int64(time.Since(cp.Payload.StartTime) / time.Second),
	}
	if cp.Payload.PendingQuestion != nil {
		status["pending_sequence"] = cp.Payload.PendingQuestion.SequenceNumber
	}
	c.JSON(http.StatusOK, status)
}

// GetSessionResult returns the terminal result once the session is over.
func (h *SessionHandler) GetSessionResult(c *gin.Context) {
	sessionID := c.Param("id")

	cp, err := h.Checkpoints.Get(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	if cp.State != models.StateTerminated || cp.Payload.Result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session has no result yet"})
		return
	}
	c.JSON(http.StatusOK, cp.Payload.Result)
}
