package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"interview-service/internal/repository"
)

type ResultHandler struct {
	Repo *repository.ResultRepository
}

func NewResultHandler(repo *repository.ResultRepository) *ResultHandler {
	return &ResultHandler{Repo: repo}
}

func (h *ResultHandler) GetResultBySession(c *gin.Context) {
	record, err := h.Repo.FindBySession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *ResultHandler) GetResultsByUser(c *gin.Context) {
	records, err := h.Repo.FindByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": records})
}
