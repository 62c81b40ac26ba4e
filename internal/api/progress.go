package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saostartar/diet-recommendation-app/internal/service"
	"github.com/saostartar/diet-recommendation-app/internal/types"
)

// ProgressHandler exposes weight tracking.
type ProgressHandler struct {
	progress service.IProgressService
}

func NewProgressHandler(progress service.IProgressService) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

func (h *ProgressHandler) RegisterRoutes(protected *gin.RouterGroup) {
	progress := protected.Group("/progress")
	{
		progress.GET("/weight", h.GetWeightProgress)
		progress.POST("/weight", h.LogWeight)
	}
}

func (h *ProgressHandler) LogWeight(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.LogWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.progress.LogWeight(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log weight"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *ProgressHandler) GetWeightProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	progress, err := h.progress.WeightHistory(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load weight progress"})
		return
	}

	c.JSON(http.StatusOK, progress)
}
