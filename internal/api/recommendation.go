package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/saostartar/diet-recommendation-app/internal/middleware"
	"github.com/saostartar/diet-recommendation-app/internal/service"
	"github.com/saostartar/diet-recommendation-app/internal/types"
)

// RecommendationHandler exposes daily menu generation and feedback. The
// limiter may be nil when Redis is unavailable; generation then runs
// unthrottled and the quota endpoint is not mounted.
type RecommendationHandler struct {
	recs    service.IRecommendationService
	limiter *middleware.RateLimiter
}

func NewRecommendationHandler(recs service.IRecommendationService, limiter *middleware.RateLimiter) *RecommendationHandler {
	return &RecommendationHandler{recs: recs, limiter: limiter}
}

func (h *RecommendationHandler) RegisterRoutes(protected *gin.RouterGroup) {
	recs := protected.Group("/recommendations")
	{
		if h.limiter != nil {
			recs.POST("/daily-menu", h.limiter.RateLimitMiddleware(), h.GenerateDailyMenu)
			recs.GET("/daily-menu/quota", h.GetGenerationQuota)
		} else {
			recs.POST("/daily-menu", h.GenerateDailyMenu)
		}
		recs.GET("/daily-menu", h.GetDailyMenu)
		recs.POST("/:id/feedback", h.RecordFeedback)
	}
}

// GetGenerationQuota reports how many menu generations remain in the
// current window.
func (h *RecommendationHandler) GetGenerationQuota(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	remaining, resetTime, err := h.limiter.GetRemainingRequests(c.Request.Context(), userID.String())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quota temporarily unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"limit":     h.limiter.Limit(),
		"remaining": remaining,
		"reset_at":  resetTime.Unix(),
	})
}

func (h *RecommendationHandler) GenerateDailyMenu(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	date, ok := menuDate(c)
	if !ok {
		return
	}

	menu, err := h.recs.GenerateDailyMenu(c.Request.Context(), userID, date)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveGoal) {
			c.JSON(http.StatusConflict, gin.H{"error": "an active diet goal is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate menu"})
		return
	}

	c.JSON(http.StatusOK, menu)
}

func (h *RecommendationHandler) GetDailyMenu(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	date, ok := menuDate(c)
	if !ok {
		return
	}

	menu, err := h.recs.GetDailyMenu(c.Request.Context(), userID, date)
	if err != nil {
		if errors.Is(err, service.ErrMenuNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no menu generated for this date"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get menu"})
		return
	}

	c.JSON(http.StatusOK, menu)
}

func (h *RecommendationHandler) RecordFeedback(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recommendation id"})
		return
	}

	var req types.RecommendationFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.recs.RecordFeedback(c.Request.Context(), userID, recID, &req); err != nil {
		if errors.Is(err, service.ErrRecommendationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recommendation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "feedback recorded"})
}
