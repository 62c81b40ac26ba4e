package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/saostartar/diet-recommendation-app/internal/service"
	"github.com/saostartar/diet-recommendation-app/internal/types"
)

// GoalHandler exposes diet goal management.
type GoalHandler struct {
	goals service.IGoalService
}

func NewGoalHandler(goals service.IGoalService) *GoalHandler {
	return &GoalHandler{goals: goals}
}

func (h *GoalHandler) RegisterRoutes(protected *gin.RouterGroup) {
	goals := protected.Group("/goals")
	{
		goals.POST("", h.CreateGoal)
		goals.GET("", h.ListGoals)
		goals.GET("/active", h.GetActiveGoal)
		goals.POST("/:id/complete", h.CompleteGoal)
	}
}

func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.goals.CreateGoal(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, goal)
}

func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	goals, err := h.goals.ListGoals(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list goals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

func (h *GoalHandler) GetActiveGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	goal, err := h.goals.GetActiveGoal(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveGoal) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active goal"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get goal"})
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) CompleteGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}

	goal, err := h.goals.CompleteGoal(c.Request.Context(), userID, goalID)
	if err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, goal)
}
