package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saostartar/diet-recommendation-app/internal/service"
	"github.com/saostartar/diet-recommendation-app/internal/types"
)

// PreferenceHandler exposes the user's dietary preference set.
type PreferenceHandler struct {
	prefs service.IPreferenceService
}

func NewPreferenceHandler(prefs service.IPreferenceService) *PreferenceHandler {
	return &PreferenceHandler{prefs: prefs}
}

func (h *PreferenceHandler) RegisterRoutes(protected *gin.RouterGroup) {
	prefs := protected.Group("/preferences")
	{
		prefs.GET("", h.GetPreferences)
		prefs.PUT("", h.UpdatePreferences)
	}
}

func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	prefs, err := h.prefs.GetActivePreferences(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

func (h *PreferenceHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prefs, err := h.prefs.ReplacePreferences(c.Request.Context(), userID, req.Preferences)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}
