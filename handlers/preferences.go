package handlers

import (
	"net/http"

	"slotline/models"
	"slotline/services/preferences"
	"slotline/utils"

	"github.com/gin-gonic/gin"
)

// PreferenceHandler serves per-user timezone preferences.
type PreferenceHandler struct {
	Timezones preferences.TimezoneService
}

func NewPreferenceHandler(ts preferences.TimezoneService) *PreferenceHandler {
	return &PreferenceHandler{Timezones: ts}
}

// GetTimezoneHandler handles GET /api/preferences/:userID/timezone.
func (h *PreferenceHandler) GetTimezoneHandler(c *gin.Context) {
	pref, err := h.Timezones.Load(c.Request.Context(), c.Param("userID"))
	if err != nil {
		respondError(c, "Failed to load timezone", err)
		return
	}
	c.JSON(http.StatusOK, pref)
}

// SaveTimezoneHandler handles PUT /api/preferences/:userID/timezone.
func (h *PreferenceHandler) SaveTimezoneHandler(c *gin.Context) {
	var req models.TimezoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	pref, err := h.Timezones.Save(c.Request.Context(), c.Param("userID"), req.Timezone)
	if err != nil {
		respondError(c, "Failed to save timezone", err)
		return
	}
	c.JSON(http.StatusOK, pref)
}

// RevertTimezoneHandler handles DELETE /api/preferences/:userID/timezone.
func (h *PreferenceHandler) RevertTimezoneHandler(c *gin.Context) {
	pref, err := h.Timezones.Revert(c.Request.Context(), c.Param("userID"))
	if err != nil {
		respondError(c, "Failed to revert timezone", err)
		return
	}
	c.JSON(http.StatusOK, pref)
}
