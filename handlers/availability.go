package handlers

import (
	"net/http"

	"slotline/models"
	"slotline/services/availability"
	"slotline/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler serves participants' busy slots.
type AvailabilityHandler struct {
	Service availability.AvailabilityService
}

func NewAvailabilityHandler(s availability.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: s}
}

// GetAvailabilityHandler handles GET /api/availability/:date.
func (h *AvailabilityHandler) GetAvailabilityHandler(c *gin.Context) {
	date := c.Param("date")
	participants, err := h.Service.Get(c.Request.Context(), date)
	if err != nil {
		respondError(c, "Failed to fetch availability", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "participants": participants})
}

// ReplaceAvailabilityHandler handles PUT /api/availability/:date.
func (h *AvailabilityHandler) ReplaceAvailabilityHandler(c *gin.Context) {
	date := c.Param("date")
	var req models.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if err := h.Service.Replace(c.Request.Context(), date, req.Participants); err != nil {
		respondError(c, "Failed to store availability", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "participants": req.Participants})
}
