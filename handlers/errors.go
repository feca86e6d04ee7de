package handlers

import (
	"errors"
	"net/http"

	"slotline/models"
	"slotline/services/availability"
	"slotline/services/candidates"
	"slotline/services/preferences"
	"slotline/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, message string, err error) {
	var vErr *candidates.ValidationError
	switch {
	case errors.As(err, &vErr),
		errors.Is(err, models.ErrInvalidTimeFormat),
		errors.Is(err, models.ErrInvalidWindow),
		errors.Is(err, availability.ErrInvalidAvailability),
		errors.Is(err, preferences.ErrInvalidTimezone):
		utils.JSONError(c, http.StatusBadRequest, message, err.Error())
	case errors.Is(err, candidates.ErrSlotTaken):
		utils.JSONError(c, http.StatusConflict, message, err.Error())
	case errors.Is(err, candidates.ErrSlotNotFound),
		errors.Is(err, candidates.ErrNoPreviousSlots):
		utils.JSONError(c, http.StatusNotFound, message, err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, message, err.Error())
	}
}
