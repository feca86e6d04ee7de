package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Timeline endpoints
	CreateTimelineHandler  gin.HandlerFunc
	ListCandidatesHandler  gin.HandlerFunc
	AddCandidateHandler    gin.HandlerFunc
	UpdateCandidateHandler gin.HandlerFunc
	RemoveCandidateHandler gin.HandlerFunc
	CopyPreviousDayHandler gin.HandlerFunc
	NextStartTimeHandler   gin.HandlerFunc
	LayoutHandler          gin.HandlerFunc
	LayoutSVGHandler       gin.HandlerFunc
	StatelessLayoutHandler gin.HandlerFunc

	// Availability endpoints
	GetAvailabilityHandler     gin.HandlerFunc
	ReplaceAvailabilityHandler gin.HandlerFunc

	// Preference endpoints
	GetTimezoneHandler    gin.HandlerFunc
	SaveTimezoneHandler   gin.HandlerFunc
	RevertTimezoneHandler gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}
