package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"slotline/models"
	"slotline/services/candidates"
	"slotline/services/render"
	"slotline/services/timeline"
	"slotline/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TimelineHandler serves candidate slots and timeline layouts.
type TimelineHandler struct {
	Candidates candidates.CandidateService
	Defaults   candidates.Defaults
	Style      render.Style
}

func NewTimelineHandler(cs candidates.CandidateService, defaults candidates.Defaults, style render.Style) *TimelineHandler {
	return &TimelineHandler{
		Candidates: cs,
		Defaults:   defaults,
		Style:      style,
	}
}

func candidateSet(id, date string, slots []models.TimeOfDay) models.CandidateSetDTO {
	return models.CandidateSetDTO{TimelineID: id, Date: date, Candidates: slots}
}

// CreateTimelineHandler handles POST /api/timelines.
func (h *TimelineHandler) CreateTimelineHandler(c *gin.Context) {
	id := h.Candidates.NewTimelineID()
	utils.ContextLogger(c).Info("Timeline created", zap.String("timelineID", id))
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// ListCandidatesHandler handles GET /api/timelines/:id/days/:date/candidates.
func (h *TimelineHandler) ListCandidatesHandler(c *gin.Context) {
	id, date := c.Param("id"), c.Param("date")
	slots, err := h.Candidates.List(c.Request.Context(), id, date)
	if err != nil {
		respondError(c, "Failed to list candidates", err)
		return
	}
	c.JSON(http.StatusOK, candidateSet(id, date, slots))
}

// AddCandidateHandler handles POST /api/timelines/:id/days/:date/candidates.
func (h *TimelineHandler) AddCandidateHandler(c *gin.Context) {
	id, date := c.Param("id"), c.Param("date")
	var req models.CandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	t, err := models.ParseTimeOfDay(req.Time)
	if err != nil {
		respondError(c, "Invalid time", err)
		return
	}

	slots, err := h.Candidates.Add(c.Request.Context(), id, date, t)
	if err != nil {
		respondError(c, "Failed to add candidate", err)
		return
	}
	c.JSON(http.StatusCreated, candidateSet(id, date, slots))
}

// UpdateCandidateHandler handles PUT /api/timelines/:id/days/:date/candidates/:time.
func (h *TimelineHandler) UpdateCandidateHandler(c *gin.Context) {
	id, date := c.Param("id"), c.Param("date")
	oldTime, err := models.ParseTimeOfDay(c.Param("time"))
	if err != nil {
		respondError(c, "Invalid time", err)
		return
	}
	var req models.CandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	newTime, err := models.ParseTimeOfDay(req.Time)
	if err != nil {
		respondError(c, "Invalid time", err)
		return
	}

	slots, err := h.Candidates.Update(c.Request.Context(), id, date, oldTime, newTime)
	if err != nil {
		respondError(c, "Failed to update candidate", err)
		return
	}
	c.JSON(http.StatusOK, candidateSet(id, date, slots))
}

// RemoveCandidateHandler handles DELETE /api/timelines/:id/days/:date/candidates/:time.
func (h *TimelineHandler) RemoveCandidateHandler(c *gin.Context) {
	id, date := c.Param("id"), c.Param("date")
	t, err := models.ParseTimeOfDay(c.Param("time"))
	if err != nil {
		respondError(c, "Invalid time", err)
		return
	}
	slots, err := h.Candidates.Remove(c.Request.Context(), id, date, t)
	if err != nil {
		respondError(c, "Failed to remove candidate", err)
		return
	}
	c.JSON(http.StatusOK, candidateSet(id, date, slots))
}

// CopyPreviousDayHandler handles POST /api/timelines/:id/days/:date/copy-previous.
func (h *TimelineHandler) CopyPreviousDayHandler(c *gin.Context) {
	id, date := c.Param("id"), c.Param("date")
	slots, err := h.Candidates.CopyFromPreviousDay(c.Request.Context(), id, date)
	if err != nil {
		respondError(c, "Failed to copy previous day", err)
		return
	}
	c.JSON(http.StatusOK, candidateSet(id, date, slots))
}

// NextStartTimeHandler handles GET /api/timelines/:id/days/:date/next-start.
func (h *TimelineHandler) NextStartTimeHandler(c *gin.Context) {
	id, date := c.Param("id"), c.Param("date")
	duration, err := queryInt(c, "duration")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid duration", err.Error())
		return
	}
	next, err := h.Candidates.NextStartTime(c.Request.Context(), id, date, duration)
	if err != nil {
		respondError(c, "Failed to suggest a start time", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"time": next})
}

// LayoutHandler handles GET /api/timelines/:id/days/:date/layout.
func (h *TimelineHandler) LayoutHandler(c *gin.Context) {
	layout, ok := h.layout(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, layout)
}

// LayoutSVGHandler handles GET /api/timelines/:id/days/:date/layout.svg.
func (h *TimelineHandler) LayoutSVGHandler(c *gin.Context) {
	layout, ok := h.layout(c)
	if !ok {
		return
	}
	style := h.Style
	if w, err := queryInt(c, "width"); err == nil && w > style.LabelWidth {
		style.Width = w
	}
	c.Data(http.StatusOK, "image/svg+xml", []byte(render.SVG(layout, style)))
}

func (h *TimelineHandler) layout(c *gin.Context) (models.TimelineLayout, bool) {
	opts, err := layoutOptions(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid layout parameters", err.Error())
		return models.TimelineLayout{}, false
	}
	layout, err := h.Candidates.Layout(c.Request.Context(), c.Param("id"), c.Param("date"), opts)
	if err != nil {
		respondError(c, "Failed to lay out timeline", err)
		return models.TimelineLayout{}, false
	}
	return layout, true
}

// StatelessLayoutHandler handles POST /api/layout. Nothing is stored.
func (h *TimelineHandler) StatelessLayoutHandler(c *gin.Context) {
	var req models.LayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	in := timeline.LayoutInput{
		Date:         req.Date,
		Window:       h.Defaults.Window,
		FitWindow:    req.FitWindow,
		Duration:     req.Duration,
		HourStep:     h.Defaults.HourStep,
		Candidates:   req.Candidates,
		Availability: req.Availability,
	}
	if req.Window != nil {
		in.Window = *req.Window
	}
	if req.HourStep > 0 {
		in.HourStep = req.HourStep
	}

	layout, err := timeline.BuildLayout(in)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to lay out timeline", err.Error())
		return
	}
	c.JSON(http.StatusOK, layout)
}

// layoutOptions reads duration, minHour, maxHour, hourStep, fit and
// participants from the query string.
func layoutOptions(c *gin.Context) (candidates.LayoutOptions, error) {
	var opts candidates.LayoutOptions
	var err error
	if opts.Duration, err = queryInt(c, "duration"); err != nil {
		return opts, err
	}
	if opts.HourStep, err = queryInt(c, "hourStep"); err != nil {
		return opts, err
	}

	minRaw, maxRaw := c.Query("minHour"), c.Query("maxHour")
	if minRaw != "" || maxRaw != "" {
		minHour, err := strconv.Atoi(minRaw)
		if err != nil {
			return opts, &candidates.ValidationError{Field: "minHour", Message: "must be an integer"}
		}
		maxHour, err := strconv.Atoi(maxRaw)
		if err != nil {
			return opts, &candidates.ValidationError{Field: "maxHour", Message: "must be an integer"}
		}
		opts.Window = &models.HourWindow{MinHour: minHour, MaxHour: maxHour}
		// an explicit window is shown as is unless fit=true
		opts.KeepWindow = true
	}
	if fit := c.Query("fit"); fit != "" {
		b, err := strconv.ParseBool(fit)
		if err != nil {
			return opts, &candidates.ValidationError{Field: "fit", Message: "must be a boolean"}
		}
		opts.KeepWindow = !b
	}

	if p := c.Query("participants"); p != "" {
		for _, email := range strings.Split(p, ",") {
			if email = strings.TrimSpace(email); email != "" {
				opts.Participants = append(opts.Participants, email)
			}
		}
	}
	return opts, nil
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, &candidates.ValidationError{Field: key, Message: "must be a non-negative integer"}
	}
	return v, nil
}
