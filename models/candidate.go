package models

// CandidateSlot is one proposed start time laid out on the timeline.
type CandidateSlot struct {
	Time             TimeOfDay `json:"time"`
	Geometry         Geometry  `json:"geometry"`
	AvailableCount   int       `json:"availableCount"`
	BusyParticipants []string  `json:"busyParticipants,omitempty"`
	Text             string    `json:"text,omitempty"`
}

// TimelineLayout is everything needed to draw one day of the timeline.
type TimelineLayout struct {
	TimelineID    string                `json:"timelineId,omitempty"`
	Date          string                `json:"date"`
	Window        HourWindow            `json:"window"`
	HourSeries    []int                 `json:"hourSeries"`
	HourStep      int                   `json:"hourStep"`
	Duration      int                   `json:"duration"`
	Busy          []ParticipantGeometry `json:"busy"`
	Rows          [][]CandidateSlot     `json:"rows"`
	NextStartTime TimeOfDay             `json:"nextStartTime"`
}

// LayoutRequest is a stateless snapshot to lay out.
type LayoutRequest struct {
	Date         string                 `json:"date" binding:"required"`
	Duration     int                    `json:"duration" binding:"required,min=1"`
	Window       *HourWindow            `json:"window,omitempty"`
	FitWindow    bool                   `json:"fitWindow"`
	HourStep     int                    `json:"hourStep,omitempty"`
	Candidates   []TimeOfDay            `json:"candidates"`
	Availability []ParticipantBusySlots `json:"availability"`
}

// CandidateRequest carries a single start time.
type CandidateRequest struct {
	Time string `json:"time" binding:"required"`
}

// CandidateSetDTO is the candidate list of one timeline day.
type CandidateSetDTO struct {
	TimelineID string      `json:"timelineId"`
	Date       string      `json:"date"`
	Candidates []TimeOfDay `json:"candidates"`
}

// AvailabilityRequest replaces the busy slots known for one date.
type AvailabilityRequest struct {
	Participants []ParticipantBusySlots `json:"participants" binding:"required"`
}

// TimezoneRequest sets a user's creation timezone.
type TimezoneRequest struct {
	Timezone string `json:"timezone" binding:"required"`
}

// TimezonePreference is the resolved timezone of a user.
type TimezonePreference struct {
	UserID   string `json:"userId"`
	Timezone string `json:"timezone"`
	// Custom is false when Timezone is the configured local default.
	Custom bool `json:"custom"`
}
