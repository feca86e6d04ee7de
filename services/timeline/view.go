package timeline

import (
	"fmt"

	"slotline/models"
	"slotline/services/conflicts"
)

// LayoutInput is an immutable snapshot of one timeline day.
type LayoutInput struct {
	TimelineID   string
	Date         string
	Window       models.HourWindow
	FitWindow    bool
	Duration     int
	HourStep     int
	Candidates   []models.TimeOfDay
	Availability []models.ParticipantBusySlots
}

// BuildLayout validates the snapshot and computes everything needed to draw it.
func BuildLayout(in LayoutInput) (models.TimelineLayout, error) {
	if err := in.Window.Validate(); err != nil {
		return models.TimelineLayout{}, err
	}
	if in.Duration <= 0 {
		return models.TimelineLayout{}, fmt.Errorf("duration must be positive, got %d", in.Duration)
	}
	for _, c := range in.Candidates {
		if !c.Valid() || c == models.EndOfDay {
			return models.TimelineLayout{}, fmt.Errorf("%w: candidate %d", models.ErrInvalidTimeFormat, int(c))
		}
	}

	window := in.Window
	if in.FitWindow {
		window = FitHourSpan(in.Candidates, in.Duration, in.Window)
	}

	idx, err := conflicts.NewIndex(in.Availability)
	if err != nil {
		return models.TimelineLayout{}, err
	}

	groups := GroupOverlapping(in.Candidates, in.Duration)
	rows := make([][]models.CandidateSlot, 0, len(groups))
	for _, group := range groups {
		row := make([]models.CandidateSlot, 0, len(group))
		for _, start := range group {
			available := idx.AvailableCount(start, in.Duration)
			slot := models.CandidateSlot{
				Time:             start,
				Geometry:         CandidateGeometry(start, in.Duration, window),
				AvailableCount:   available,
				BusyParticipants: idx.Busy(start, in.Duration),
			}
			if len(in.Availability) > 0 {
				slot.Text = conflicts.AvailabilityText(available)
			}
			row = append(row, slot)
		}
		rows = append(rows, row)
	}

	return models.TimelineLayout{
		TimelineID:    in.TimelineID,
		Date:          in.Date,
		Window:        window,
		HourSeries:    HourSeries(window, in.HourStep),
		HourStep:      in.HourStep,
		Duration:      in.Duration,
		Busy:          ProjectBusySlots(in.Availability, window),
		Rows:          rows,
		NextStartTime: NextStartTime(in.Candidates, in.Duration),
	}, nil
}
