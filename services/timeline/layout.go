package timeline

import "slotline/models"

// OverflowInset keeps a slot starting at or past the right edge visible.
const OverflowInset = 0.5

// Width is the share of the window, in percent, covered by [start, end).
func Width(start, end models.TimeOfDay, window models.HourWindow) float64 {
	startMins := max(int(start), window.MinHour*60)
	endMins := min(int(end), window.MaxHour*60)

	if endMins < startMins {
		// end is beyond 24:00 of the current day
		endMins = models.MinutesPerDay
	}

	return float64(endMins-startMins) / float64(window.SpanMinutes()) * 100
}

// Position is the left offset of start inside the window, in percent.
func Position(start models.TimeOfDay, window models.HourWindow) float64 {
	startMins := int(start) - window.MinHour*60
	if startMins < 0 {
		startMins = 0
	}

	position := float64(startMins) / float64(window.SpanMinutes()) * 100
	if position < 100 {
		return position
	}
	return 100 - OverflowInset
}

// SlotGeometry lays out [start, end) inside window.
func SlotGeometry(start, end models.TimeOfDay, window models.HourWindow) models.Geometry {
	return models.Geometry{
		StartTime: start,
		EndTime:   end,
		Width:     Width(start, end, window),
		Position:  Position(start, window),
		Key:       models.GeometryKey(start, end),
	}
}

// CandidateGeometry lays out a candidate slot of duration minutes.
func CandidateGeometry(start models.TimeOfDay, duration int, window models.HourWindow) models.Geometry {
	return SlotGeometry(start, start.Add(duration), window)
}
