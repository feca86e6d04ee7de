// Package timeline holds the pure geometry of the slot picker timeline:
// clipping busy intervals to the visible hour window, converting times into
// horizontal percentages and splitting candidate slots into display rows.
//
// Every function here is pure. Callers validate windows and time strings at
// the boundary; inside the package a window is assumed to satisfy
// MinHour < MaxHour.
package timeline

import "slotline/models"

// TrimToWindow drops intervals lying completely outside window and clips the
// ones that are partially outside of it. Output order follows input order.
func TrimToWindow(intervals []models.Interval, window models.HourWindow) []models.Interval {
	minTime := int(window.MinTime())
	maxTime := int(window.MaxTime())

	trimmed := make([]models.Interval, 0, len(intervals))
	for _, iv := range intervals {
		start, end := int(iv.Start), int(iv.End)
		// an end before the start belongs to the next day
		if start > end {
			end += models.MinutesPerDay
		}
		if end < minTime || start >= maxTime {
			continue
		}

		start = max(start, minTime)
		end = min(end, maxTime)
		if start == end {
			continue
		}
		trimmed = append(trimmed, models.Interval{
			Start: models.TimeOfDay(start),
			End:   models.TimeOfDay(end),
		})
	}
	return trimmed
}
