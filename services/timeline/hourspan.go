package timeline

import (
	"slices"

	"slotline/models"
)

// SpanTwoDays would let the window run past 24:00. Cross-midnight timelines
// are not supported yet, so windows are always capped at 24.
const SpanTwoDays = false

// DefaultStartTime is suggested for a new slot when a day has no candidates.
var DefaultStartTime = models.FromHour(9)

// FitHourSpan picks the visible window for a day's candidates. The defaults
// are kept when every slot fits inside them; otherwise a window of the default
// span is shifted over the slots, or widened when they do not fit in it.
func FitHourSpan(candidates []models.TimeOfDay, duration int, defaults models.HourWindow) models.HourWindow {
	if len(candidates) == 0 {
		return defaults
	}

	minHour, maxHour := 24, 0
	for _, c := range candidates {
		minHour = min(minHour, c.Hours())
		end := int(c) + duration
		maxHour = max(maxHour, (end+59)/60)
	}
	if !SpanTwoDays {
		maxHour = min(maxHour, 24)
	}
	if maxHour <= minHour {
		maxHour = minHour + 1
	}

	if defaults.MinHour <= minHour && maxHour <= defaults.MaxHour {
		return defaults
	}

	defaultSpan := defaults.Span()
	if maxHour-minHour <= defaultSpan {
		start := maxHour - defaultSpan
		if minHour < defaults.MinHour {
			start = minHour
		}
		start = max(0, min(start, 24-defaultSpan))
		return models.HourWindow{MinHour: start, MaxHour: start + defaultSpan}
	}
	return models.HourWindow{MinHour: minHour, MaxHour: maxHour}
}

// HourSeries lists the header tick hours of window, step hours apart.
func HourSeries(window models.HourWindow, step int) []int {
	if step <= 0 {
		step = 1
	}
	var hours []int
	for h := window.MinHour; h <= window.MaxHour; h += step {
		hours = append(hours, h)
	}
	return hours
}

// NextStartTime suggests the start of the next slot: right after the latest
// candidate, or DefaultStartTime when there is none.
func NextStartTime(candidates []models.TimeOfDay, duration int) models.TimeOfDay {
	if len(candidates) == 0 {
		return DefaultStartTime
	}
	return slices.Max(candidates).Add(duration)
}
