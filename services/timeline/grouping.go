package timeline

import (
	"slices"

	"slotline/models"
)

// GroupOverlapping splits candidate start times into display rows.
//
// Candidates are walked in chronological order. Whenever the next candidate
// starts at or before the end of the current one, the accumulated row is
// closed with the current candidate in it, so the two overlapping slots end up
// in different rows. The last row is always returned, even when empty.
func GroupOverlapping(startTimes []models.TimeOfDay, duration int) [][]models.TimeOfDay {
	sorted := slices.Clone(startTimes)
	slices.Sort(sorted)

	var groups [][]models.TimeOfDay
	current := []models.TimeOfDay{}
	for i, candidate := range sorted {
		if i+1 >= len(sorted) {
			current = append(current, candidate)
			continue
		}

		// not wrapped: a slot running past midnight still covers every later start
		endTime := int(candidate) + duration
		if int(sorted[i+1]) <= endTime {
			groups = append(groups, append(current, candidate))
			current = []models.TimeOfDay{}
		} else {
			current = append(current, candidate)
		}
	}
	return append(groups, current)
}
