package timeline

import "slotline/models"

// ProjectBusySlots trims every participant's busy intervals to window and lays
// them out. Participant order and the loading flag are preserved.
func ProjectBusySlots(participants []models.ParticipantBusySlots, window models.HourWindow) []models.ParticipantGeometry {
	projected := make([]models.ParticipantGeometry, 0, len(participants))
	for _, p := range participants {
		trimmed := TrimToWindow(p.BusySlots, window)
		slots := make([]models.Geometry, 0, len(trimmed))
		for _, iv := range trimmed {
			slots = append(slots, SlotGeometry(iv.Start, iv.End, window))
		}
		projected = append(projected, models.ParticipantGeometry{
			Participant:      p.Participant,
			BusySlotsLoading: p.BusySlotsLoading,
			BusySlots:        slots,
		})
	}
	return projected
}
