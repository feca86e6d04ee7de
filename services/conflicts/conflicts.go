// Package conflicts answers which participants are busy during a candidate slot.
package conflicts

import (
	"fmt"

	"slotline/models"

	"github.com/rdleal/intervalst/interval"
)

// Index keeps one interval search tree of busy minutes per participant.
// Intervals are stored closed, [start, end-1], so touching slots do not conflict.
type Index struct {
	participants []participantTree
}

type participantTree struct {
	email   string
	loading bool
	tree    *interval.SearchTree[int, int] // value: busy slot index; bounds: minutes since midnight
}

// NewIndex builds the search trees for every participant.
func NewIndex(participants []models.ParticipantBusySlots) (*Index, error) {
	idx := &Index{participants: make([]participantTree, 0, len(participants))}
	for _, p := range participants {
		pt := participantTree{
			email:   p.Participant.Email,
			loading: p.BusySlotsLoading,
			tree:    interval.NewSearchTree[int](func(x, y int) int { return x - y }),
		}
		for i, iv := range p.BusySlots {
			start, end := int(iv.Start), int(iv.End)
			if start > end {
				end += models.MinutesPerDay
			}
			if start == end {
				continue
			}
			if err := pt.tree.Insert(start, end-1, i); err != nil {
				return nil, fmt.Errorf("index busy slot %s of %s: %w", models.GeometryKey(iv.Start, iv.End), pt.email, err)
			}
		}
		idx.participants = append(idx.participants, pt)
	}
	return idx, nil
}

// Busy returns the emails of participants with a busy interval intersecting
// the slot. Participants whose busy slots are still loading are skipped.
func (idx *Index) Busy(start models.TimeOfDay, duration int) []string {
	if duration <= 0 {
		return nil
	}
	from, to := int(start), int(start)+duration-1

	var busy []string
	for _, pt := range idx.participants {
		if pt.loading {
			continue
		}
		if _, ok := pt.tree.AnyIntersection(from, to); ok {
			busy = append(busy, pt.email)
		}
	}
	return busy
}

// Known is the number of participants whose availability is loaded.
func (idx *Index) Known() int {
	n := 0
	for _, pt := range idx.participants {
		if !pt.loading {
			n++
		}
	}
	return n
}

// AvailableCount is the number of loaded participants free for the whole slot.
func (idx *Index) AvailableCount(start models.TimeOfDay, duration int) int {
	return idx.Known() - len(idx.Busy(start, duration))
}

// AvailabilityText is the label shown on a candidate slot.
func AvailabilityText(available int) string {
	switch available {
	case 0:
		return "No participants registered"
	case 1:
		return "1 participant registered"
	default:
		return fmt.Sprintf("%d participants registered", available)
	}
}
