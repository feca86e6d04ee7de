// Package surface turns pointer events over a timeline into placeholder
// updates and slot actions. It holds only ephemeral UI state; every
// transition runs synchronously on the event that triggers it.
package surface

import (
	"math"
	"slices"

	"slotline/models"
	"slotline/services/timeline"
)

// PlaceholderStep is the granularity, in minutes, of placeholder start times.
const PlaceholderStep = 15

// lastPlaceholderStart keeps a placeholder start inside the day.
var lastPlaceholderStart = models.EndOfDay - PlaceholderStep

type State int

const (
	Idle State = iota
	HoveringSlot
	DraggingPlaceholder
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case HoveringSlot:
		return "hovering-slot"
	case DraggingPlaceholder:
		return "dragging-placeholder"
	default:
		return "unknown"
	}
}

type ActionKind int

const (
	NoAction ActionKind = iota
	AddSlot
	RemoveSlot
)

// Action is what the surface asks its owner to do with the candidate store.
type Action struct {
	Kind ActionKind
	Time models.TimeOfDay
}

// Placeholder is the ghost slot following the pointer.
type Placeholder struct {
	Visible  bool
	Geometry models.Geometry
}

// Surface is the pointer state of one rendered timeline day.
type Surface struct {
	window     models.HourWindow
	duration   int
	candidates []models.TimeOfDay

	state       State
	placeholder Placeholder
}

func New(window models.HourWindow, duration int, candidates []models.TimeOfDay) *Surface {
	s := &Surface{}
	s.Reset(window, duration, candidates)
	return s
}

// Reset replaces the snapshot the surface works against, typically after the
// candidate store changed. Pointer state is kept.
func (s *Surface) Reset(window models.HourWindow, duration int, candidates []models.TimeOfDay) {
	s.window = window
	s.duration = duration
	s.candidates = slices.Clone(candidates)
	slices.Sort(s.candidates)
}

func (s *Surface) State() State { return s.state }

func (s *Surface) Placeholder() Placeholder { return s.placeholder }

// PlaceholderStart maps a horizontal fraction of the timeline width to a start
// time, floored to PlaceholderStep minutes.
func PlaceholderStart(fraction float64, window models.HourWindow) models.TimeOfDay {
	if fraction < 0 || math.IsNaN(fraction) {
		return 0
	}
	minutes := float64(window.MinHour*60) + fraction*float64(window.SpanMinutes())
	start := models.TimeOfDay(int(math.Floor(minutes/PlaceholderStep)) * PlaceholderStep)
	return min(start, lastPlaceholderStart)
}

func (s *Surface) isTaken(t models.TimeOfDay) bool {
	_, found := slices.BinarySearch(s.candidates, t)
	return found
}

func (s *Surface) hide() {
	s.placeholder.Visible = false
}

// PointerMove handles the pointer at x over a timeline width wide.
func (s *Surface) PointerMove(x, width float64) {
	if s.state == HoveringSlot {
		s.hide()
		return
	}
	if width <= 0 {
		return
	}

	start := PlaceholderStart(x/width, s.window)
	if s.isTaken(start) {
		s.hide()
		s.state = Idle
		return
	}
	s.placeholder = Placeholder{
		Visible:  true,
		Geometry: timeline.CandidateGeometry(start, s.duration, s.window),
	}
	s.state = DraggingPlaceholder
}

// PointerDown adds a slot at x unless that time is taken or the pointer is
// over an existing slot. The placeholder is hidden either way.
func (s *Surface) PointerDown(x, width float64) Action {
	if s.state == HoveringSlot {
		s.hide()
		return Action{}
	}
	defer s.PointerLeave()
	if width <= 0 {
		return Action{}
	}
	start := PlaceholderStart(x/width, s.window)
	if s.isTaken(start) {
		return Action{}
	}
	return Action{Kind: AddSlot, Time: start}
}

func (s *Surface) PointerLeave() {
	s.hide()
	s.state = Idle
}

func (s *Surface) SlotEnter() {
	s.hide()
	s.state = HoveringSlot
}

func (s *Surface) SlotLeave() {
	if s.state == HoveringSlot {
		s.state = Idle
	}
}

// SlotRemove asks for the hovered slot at t to be deleted.
func (s *Surface) SlotRemove(t models.TimeOfDay) Action {
	s.hide()
	s.state = Idle
	if !s.isTaken(t) {
		return Action{}
	}
	return Action{Kind: RemoveSlot, Time: t}
}
