// Package tui is a terminal timeline: the mouse hovers, adds and removes
// candidate slots the way a pointer does on the web timeline.
package tui

import (
	"context"
	"fmt"
	"time"

	candidatesRepo "slotline/database/repository/candidates"
	"slotline/models"
	"slotline/services/candidates"
	"slotline/services/surface"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	labelWidth = 18
	headerRows = 2
	minWidth   = labelWidth + 24
)

// Model is the bubbletea model of one timeline.
type Model struct {
	svc        *candidates.DefaultCandidateService
	timelineID string
	date       string
	duration   int
	window     models.HourWindow
	hourStep   int

	surface *surface.Surface
	layout  models.TimelineLayout

	width, height int
	message       string
	hovered       *models.TimeOfDay
}

// NewModel seeds an in-memory timeline with the scenario's candidates.
func NewModel(s Scenario, logger *zap.Logger) (*Model, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Model{
		svc: &candidates.DefaultCandidateService{
			Repo:         candidatesRepo.NewMemoryCandidateRepo(),
			Availability: &scenarioAvailability{participants: s.Participants},
			Defaults: candidates.Defaults{
				Window:   s.Window,
				HourStep: s.HourStep,
				Duration: s.Duration,
			},
			Logger: logger,
		},
		timelineID: uuid.New().String(),
		date:       s.Date,
		duration:   s.Duration,
		window:     s.Window,
		hourStep:   s.HourStep,
		width:      100,
		height:     24,
	}
	for _, c := range s.Candidates {
		if _, err := m.svc.Add(context.Background(), m.timelineID, m.date, c); err != nil {
			return nil, fmt.Errorf("scenario candidate %s: %w", c, err)
		}
	}
	if err := m.refresh(); err != nil {
		return nil, err
	}
	return m, nil
}

// Launch runs the model full screen with mouse motion reporting.
func Launch(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

func (m *Model) refresh() error {
	layout, err := m.svc.Layout(context.Background(), m.timelineID, m.date, candidates.LayoutOptions{})
	if err != nil {
		return err
	}
	m.layout = layout
	var slots []models.TimeOfDay
	for _, row := range layout.Rows {
		for _, slot := range row {
			slots = append(slots, slot.Time)
		}
	}
	if m.surface == nil {
		m.surface = surface.New(layout.Window, m.duration, slots)
	} else {
		m.surface.Reset(layout.Window, m.duration, slots)
	}
	return nil
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "left", "h":
		m.shiftDay(-1)
	case "right", "l":
		m.shiftDay(1)
	case "y":
		if _, err := m.svc.CopyFromPreviousDay(context.Background(), m.timelineID, m.date); err != nil {
			m.message = err.Error()
		} else {
			m.message = "copied slots from the previous day"
		}
		m.apply()
	case "a":
		next, err := m.svc.NextStartTime(context.Background(), m.timelineID, m.date, m.duration)
		if err == nil {
			m.act(surface.Action{Kind: surface.AddSlot, Time: next})
		}
	}
	return nil
}

func (m *Model) shiftDay(days int) {
	day, err := time.Parse("2006-01-02", m.date)
	if err != nil {
		return
	}
	m.date = day.AddDate(0, 0, days).Format("2006-01-02")
	m.message = ""
	m.surface.PointerLeave()
	m.apply()
}

func (m *Model) trackWidth() int {
	return max(m.width, minWidth) - labelWidth
}

// rowsEnd is the first screen row below the timeline.
func (m *Model) rowsEnd() int {
	// one extra row holds the placeholder
	return headerRows + len(m.layout.Busy) + len(m.layout.Rows) + 1
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.X < labelWidth || msg.Y < headerRows || msg.Y >= m.rowsEnd() {
		m.hovered = nil
		m.surface.PointerLeave()
		return
	}
	x := float64(msg.X - labelWidth)
	width := float64(m.trackWidth())

	slot, onSlot := m.slotAt(msg.X-labelWidth, msg.Y)
	if onSlot {
		if m.hovered == nil || *m.hovered != slot {
			m.surface.SlotEnter()
			m.hovered = &slot
		}
	} else if m.hovered != nil {
		m.surface.SlotLeave()
		m.hovered = nil
	}

	switch {
	case msg.Action == tea.MouseActionMotion:
		m.surface.PointerMove(x, width)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.act(m.surface.PointerDown(x, width))
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight && onSlot:
		m.act(m.surface.SlotRemove(slot))
		m.hovered = nil
	}
}

// slotAt finds the candidate drawn under track column col on screen row y.
func (m *Model) slotAt(col, y int) (models.TimeOfDay, bool) {
	r := y - headerRows - len(m.layout.Busy)
	if r < 0 || r >= len(m.layout.Rows) {
		return 0, false
	}
	for _, slot := range m.layout.Rows[r] {
		from, to := cellRange(slot.Geometry, m.trackWidth())
		if col >= from && col < to {
			return slot.Time, true
		}
	}
	return 0, false
}

func (m *Model) act(a surface.Action) {
	ctx := context.Background()
	var err error
	switch a.Kind {
	case surface.AddSlot:
		_, err = m.svc.Add(ctx, m.timelineID, m.date, a.Time)
		m.message = "added " + a.Time.String()
	case surface.RemoveSlot:
		_, err = m.svc.Remove(ctx, m.timelineID, m.date, a.Time)
		m.message = "removed " + a.Time.String()
	default:
		return
	}
	if err != nil {
		m.message = err.Error()
	}
	m.apply()
}

func (m *Model) apply() {
	if err := m.refresh(); err != nil {
		m.message = err.Error()
	}
}

// Candidates lists the current day's candidate times in order.
func (m *Model) Candidates() []models.TimeOfDay {
	slots, _ := m.svc.List(context.Background(), m.timelineID, m.date)
	return slots
}
