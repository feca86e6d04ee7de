package tui

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"slotline/models"

	"gopkg.in/yaml.v3"
)

// Scenario is a timeline day loaded from a yaml file.
type Scenario struct {
	Date         string                        `yaml:"date"`
	Window       models.HourWindow             `yaml:"window"`
	Duration     int                           `yaml:"duration"`
	HourStep     int                           `yaml:"hourStep"`
	Participants []models.ParticipantBusySlots `yaml:"participants"`
	Candidates   []models.TimeOfDay            `yaml:"candidates"`
}

// LoadScenario reads a scenario file, filling unset fields from defaults.
// An empty path yields defaults alone.
func LoadScenario(path string, defaults Scenario) (Scenario, error) {
	if path == "" {
		return defaults.normalize()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("error reading scenario file: %w", err)
	}
	return ParseScenario(data, defaults)
}

func ParseScenario(data []byte, defaults Scenario) (Scenario, error) {
	s := defaults
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("error parsing scenario file: %w", err)
	}
	return s.normalize()
}

// OnDate returns the scenario opened on another day.
func (s Scenario) OnDate(date string) (Scenario, error) {
	s.Date = date
	return s.normalize()
}

func (s Scenario) normalize() (Scenario, error) {
	if s.Date == "" {
		s.Date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", s.Date); err != nil {
		return Scenario{}, fmt.Errorf("scenario date %q: %w", s.Date, err)
	}
	if s.Window == (models.HourWindow{}) {
		s.Window = models.HourWindow{MinHour: 0, MaxHour: 24}
	}
	if err := s.Window.Validate(); err != nil {
		return Scenario{}, fmt.Errorf("scenario window: %w", err)
	}
	if s.Duration <= 0 {
		s.Duration = 60
	}
	if s.HourStep <= 0 {
		s.HourStep = 2
	}
	return s, nil
}

// scenarioAvailability serves the scenario's participants for every date.
type scenarioAvailability struct {
	mu           sync.RWMutex
	participants []models.ParticipantBusySlots
}

func (a *scenarioAvailability) GetByDate(context.Context, string) ([]models.ParticipantBusySlots, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.participants, nil
}

func (a *scenarioAvailability) ReplaceForDate(_ context.Context, _ string, participants []models.ParticipantBusySlots) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.participants = participants
	return nil
}

// DeleteBefore keeps the scenario; its participants are not tied to a date.
func (a *scenarioAvailability) DeleteBefore(context.Context, string) (int64, error) { return 0, nil }

func (a *scenarioAvailability) EnsureIndexes(context.Context) error { return nil }
