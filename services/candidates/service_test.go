package candidates

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	candidatesRepo "slotline/database/repository/candidates"
	"slotline/models"
)

type fakeAvailability struct {
	byDate map[string][]models.ParticipantBusySlots
}

func (f *fakeAvailability) GetByDate(_ context.Context, date string) ([]models.ParticipantBusySlots, error) {
	return f.byDate[date], nil
}

func (f *fakeAvailability) ReplaceForDate(_ context.Context, date string, participants []models.ParticipantBusySlots) error {
	f.byDate[date] = participants
	return nil
}

func (f *fakeAvailability) EnsureIndexes(context.Context) error { return nil }

func (f *fakeAvailability) DeleteBefore(_ context.Context, date string) (int64, error) {
	var n int64
	for d, participants := range f.byDate {
		if d < date {
			n += int64(len(participants))
			delete(f.byDate, d)
		}
	}
	return n, nil
}

const testTimeline = "6f1c1f0e-6b3e-4c55-9a43-2d7d8f6a0b11"

func newTestService() *DefaultCandidateService {
	return &DefaultCandidateService{
		Repo:         candidatesRepo.NewMemoryCandidateRepo(),
		Availability: &fakeAvailability{byDate: map[string][]models.ParticipantBusySlots{}},
		Defaults: Defaults{
			Window:   models.HourWindow{MinHour: 0, MaxHour: 24},
			HourStep: 2,
			Duration: 60,
		},
	}
}

func mustAdd(t *testing.T, s *DefaultCandidateService, date string, times ...string) {
	t.Helper()
	for _, tm := range times {
		if _, err := s.Add(context.Background(), testTimeline, date, models.MustParseTimeOfDay(tm)); err != nil {
			t.Fatalf("Add(%s) error = %v", tm, err)
		}
	}
}

func TestAddKeepsSortedAndUnique(t *testing.T) {
	s := newTestService()
	mustAdd(t, s, "2024-03-01", "10:15", "09:00", "09:30")

	got, err := s.List(context.Background(), testTimeline, "2024-03-01")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if want := "09:00,09:30,10:15"; joined(got) != want {
		t.Errorf("List() = %v, want %s", joined(got), want)
	}

	_, err = s.Add(context.Background(), testTimeline, "2024-03-01", models.MustParseTimeOfDay("09:30"))
	if !errors.Is(err, ErrSlotTaken) {
		t.Errorf("Add(duplicate) error = %v, want ErrSlotTaken", err)
	}
}

func TestValidation(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	tests := []struct {
		name       string
		timelineID string
		date       string
		time       models.TimeOfDay
	}{
		{"bad timeline", "nope", "2024-03-01", 60},
		{"bad date", testTimeline, "03/01/2024", 60},
		{"end of day", testTimeline, "2024-03-01", models.EndOfDay},
		{"negative", testTimeline, "2024-03-01", -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Add(ctx, tt.timelineID, tt.date, tt.time)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("Add() error = %v, want ValidationError", err)
			}
		})
	}
}

func TestRemoveAndUpdate(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	date := "2024-03-01"
	mustAdd(t, s, date, "09:00", "11:00")

	if _, err := s.Remove(ctx, testTimeline, date, models.MustParseTimeOfDay("10:00")); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("Remove(missing) error = %v, want ErrSlotNotFound", err)
	}

	got, err := s.Update(ctx, testTimeline, date, models.MustParseTimeOfDay("09:00"), models.MustParseTimeOfDay("13:00"))
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if want := "11:00,13:00"; joined(got) != want {
		t.Errorf("Update() = %s, want %s", joined(got), want)
	}

	if _, err := s.Update(ctx, testTimeline, date, models.MustParseTimeOfDay("11:00"), models.MustParseTimeOfDay("13:00")); !errors.Is(err, ErrSlotTaken) {
		t.Errorf("Update(onto taken) error = %v, want ErrSlotTaken", err)
	}
	if _, err := s.Update(ctx, testTimeline, date, models.MustParseTimeOfDay("08:00"), models.MustParseTimeOfDay("14:00")); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrSlotNotFound", err)
	}

	got, err = s.Remove(ctx, testTimeline, date, models.MustParseTimeOfDay("11:00"))
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if want := "13:00"; joined(got) != want {
		t.Errorf("Remove() = %s, want %s", joined(got), want)
	}
}

func TestCopyFromPreviousDay(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	if _, err := s.CopyFromPreviousDay(ctx, testTimeline, "2024-03-01"); !errors.Is(err, ErrNoPreviousSlots) {
		t.Errorf("CopyFromPreviousDay(empty) error = %v, want ErrNoPreviousSlots", err)
	}

	mustAdd(t, s, "2024-02-29", "09:00", "14:00")
	mustAdd(t, s, "2024-03-01", "14:00", "16:00")

	got, err := s.CopyFromPreviousDay(ctx, testTimeline, "2024-03-01")
	if err != nil {
		t.Fatalf("CopyFromPreviousDay() error = %v", err)
	}
	if want := "09:00,14:00,16:00"; joined(got) != want {
		t.Errorf("CopyFromPreviousDay() = %s, want %s", joined(got), want)
	}
}

func TestIsTakenAndNextStartTime(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	date := "2024-03-01"

	next, err := s.NextStartTime(ctx, testTimeline, date, 0)
	if err != nil {
		t.Fatalf("NextStartTime() error = %v", err)
	}
	if next.String() != "09:00" {
		t.Errorf("NextStartTime(empty) = %s, want 09:00", next)
	}

	mustAdd(t, s, date, "10:00", "23:30")
	taken, err := s.IsTaken(ctx, testTimeline, date, models.MustParseTimeOfDay("10:00"))
	if err != nil || !taken {
		t.Errorf("IsTaken(10:00) = %v, %v; want true", taken, err)
	}
	taken, _ = s.IsTaken(ctx, testTimeline, date, models.MustParseTimeOfDay("10:15"))
	if taken {
		t.Errorf("IsTaken(10:15) = true, want false")
	}

	next, _ = s.NextStartTime(ctx, testTimeline, date, 60)
	if next.String() != "00:30" {
		t.Errorf("NextStartTime() = %s, want 00:30", next)
	}
}

func TestLayout(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	date := "2024-03-01"
	mustAdd(t, s, date, "09:00", "10:30")

	avail := s.Availability.(*fakeAvailability)
	avail.byDate[date] = []models.ParticipantBusySlots{
		{
			Participant: models.Participant{Name: "Ana", Email: "ana@example.com"},
			BusySlots: []models.Interval{
				{Start: models.MustParseTimeOfDay("09:30"), End: models.MustParseTimeOfDay("10:00")},
			},
		},
		{
			Participant: models.Participant{Name: "Bo", Email: "bo@example.com"},
		},
	}

	layout, err := s.Layout(ctx, testTimeline, date, LayoutOptions{})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if layout.Window != s.Defaults.Window {
		t.Errorf("Window = %+v, want defaults", layout.Window)
	}
	if len(layout.Busy) != 2 {
		t.Fatalf("len(Busy) = %d, want 2", len(layout.Busy))
	}

	var slots []models.CandidateSlot
	for _, row := range layout.Rows {
		slots = append(slots, row...)
	}
	if len(slots) != 2 {
		t.Fatalf("got %d candidate slots, want 2", len(slots))
	}
	for _, slot := range slots {
		switch slot.Time.String() {
		case "09:00":
			if slot.AvailableCount != 1 || !slices.Equal(slot.BusyParticipants, []string{"ana@example.com"}) {
				t.Errorf("09:00 slot = %+v, want ana busy", slot)
			}
		case "10:30":
			if slot.AvailableCount != 2 || len(slot.BusyParticipants) != 0 {
				t.Errorf("10:30 slot = %+v, want everyone available", slot)
			}
		}
	}

	filtered, err := s.Layout(ctx, testTimeline, date, LayoutOptions{Participants: []string{"bo@example.com"}})
	if err != nil {
		t.Fatalf("Layout(filtered) error = %v", err)
	}
	if len(filtered.Busy) != 1 || filtered.Busy[0].Participant.Email != "bo@example.com" {
		t.Errorf("filtered Busy = %+v, want only bo", filtered.Busy)
	}

	_, err = s.Layout(ctx, testTimeline, date, LayoutOptions{Window: &models.HourWindow{MinHour: 10, MaxHour: 10}})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("Layout(bad window) error = %v, want ValidationError", err)
	}
}

func joined(times []models.TimeOfDay) string {
	return strings.Join(models.FormatTimesOfDay(times), ",")
}
