package timeline

import (
	"errors"
	"math"
	"reflect"
	"slices"
	"testing"

	"slotline/models"
)

func tod(s string) models.TimeOfDay { return models.MustParseTimeOfDay(s) }

func iv(start, end string) models.Interval {
	return models.Interval{Start: tod(start), End: tod(end)}
}

func times(values ...string) []models.TimeOfDay {
	out := make([]models.TimeOfDay, 0, len(values))
	for _, v := range values {
		out = append(out, tod(v))
	}
	return out
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

var office = models.HourWindow{MinHour: 8, MaxHour: 18}

func TestTrimToWindow(t *testing.T) {
	tests := []struct {
		name   string
		window models.HourWindow
		input  []models.Interval
		want   []models.Interval
	}{
		{
			name:   "inside is unchanged",
			window: office,
			input:  []models.Interval{iv("09:00", "10:00"), iv("08:00", "18:00")},
			want:   []models.Interval{iv("09:00", "10:00"), iv("08:00", "18:00")},
		},
		{
			name:   "outside is dropped",
			window: office,
			input:  []models.Interval{iv("06:00", "07:00"), iv("18:00", "19:00"), iv("19:00", "20:00")},
			want:   []models.Interval{},
		},
		{
			name:   "partial overlap is clipped",
			window: office,
			input:  []models.Interval{iv("07:00", "09:00"), iv("17:00", "19:00"), iv("06:00", "20:00")},
			want:   []models.Interval{iv("08:00", "09:00"), iv("17:00", "18:00"), iv("08:00", "18:00")},
		},
		{
			name:   "ending at window start is zero width",
			window: office,
			input:  []models.Interval{iv("07:00", "08:00")},
			want:   []models.Interval{},
		},
		{
			name:   "wrap past midnight clipped at end of day",
			window: models.HourWindow{MinHour: 0, MaxHour: 24},
			input:  []models.Interval{iv("22:00", "02:00")},
			want:   []models.Interval{iv("22:00", "24:00")},
		},
		{
			name:   "wrap past midnight clipped at window end",
			window: office,
			input:  []models.Interval{iv("17:00", "01:00"), iv("22:00", "02:00")},
			want:   []models.Interval{iv("17:00", "18:00")},
		},
		{
			name:   "order is kept",
			window: office,
			input:  []models.Interval{iv("15:00", "16:00"), iv("05:00", "06:00"), iv("09:00", "09:30")},
			want:   []models.Interval{iv("15:00", "16:00"), iv("09:00", "09:30")},
		},
		{
			name:   "empty",
			window: office,
			input:  nil,
			want:   []models.Interval{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimToWindow(tt.input, tt.window)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("TrimToWindow() = %v, want %v", got, tt.want)
			}
			again := TrimToWindow(got, tt.window)
			if !reflect.DeepEqual(again, got) {
				t.Errorf("TrimToWindow is not idempotent: %v then %v", got, again)
			}
		})
	}
}

func TestWidth(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		window     models.HourWindow
		want       float64
	}{
		{name: "one hour of ten", start: "09:00", end: "10:00", window: office, want: 10},
		{name: "start clamped", start: "07:00", end: "09:00", window: office, want: 10},
		{name: "end clamped", start: "17:00", end: "19:00", window: office, want: 10},
		{name: "whole window", start: "08:00", end: "18:00", window: office, want: 100},
		{name: "end of day wrap", start: "23:00", end: "00:00", window: models.HourWindow{MinHour: 0, MaxHour: 24}, want: 60.0 / 1440 * 100},
		{name: "end of day value", start: "23:00", end: "24:00", window: models.HourWindow{MinHour: 0, MaxHour: 24}, want: 60.0 / 1440 * 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Width(tod(tt.start), tod(tt.end), tt.window)
			if !almostEqual(got, tt.want) {
				t.Errorf("Width(%s, %s) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestPosition(t *testing.T) {
	tests := []struct {
		start string
		want  float64
	}{
		{"08:00", 0},
		{"07:00", 0},
		{"09:00", 10},
		{"13:00", 50},
		{"18:00", 100 - OverflowInset},
		{"21:00", 100 - OverflowInset},
	}
	for _, tt := range tests {
		got := Position(tod(tt.start), office)
		if !almostEqual(got, tt.want) {
			t.Errorf("Position(%s) = %v, want %v", tt.start, got, tt.want)
		}
	}
}

func TestCandidateGeometry(t *testing.T) {
	g := CandidateGeometry(tod("23:30"), 60, models.HourWindow{MinHour: 12, MaxHour: 24})
	if g.EndTime != tod("00:30") {
		t.Errorf("EndTime = %s, want 00:30", g.EndTime)
	}
	if g.Key != "23:30-00:30" {
		t.Errorf("Key = %q", g.Key)
	}
	if !almostEqual(g.Width, 30.0/720*100) {
		t.Errorf("Width = %v, want %v", g.Width, 30.0/720*100)
	}
	if !almostEqual(g.Position, 690.0/720*100) {
		t.Errorf("Position = %v", g.Position)
	}
}

func TestGroupOverlapping(t *testing.T) {
	tests := []struct {
		name     string
		input    []models.TimeOfDay
		duration int
		want     [][]models.TimeOfDay
	}{
		{
			name:     "each overlap starts a new row",
			input:    times("09:00", "09:30", "10:15"),
			duration: 60,
			want:     [][]models.TimeOfDay{times("09:00"), times("09:30"), times("10:15")},
		},
		{
			name:     "no overlap is a single row",
			input:    times("12:00", "09:00", "10:30"),
			duration: 60,
			want:     [][]models.TimeOfDay{times("09:00", "10:30", "12:00")},
		},
		{
			name:     "touching slots overlap",
			input:    times("09:00", "10:00"),
			duration: 60,
			want:     [][]models.TimeOfDay{times("09:00"), times("10:00")},
		},
		{
			name:     "row closes at the overlapping slot",
			input:    times("08:00", "11:00", "11:30"),
			duration: 60,
			want:     [][]models.TimeOfDay{times("08:00", "11:00"), times("11:30")},
		},
		{
			name:     "duplicates overlap",
			input:    times("09:00", "09:00"),
			duration: 30,
			want:     [][]models.TimeOfDay{times("09:00"), times("09:00")},
		},
		{
			name:     "slot running past midnight",
			input:    times("23:30", "22:00"),
			duration: 120,
			want:     [][]models.TimeOfDay{times("22:00"), times("23:30")},
		},
		{
			name:     "single",
			input:    times("09:00"),
			duration: 60,
			want:     [][]models.TimeOfDay{times("09:00")},
		},
		{
			name:     "empty yields one empty group",
			input:    nil,
			duration: 60,
			want:     [][]models.TimeOfDay{{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := slices.Clone(tt.input)
			got := GroupOverlapping(input, tt.duration)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("GroupOverlapping() = %v, want %v", got, tt.want)
			}
			if !reflect.DeepEqual(input, tt.input) {
				t.Errorf("input was modified: %v", input)
			}

			var flat []models.TimeOfDay
			for _, g := range got {
				flat = append(flat, g...)
			}
			sorted := slices.Clone(tt.input)
			slices.Sort(sorted)
			if len(flat) != len(sorted) || (len(flat) > 0 && !slices.Equal(flat, sorted)) {
				t.Errorf("groups %v do not partition %v", got, sorted)
			}
		})
	}
}

func TestProjectBusySlots(t *testing.T) {
	in := []models.ParticipantBusySlots{
		{
			Participant: models.Participant{Name: "Ada", Email: "ada@example.com"},
			BusySlots:   []models.Interval{iv("07:00", "09:00"), iv("20:00", "21:00")},
		},
		{
			Participant:      models.Participant{Name: "Grace", Email: "grace@example.com"},
			BusySlotsLoading: true,
		},
	}

	got := ProjectBusySlots(in, office)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Participant.Email != "ada@example.com" || got[1].Participant.Email != "grace@example.com" {
		t.Errorf("participant order changed: %+v", got)
	}
	if !got[1].BusySlotsLoading || got[0].BusySlotsLoading {
		t.Errorf("loading flag not preserved")
	}
	if got[1].BusySlots == nil || len(got[1].BusySlots) != 0 {
		t.Errorf("empty busy slots should project to an empty list, got %#v", got[1].BusySlots)
	}

	want := models.Geometry{StartTime: tod("08:00"), EndTime: tod("09:00"), Width: 10, Position: 0, Key: "08:00-09:00"}
	if len(got[0].BusySlots) != 1 || got[0].BusySlots[0] != want {
		t.Errorf("busy slots = %+v, want [%+v]", got[0].BusySlots, want)
	}

	if out := ProjectBusySlots(nil, office); len(out) != 0 {
		t.Errorf("nil input should give empty output, got %v", out)
	}
}

func TestFitHourSpan(t *testing.T) {
	tests := []struct {
		name       string
		candidates []models.TimeOfDay
		duration   int
		defaults   models.HourWindow
		want       models.HourWindow
	}{
		{name: "no candidates", candidates: nil, duration: 60, defaults: office, want: office},
		{name: "fits default", candidates: times("09:00", "14:00"), duration: 60, defaults: office, want: office},
		{name: "full day default", candidates: times("23:30"), duration: 60, defaults: models.HourWindow{MinHour: 0, MaxHour: 24}, want: models.HourWindow{MinHour: 0, MaxHour: 24}},
		{name: "shift later", candidates: times("19:00"), duration: 60, defaults: office, want: models.HourWindow{MinHour: 10, MaxHour: 20}},
		{name: "shift earlier", candidates: times("06:30"), duration: 60, defaults: office, want: models.HourWindow{MinHour: 6, MaxHour: 16}},
		{name: "widen", candidates: times("05:00", "20:00"), duration: 60, defaults: office, want: models.HourWindow{MinHour: 5, MaxHour: 21}},
		{name: "capped at midnight", candidates: times("23:30"), duration: 60, defaults: office, want: models.HourWindow{MinHour: 14, MaxHour: 24}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitHourSpan(tt.candidates, tt.duration, tt.defaults)
			if got != tt.want {
				t.Errorf("FitHourSpan() = %+v, want %+v", got, tt.want)
			}
			if err := got.Validate(); err != nil {
				t.Errorf("fitted window invalid: %v", err)
			}
		})
	}
}

func TestHourSeries(t *testing.T) {
	got := HourSeries(office, 2)
	want := []int{8, 10, 12, 14, 16, 18}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("HourSeries = %v, want %v", got, want)
	}
	if got := HourSeries(models.HourWindow{MinHour: 22, MaxHour: 24}, 0); !reflect.DeepEqual(got, []int{22, 23, 24}) {
		t.Errorf("HourSeries step 0 = %v", got)
	}
}

func TestNextStartTime(t *testing.T) {
	if got := NextStartTime(nil, 60); got != DefaultStartTime {
		t.Errorf("NextStartTime(nil) = %s, want %s", got, DefaultStartTime)
	}
	if got := NextStartTime(times("14:00", "09:00"), 45); got != tod("14:45") {
		t.Errorf("NextStartTime = %s, want 14:45", got)
	}
	if got := NextStartTime(times("23:30"), 60); got != tod("00:30") {
		t.Errorf("NextStartTime = %s, want 00:30", got)
	}
}

func TestBuildLayout(t *testing.T) {
	in := LayoutInput{
		Date:       "2026-10-19",
		Window:     office,
		Duration:   60,
		HourStep:   2,
		Candidates: times("10:15", "09:00", "09:30"),
		Availability: []models.ParticipantBusySlots{
			{
				Participant: models.Participant{Name: "Ada", Email: "ada@example.com"},
				BusySlots:   []models.Interval{iv("09:00", "10:00")},
			},
		},
	}

	layout, err := BuildLayout(in)
	if err != nil {
		t.Fatalf("BuildLayout: %v", err)
	}
	if len(layout.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(layout.Rows))
	}
	first := layout.Rows[0][0]
	if first.Time != tod("09:00") || first.AvailableCount != 0 || first.Text != "No participants registered" {
		t.Errorf("first slot = %+v", first)
	}
	last := layout.Rows[2][0]
	if last.AvailableCount != 1 || last.Text != "1 participant registered" {
		t.Errorf("last slot = %+v", last)
	}
	if layout.NextStartTime != tod("11:15") {
		t.Errorf("NextStartTime = %s", layout.NextStartTime)
	}
	if len(layout.Busy) != 1 || len(layout.Busy[0].BusySlots) != 1 {
		t.Errorf("busy = %+v", layout.Busy)
	}
}

func TestBuildLayoutValidation(t *testing.T) {
	_, err := BuildLayout(LayoutInput{Window: models.HourWindow{MinHour: 10, MaxHour: 10}, Duration: 60})
	if !errors.Is(err, models.ErrInvalidWindow) {
		t.Errorf("error = %v, want ErrInvalidWindow", err)
	}
	if _, err := BuildLayout(LayoutInput{Window: office, Duration: 0}); err == nil {
		t.Error("expected error for zero duration")
	}
	_, err = BuildLayout(LayoutInput{Window: office, Duration: 30, Candidates: []models.TimeOfDay{models.EndOfDay}})
	if !errors.Is(err, models.ErrInvalidTimeFormat) {
		t.Errorf("error = %v, want ErrInvalidTimeFormat", err)
	}
}
