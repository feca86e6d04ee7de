package models

import "fmt"

// Interval is a span of a day. An End before Start means the interval ends on
// the following day.
type Interval struct {
	Start TimeOfDay `json:"startTime" yaml:"startTime"`
	End   TimeOfDay `json:"endTime" yaml:"endTime"`
}

// Wraps reports whether the interval crosses midnight.
func (iv Interval) Wraps() bool {
	return iv.End < iv.Start
}

// HourWindow is the visible horizontal span of the timeline.
type HourWindow struct {
	MinHour int `json:"minHour" yaml:"minHour"`
	MaxHour int `json:"maxHour" yaml:"maxHour"`
}

// Validate requires 0 <= MinHour < MaxHour <= 24.
func (w HourWindow) Validate() error {
	if w.MinHour < 0 || w.MaxHour > 24 || w.MinHour >= w.MaxHour {
		return fmt.Errorf("%w: [%d, %d]", ErrInvalidWindow, w.MinHour, w.MaxHour)
	}
	return nil
}

// Span is the window width in hours.
func (w HourWindow) Span() int { return w.MaxHour - w.MinHour }

// SpanMinutes is the window width in minutes.
func (w HourWindow) SpanMinutes() int { return w.Span() * 60 }

func (w HourWindow) MinTime() TimeOfDay { return FromHour(w.MinHour) }

func (w HourWindow) MaxTime() TimeOfDay { return FromHour(w.MaxHour) }

// Geometry is the renderable placement of one interval inside a window.
// Width and Position are percentages of the window width.
type Geometry struct {
	StartTime TimeOfDay `json:"startTime"`
	EndTime   TimeOfDay `json:"endTime"`
	Width     float64   `json:"width"`
	Position  float64   `json:"pos"`
	Key       string    `json:"key"`
}

// GeometryKey is the rendering identity of an interval.
func GeometryKey(start, end TimeOfDay) string {
	return start.String() + "-" + end.String()
}
