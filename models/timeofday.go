package models

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// MinutesPerDay is 24 hours * 60 minutes.
const MinutesPerDay = 24 * 60

// EndOfDay is 24:00, the only value a TimeOfDay may take outside [00:00, 23:59].
const EndOfDay TimeOfDay = MinutesPerDay

var (
	ErrInvalidTimeFormat = errors.New("invalid time format")
	ErrInvalidWindow     = errors.New("invalid hour window")
)

var timeOfDayRe = regexp.MustCompile(`^(\d{2}):(\d{2})$`)

// TimeOfDay is a wall-clock time within a day in minutes since midnight.
// Its canonical text form is the fixed-width 24-hour "HH:MM".
type TimeOfDay int

// ParseTimeOfDay parses a strict "HH:MM" string. "24:00" is accepted as EndOfDay.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	matches := timeOfDayRe.FindStringSubmatch(value)
	if matches == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}
	h, _ := strconv.Atoi(matches[1])
	m, _ := strconv.Atoi(matches[2])
	if h == 24 && m == 0 {
		return EndOfDay, nil
	}
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}
	return TimeOfDay(h*60 + m), nil
}

// MustParseTimeOfDay is ParseTimeOfDay for literals; it panics on bad input.
func MustParseTimeOfDay(value string) TimeOfDay {
	t, err := ParseTimeOfDay(value)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTimesOfDay parses every value, failing on the first malformed one.
func ParseTimesOfDay(values []string) ([]TimeOfDay, error) {
	out := make([]TimeOfDay, 0, len(values))
	for _, v := range values {
		t, err := ParseTimeOfDay(v)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// FromHour returns h:00. FromHour(24) is EndOfDay.
func FromHour(h int) TimeOfDay {
	return TimeOfDay(h * 60)
}

// Hours returns the hour component.
func (t TimeOfDay) Hours() int { return int(t) / 60 }

// Minutes returns the minute component.
func (t TimeOfDay) Minutes() int { return int(t) % 60 }

// Add moves t by the given number of minutes, wrapping around midnight.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	m := (int(t) + minutes) % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return TimeOfDay(m)
}

// Valid reports whether t lies in [00:00, 24:00].
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t <= EndOfDay
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hours(), t.Minutes())
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// FormatTimesOfDay renders times in canonical form.
func FormatTimesOfDay(times []TimeOfDay) []string {
	out := make([]string, len(times))
	for i, t := range times {
		out[i] = t.String()
	}
	return out
}
