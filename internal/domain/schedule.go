package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Weekday is a canonical lowercase English weekday name, Sunday-first.
// Schedule maps are keyed by it so evaluation and display agree on the
// same naming convention.
type Weekday string

const (
	Sunday    Weekday = "sunday"
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
)

var weekdays = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekdayOf maps a calendar date to its schedule key. time.Weekday is
// Sunday-first, matching the display convention.
func WeekdayOf(t time.Time) Weekday {
	return weekdays[int(t.Weekday())]
}

func ParseWeekday(s string) (Weekday, bool) {
	w := Weekday(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range weekdays {
		if w == known {
			return w, true
		}
	}
	return "", false
}

// TimeOfDay is a wall-clock time with no date or zone attached.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %02d:%02d", hour, minute)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// ParseTimeOfDay parses the "HH:mm" wire format used by schedule payloads.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time format %q, want HH:mm", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	return NewTimeOfDay(hour, minute)
}

// Minutes converts to minutes since midnight for interval arithmetic.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TimeRange is a half-open availability window within a single day.
// Start must be strictly before End; a reversed or empty range is a
// configuration error, not an empty window.
type TimeRange struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

func NewTimeRange(start, end TimeOfDay) (TimeRange, error) {
	r := TimeRange{Start: start, End: end}
	if err := r.validate(); err != nil {
		return TimeRange{}, err
	}
	return r, nil
}

func (r TimeRange) validate() error {
	if !r.Start.Before(r.End) {
		return fmt.Errorf("invalid time range %s-%s: start must be before end", r.Start, r.End)
	}
	return nil
}

// Contains reports whether t falls inside the range. The end boundary
// is exclusive so a slot starting exactly at close of window is not
// bookable.
func (r TimeRange) Contains(t TimeOfDay) bool {
	m := t.Minutes()
	return m >= r.Start.Minutes() && m < r.End.Minutes()
}

func (r *TimeRange) UnmarshalJSON(data []byte) error {
	type alias TimeRange
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	parsed := TimeRange(a)
	if err := parsed.validate(); err != nil {
		return err
	}
	*r = parsed
	return nil
}

// DaySchedule is one weekday's availability: an enabled flag plus the
// windows during which slots are bookable. Ranges need not be sorted or
// disjoint; availability is their union.
type DaySchedule struct {
	Enabled bool        `json:"enabled"`
	Ranges  []TimeRange `json:"time_ranges"`
}

// WeeklySchedule maps weekday names to day schedules. A missing key
// means no availability that day.
type WeeklySchedule map[Weekday]DaySchedule

// Validate checks every key and range. Schedules decoded from JSON have
// already had their ranges checked during unmarshaling; this covers
// schedules assembled in code.
func (s WeeklySchedule) Validate() error {
	for day, ds := range s {
		if _, ok := ParseWeekday(string(day)); !ok {
			return fmt.Errorf("unknown weekday key %q", day)
		}
		for _, r := range ds.Ranges {
			if err := r.validate(); err != nil {
				return fmt.Errorf("%s: %w", day, err)
			}
		}
	}
	return nil
}
