package domain

import "time"

// Trace receives evaluation decisions so callers can observe why a slot
// came out unavailable without print statements inside the logic. A nil
// trace disables observation entirely.
type Trace interface {
	DayDisabled(day Weekday)
	RangeChecked(day Weekday, r TimeRange, t TimeOfDay, within bool)
}

// IsSlotAvailable reports whether the given wall-clock time on the given
// date is bookable under the schedule. Pure function of its inputs.
func IsSlotAvailable(schedule WeeklySchedule, date time.Time, t TimeOfDay) bool {
	return IsSlotAvailableTraced(schedule, date, t, nil)
}

func IsSlotAvailableTraced(schedule WeeklySchedule, date time.Time, t TimeOfDay, trace Trace) bool {
	day := WeekdayOf(date)

	ds, ok := schedule[day]
	if !ok || !ds.Enabled {
		if trace != nil {
			trace.DayDisabled(day)
		}
		return false
	}

	for _, r := range ds.Ranges {
		within := r.Contains(t)
		if trace != nil {
			trace.RangeChecked(day, r, t, within)
		}
		if within {
			return true
		}
	}
	return false
}

// SlotWindow bounds slot generation to a daily business-hours window,
// [StartHour:00, EndHour:00).
type SlotWindow struct {
	StartHour int
	EndHour   int
}

// Reference defaults; deployments override both through config.
var (
	DefaultWindow       = SlotWindow{StartHour: 9, EndHour: 17}
	DefaultSlotDuration = 30 * time.Minute
)

// TimeSlot is a concrete candidate booking interval on a specific date.
type TimeSlot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}

// GenerateSlots produces the ordered candidate slots for one day. Slots
// are emitted every step minutes from window start up to, exclusive, the
// window end, each evaluated against the schedule. Deterministic: the
// same inputs always yield the same sequence.
func GenerateSlots(date time.Time, schedule WeeklySchedule, window SlotWindow, step time.Duration) []TimeSlot {
	// Granularity is whole minutes; anything finer (or non-positive)
	// would truncate to a zero increment, so fall back to the default.
	if step < time.Minute {
		step = DefaultSlotDuration
	}

	stepMin := int(step / time.Minute)
	startMin := window.StartHour * 60
	endMin := window.EndHour * 60

	var slots []TimeSlot
	for m := startMin; m < endMin; m += stepMin {
		tod := TimeOfDay{Hour: m / 60, Minute: m % 60}
		start := time.Date(date.Year(), date.Month(), date.Day(), tod.Hour, tod.Minute, 0, 0, date.Location())
		slots = append(slots, TimeSlot{
			Start:     start,
			End:       start.Add(step),
			Available: IsSlotAvailable(schedule, date, tod),
		})
	}
	return slots
}
