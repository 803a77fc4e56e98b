package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"09:00", TimeOfDay{9, 0}, false},
		{"9:05", TimeOfDay{9, 5}, false},
		{"23:59", TimeOfDay{23, 59}, false},
		{"00:00", TimeOfDay{0, 0}, false},
		{"24:00", TimeOfDay{}, true},
		{"09:60", TimeOfDay{}, true},
		{"-1:00", TimeOfDay{}, true},
		{"0900", TimeOfDay{}, true},
		{"", TimeOfDay{}, true},
		{"nine:thirty", TimeOfDay{}, true},
	}
	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTimeOfDay(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseTimeOfDay(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTimeOfDayMinutes(t *testing.T) {
	if got := (TimeOfDay{9, 30}).Minutes(); got != 570 {
		t.Errorf("Minutes() = %d, want 570", got)
	}
	if got := (TimeOfDay{0, 0}).Minutes(); got != 0 {
		t.Errorf("Minutes() = %d, want 0", got)
	}
}

func TestNewTimeRangeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantErr    bool
	}{
		{"valid", "09:00", "12:00", false},
		{"one minute", "09:00", "09:01", false},
		{"empty", "09:00", "09:00", true},
		{"reversed", "12:00", "09:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := tod(t, tt.start)
			end := tod(t, tt.end)
			_, err := NewTimeRange(start, end)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewTimeRange(%s, %s) error = %v, wantErr %v", tt.start, tt.end, err, tt.wantErr)
			}
		})
	}
}

func TestTimeRangeUnmarshalRejectsMalformed(t *testing.T) {
	var r TimeRange
	if err := json.Unmarshal([]byte(`{"start":"12:00","end":"09:00"}`), &r); err == nil {
		t.Error("expected error decoding reversed range")
	}
	if err := json.Unmarshal([]byte(`{"start":"09:00","end":"09:00"}`), &r); err == nil {
		t.Error("expected error decoding empty range")
	}
	if err := json.Unmarshal([]byte(`{"start":"09:00","end":"12:00"}`), &r); err != nil {
		t.Errorf("unexpected error decoding valid range: %v", err)
	}
}

func TestWeekdayOf(t *testing.T) {
	tests := []struct {
		date time.Time
		want Weekday
	}{
		{time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Sunday},
		{time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Monday},
		{time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC), Saturday},
	}
	for _, tt := range tests {
		if got := WeekdayOf(tt.date); got != tt.want {
			t.Errorf("WeekdayOf(%s) = %s, want %s", tt.date.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestParseWeekday(t *testing.T) {
	if d, ok := ParseWeekday(" Monday "); !ok || d != Monday {
		t.Errorf("ParseWeekday(\" Monday \") = %q, %v", d, ok)
	}
	if _, ok := ParseWeekday("funday"); ok {
		t.Error("ParseWeekday accepted unknown weekday")
	}
}

func TestWeeklyScheduleValidate(t *testing.T) {
	good := WeeklySchedule{
		Monday: DaySchedule{Enabled: true, Ranges: []TimeRange{
			{Start: TimeOfDay{9, 0}, End: TimeOfDay{12, 0}},
		}},
	}
	if err := good.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	badKey := WeeklySchedule{"funday": DaySchedule{Enabled: true}}
	if err := badKey.Validate(); err == nil {
		t.Error("expected error for unknown weekday key")
	}

	badRange := WeeklySchedule{
		Monday: DaySchedule{Enabled: true, Ranges: []TimeRange{
			{Start: TimeOfDay{12, 0}, End: TimeOfDay{9, 0}},
		}},
	}
	err := badRange.Validate()
	if err == nil {
		t.Fatal("expected error for reversed range")
	}
	if !strings.Contains(err.Error(), "monday") {
		t.Errorf("error should name the offending day, got %q", err)
	}
}

func TestWeeklyScheduleJSONRoundTrip(t *testing.T) {
	original := mondayMorning(t)

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var reloaded WeeklySchedule
	if err := json.Unmarshal(data, &reloaded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// The reloaded schedule must yield identical availability for every
	// slot in a full day's generated sequence, on a day with and without
	// coverage.
	for _, date := range []time.Time{monday, tuesday} {
		before := GenerateSlots(date, original, DefaultWindow, DefaultSlotDuration)
		after := GenerateSlots(date, reloaded, DefaultWindow, DefaultSlotDuration)
		if len(before) != len(after) {
			t.Fatalf("slot counts differ after round trip: %d vs %d", len(before), len(after))
		}
		for i := range before {
			if before[i] != after[i] {
				t.Errorf("slot %d differs after round trip: %+v vs %+v", i, before[i], after[i])
			}
		}
	}
}
