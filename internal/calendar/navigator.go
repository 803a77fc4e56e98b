// Package calendar tracks the date-selection state feeding the
// availability evaluator: a current month for paging and an
// independently selected date.
package calendar

import "time"

type Navigator struct {
	currentMonth time.Time
	selectedDate time.Time
}

// New starts with the month of now and now's start of day selected.
func New(now time.Time) *Navigator {
	return &Navigator{
		currentMonth: now,
		selectedDate: StartOfDay(now),
	}
}

func (n *Navigator) CurrentMonth() time.Time { return n.currentMonth }
func (n *Navigator) SelectedDate() time.Time { return n.selectedDate }

// NextMonth moves the visible month forward without touching the
// selected date.
func (n *Navigator) NextMonth() {
	n.currentMonth = n.currentMonth.AddDate(0, 1, 0)
}

func (n *Navigator) PrevMonth() {
	n.currentMonth = n.currentMonth.AddDate(0, -1, 0)
}

// Select sets the selected date to the given day's start of day.
func (n *Navigator) Select(day time.Time) {
	n.selectedDate = StartOfDay(day)
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Day is one entry of the Sunday-first week strip shown above the slot
// grid.
type Day struct {
	Date    time.Time
	IsToday bool
}

// WeekDays returns the seven days of the week containing the current
// month anchor, starting on Sunday.
func (n *Navigator) WeekDays(now time.Time) []Day {
	start := startOfWeek(n.currentMonth)
	today := StartOfDay(now)

	days := make([]Day, 7)
	for i := range days {
		d := start.AddDate(0, 0, i)
		days[i] = Day{
			Date:    d,
			IsToday: d.Equal(today),
		}
	}
	return days
}

func startOfWeek(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}
