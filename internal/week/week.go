package week

import (
	"fmt"
	"time"
)

// Days is the number of calendar days in a week window.
const Days = 7

// ISOLayout is the wire format for plan and window dates.
const ISOLayout = "2006-01-02"

// StartOfWeek returns the Monday at or before d, at midnight in d's location.
// Weeks always start on Monday regardless of locale.
func StartOfWeek(d time.Time) time.Time {
	day := truncateToDay(d)
	// Mon=0 .. Sun=6
	diff := (int(day.Weekday()) + 6) % 7
	return addDays(day, -diff)
}

// WeekDates returns the seven consecutive calendar days starting at monday.
func WeekDates(monday time.Time) [Days]time.Time {
	var dates [Days]time.Time
	start := truncateToDay(monday)
	for i := range dates {
		dates[i] = addDays(start, i)
	}
	return dates
}

// Shift moves a week window by n weeks (negative for earlier weeks).
func Shift(monday time.Time, n int) time.Time {
	return addDays(StartOfWeek(monday), n*Days)
}

// Clamp returns floor when monday falls before it. A zero floor disables clamping.
func Clamp(monday, floor time.Time) time.Time {
	if floor.IsZero() {
		return monday
	}
	floor = StartOfWeek(floor)
	if monday.Before(floor) {
		return floor
	}
	return monday
}

// Contains reports whether d falls on one of the window's calendar days.
func Contains(monday, d time.Time) bool {
	_, ok := DayIndex(monday, d)
	return ok
}

// DayIndex returns d's column (0=Monday) inside the window starting at monday.
func DayIndex(monday, d time.Time) (int, bool) {
	for i, day := range WeekDates(monday) {
		if SameDay(day, d) {
			return i, true
		}
	}
	return -1, false
}

// SameDay compares calendar dates, ignoring time of day and location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FormatISO renders the calendar date of d as YYYY-MM-DD.
func FormatISO(d time.Time) string {
	return d.Format(ISOLayout)
}

// ParseISO parses a YYYY-MM-DD date at local midnight in loc.
func ParseISO(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(ISOLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// FormatRange renders a window as "Jun 2 – 8, 2025", "Jun 30 – Jul 6, 2025"
// or "Dec 29, 2025 – Jan 4, 2026".
func FormatRange(monday time.Time) string {
	ws := StartOfWeek(monday)
	we := addDays(ws, Days-1)

	switch {
	case ws.Year() != we.Year():
		return fmt.Sprintf("%s – %s", ws.Format("Jan 2, 2006"), we.Format("Jan 2, 2006"))
	case ws.Month() == we.Month():
		return fmt.Sprintf("%s %d – %d, %d", ws.Format("Jan"), ws.Day(), we.Day(), ws.Year())
	default:
		return fmt.Sprintf("%s – %s, %d", ws.Format("Jan 2"), we.Format("Jan 2"), ws.Year())
	}
}

// ISOWeekStart returns the Monday of the given ISO year and week.
func ISOWeekStart(year, isoWeek int, loc *time.Location) time.Time {
	// Jan 4 is always in week 1 of its ISO year
	jan4 := time.Date(year, 1, 4, 0, 0, 0, 0, loc)
	return addDays(StartOfWeek(jan4), (isoWeek-1)*Days)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// addDays moves by calendar days so DST transitions never shift the date.
func addDays(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+n, 0, 0, 0, 0, t.Location())
}
