package week

import (
	"fmt"
	"strings"
	"time"
)

// ParseDate parses a date expression relative to now.
// Supports: "today", "tomorrow", "yesterday", "monday", "next tuesday",
// "last week", "next week", "2025-06-02", "jun 2", "jun 2 2025",
// "june 2", "2 jun", "2 june 2025".
// The result is a calendar day at midnight in now's location.
func ParseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimSpace(strings.TrimPrefix(s, "on "))

	today := truncateToDay(now)
	switch s {
	case "today", "this week":
		return today, nil
	case "tomorrow":
		return addDays(today, 1), nil
	case "yesterday":
		return addDays(today, -1), nil
	case "next week":
		return addDays(today, Days), nil
	case "last week", "previous week":
		return addDays(today, -Days), nil
	}

	cleaned := strings.TrimPrefix(s, "next ")
	if wd, ok := weekdays[cleaned]; ok {
		return nextWeekday(today, wd), nil
	}

	layouts := []string{
		ISOLayout,
		"Jan 2",
		"Jan 2 2006",
		"January 2",
		"January 2 2006",
		"2 Jan",
		"2 Jan 2006",
		"2 January",
		"2 January 2006",
	}
	// month names match case-insensitively
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, s, now.Location())
		if err != nil {
			continue
		}
		if !strings.Contains(layout, "2006") {
			dated := time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
			if dated.Month() != t.Month() || dated.Day() != t.Day() {
				return time.Time{}, fmt.Errorf("%s %d does not exist in %d", t.Month(), t.Day(), now.Year())
			}
			t = dated
		}
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// nextWeekday returns the next occurrence of wd after today.
// If today is that weekday, it returns the following week.
func nextWeekday(today time.Time, wd time.Weekday) time.Time {
	ahead := int(wd) - int(today.Weekday())
	if ahead <= 0 {
		ahead += Days
	}
	return addDays(today, ahead)
}
