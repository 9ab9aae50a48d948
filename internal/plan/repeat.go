package plan

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Untitled-ITU/nutrify-sub000/internal/week"
	"github.com/teambition/rrule-go"
)

var everyNDays = regexp.MustCompile(`^every (\d+) days?$`)

// RepeatDates expands a recurrence expression into the days of the window
// starting at monday. Accepts "every day", "every weekday", "every weekend",
// "every monday", "every 2 days" or a raw RRULE ("FREQ=WEEKLY;BYDAY=MO,TH").
func RepeatDates(expr string, monday time.Time) ([]time.Time, error) {
	r, err := parseRepeat(expr)
	if err != nil {
		return nil, err
	}

	monday = week.StartOfWeek(monday)
	end := week.Shift(monday, 1).Add(-time.Second)

	opts := r.OrigOptions
	if opts.Dtstart.IsZero() {
		opts.Dtstart = monday
	}
	bounded, err := rrule.NewRRule(opts)
	if err != nil {
		return nil, err
	}

	var out []time.Time
	for _, d := range bounded.Between(monday, end, true) {
		out = append(out, time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, monday.Location()))
	}
	return out, nil
}

func parseRepeat(s string) (*rrule.RRule, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	if strings.HasPrefix(s, "rrule:") || strings.HasPrefix(s, "freq=") {
		raw := strings.TrimPrefix(strings.ToUpper(s), "RRULE:")
		r, err := rrule.StrToRRule(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RRULE %q: %w", raw, err)
		}
		return r, nil
	}

	switch s {
	case "every day", "daily":
		return rrule.NewRRule(rrule.ROption{Freq: rrule.DAILY})
	case "every weekday", "weekdays":
		return rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR},
		})
	case "every weekend", "weekends":
		return rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{rrule.SA, rrule.SU},
		})
	}

	if m := everyNDays.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		if n < 1 {
			return nil, fmt.Errorf("unrecognized repeat %q", s)
		}
		return rrule.NewRRule(rrule.ROption{Freq: rrule.DAILY, Interval: n})
	}

	if day, ok := strings.CutPrefix(s, "every "); ok {
		if wd, ok := rruleWeekdays[day]; ok {
			return rrule.NewRRule(rrule.ROption{
				Freq:      rrule.WEEKLY,
				Byweekday: []rrule.Weekday{wd},
			})
		}
	}

	return nil, fmt.Errorf("unrecognized repeat %q", s)
}

var rruleWeekdays = map[string]rrule.Weekday{
	"sunday":    rrule.SU,
	"monday":    rrule.MO,
	"tuesday":   rrule.TU,
	"wednesday": rrule.WE,
	"thursday":  rrule.TH,
	"friday":    rrule.FR,
	"saturday":  rrule.SA,
}
