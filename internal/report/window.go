package report

import (
	"fmt"
	"time"

	"github.com/abhisek/learnloop/internal/subject"
)

// Window is the date range a report covers, boundaries inclusive.
type Window struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether the window is well-formed.
func (w Window) Valid() bool {
	return !w.Start.After(w.End)
}

// ParseWindow builds a window from ISO date strings.
func ParseWindow(start, end string) (Window, error) {
	s, err := subject.ParseDayKey(start)
	if err != nil {
		return Window{}, fmt.Errorf("parse start date: %w", err)
	}
	e, err := subject.ParseDayKey(end)
	if err != nil {
		return Window{}, fmt.Errorf("parse end date: %w", err)
	}
	return Window{Start: s, End: endOfDay(e)}, nil
}

// Preset names for common trailing windows.
const (
	PresetWeek  = "week"
	PresetMonth = "month"
)

// Preset returns the named trailing window ending today. Week is the
// trailing 7 days, month the trailing 30; anything else defaults to week.
func Preset(name string, now time.Time) Window {
	days := 7
	if name == PresetMonth {
		days = 30
	}
	return Window{Start: now.AddDate(0, 0, -(days - 1)), End: now}
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
