package subject

import "time"

// DayKeyLayout is the calendar-day key format used by all trackers.
const DayKeyLayout = "2006-01-02"

// DayKey returns the local calendar-day key for t. Day boundaries follow
// the device's current timezone at event time; no UTC normalization.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// ParseDayKey parses a stored day key back to a date (midnight, local).
func ParseDayKey(key string) (time.Time, error) {
	return time.ParseInLocation(DayKeyLayout, key, time.Local)
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}
