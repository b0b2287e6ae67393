package timeutil

import (
	"time"
)

// Paris is the school's local timezone. All calendar-day logic (today's
// events, business hours) is evaluated in this zone.
var Paris *time.Location

func init() {
	var err error
	Paris, err = time.LoadLocation("Europe/Paris")
	if err != nil {
		// Fallback: fixed CET if tzdata is unavailable
		Paris = time.FixedZone("CET", 1*60*60)
	}
}

// Now returns the current time in the school's timezone
func Now() time.Time {
	return time.Now().In(Paris)
}

// ToLocal converts any time to the school's timezone
func ToLocal(t time.Time) time.Time {
	return t.In(Paris)
}

// SameDay reports whether a and b fall on the same calendar day in Paris
func SameDay(a, b time.Time) bool {
	al, bl := a.In(Paris), b.In(Paris)
	return al.Year() == bl.Year() && al.YearDay() == bl.YearDay()
}

// StartOfDay returns the start of day (00:00:00) in Paris for the given time
func StartOfDay(t time.Time) time.Time {
	l := t.In(Paris)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, Paris)
}

// EndOfDay returns the end of day (23:59:59.999999999) in Paris for the given time
func EndOfDay(t time.Time) time.Time {
	l := t.In(Paris)
	return time.Date(l.Year(), l.Month(), l.Day(), 23, 59, 59, 999999999, Paris)
}

// StartOfWeek returns Monday 00:00:00 of the week containing t
func StartOfWeek(t time.Time) time.Time {
	l := StartOfDay(t)
	wd := int(l.Weekday())
	if wd == 0 {
		wd = 7 // Sunday
	}
	return l.AddDate(0, 0, -(wd - 1))
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	DateTimeLayout = "2006-01-02 15:04"
)
