package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30).
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if tz database is not available
		IST = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// ErrNoLayoutMatched is returned by ParseDayFirst when none of the layouts fit.
var ErrNoLayoutMatched = errors.New("no day-first layout matched")

// DayFirstLayouts are the order timestamp layouts tried by ParseDayFirst,
// most specific first. Broker tradebooks write the day before the month.
// The unpadded day and month tokens also accept two-digit values.
var DayFirstLayouts = []string{
	"2-Jan-2006 15:04:05",
	"2-1-2006 15:04:05",
	"2/1/2006 15:04:05",
	"2-1-2006 15:04",
	"2/1/2006 15:04",
	"2006-01-02 15:04:05",
	"2-1-2006",
	"2/1/2006",
}

// NowIST returns the current time in IST.
func NowIST() time.Time {
	return time.Now().In(IST)
}

// ToIST converts a time.Time to IST.
func ToIST(t time.Time) time.Time {
	return t.In(IST)
}

// LoadLocation resolves a timezone name. "Asia/Kolkata" and "IST" always
// resolve, even without a tz database.
func LoadLocation(name string) (*time.Location, error) {
	switch name {
	case "", "IST", "Asia/Kolkata":
		return IST, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	return loc, nil
}

// ParseDayFirst parses a day-first timestamp, trying each layout in order.
// A nil or empty layouts slice falls back to DayFirstLayouts.
func ParseDayFirst(value string, layouts []string, loc *time.Location) (time.Time, error) {
	if len(layouts) == 0 {
		layouts = DayFirstLayouts
	}
	if loc == nil {
		loc = IST
	}
	value = strings.TrimSpace(value)
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q: %w", value, ErrNoLayoutMatched)
}

// ParseDateIST parses a date string in "2006-01-02" format and returns it in IST.
func ParseDateIST(dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, IST)
}

// FormatDateIST formats a time.Time to "2006-01-02" in IST.
func FormatDateIST(t time.Time) string {
	return t.In(IST).Format("2006-01-02")
}

// FormatDateTimeIST formats a time.Time to "02 Jan 2006, 03:04:05 PM IST".
func FormatDateTimeIST(t time.Time) string {
	return t.In(IST).Format("02 Jan 2006, 03:04:05 PM") + " IST"
}
