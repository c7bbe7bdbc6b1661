package attendance

import (
	"fmt"
	"time"
)

// DayLayout is the textual form of a Day used by the CLI and backups.
const DayLayout = "2006-01-02"

// Day is a calendar day, stored as the epoch milliseconds of its local
// midnight. The zero value is 1970-01-01 only in UTC; callers should build
// Days through DayKey, DayOf or ParseDay.
type Day int64

// DayKey truncates a millisecond timestamp to local midnight.
// DayKey(int64(DayKey(t))) == DayKey(t).
func DayKey(timestampMillis int64) Day {
	return DayOf(time.UnixMilli(timestampMillis))
}

// DayOf truncates t to midnight in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day(time.Date(y, m, d, 0, 0, 0, 0, t.Location()).UnixMilli())
}

// Today returns the calendar day containing now, in local time.
func Today(now time.Time) Day {
	return DayOf(now.Local())
}

// ParseDay parses a "YYYY-MM-DD" string as a local calendar day.
func ParseDay(s string) (Day, error) {
	t, err := time.ParseInLocation(DayLayout, s, time.Local)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return DayOf(t), nil
}

// Normalize re-keys d to local midnight. Days built from arbitrary
// timestamps, or restored from another time zone, compare equal afterwards.
func (d Day) Normalize() Day {
	return DayKey(int64(d))
}

// Millis returns the day's local-midnight epoch milliseconds.
func (d Day) Millis() int64 {
	return int64(d)
}

// Time returns local midnight of d.
func (d Day) Time() time.Time {
	return time.UnixMilli(int64(d))
}

// AddDays moves d by n calendar days. Calendar arithmetic is used rather
// than fixed 24h steps so DST transitions do not shift the key.
func (d Day) AddDays(n int) Day {
	return DayOf(d.Time().AddDate(0, 0, n))
}

// DaysUntil returns the number of calendar days from d to other.
// Negative when other is before d.
func (d Day) DaysUntil(other Day) int {
	a, b := d.Time(), other.Time()
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

func (d Day) String() string {
	return d.Time().Format(DayLayout)
}

// Weekday is an ISO weekday index: Monday=1 … Sunday=7.
type Weekday uint8

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Valid reports whether w is in 1..7.
func (w Weekday) Valid() bool {
	return w >= Monday && w <= Sunday
}

// Short returns a two-letter label, e.g. "Mo".
func (w Weekday) Short() string {
	if !w.Valid() {
		return "??"
	}
	return [...]string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}[w-1]
}

// WeekdayOf maps Go's Sunday-first numbering onto Monday=1 … Sunday=7.
func WeekdayOf(d Day) Weekday {
	wd := d.Time().Weekday()
	if wd == time.Sunday {
		return Sunday
	}
	return Weekday(wd)
}

// WeekdayIndex is WeekdayOf as a plain int.
func WeekdayIndex(d Day) int {
	return int(WeekdayOf(d))
}

// WeekOf returns the Monday..Sunday days of the week containing d.
func WeekOf(d Day) []Day {
	monday := d.AddDays(-(WeekdayIndex(d) - 1))
	days := make([]Day, 7)
	for i := range days {
		days[i] = monday.AddDays(i)
	}
	return days
}

// MonthOf returns every day of the month containing d, first to last.
func MonthOf(d Day) []Day {
	t := d.Time()
	first := DayOf(time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()))
	var days []Day
	for cur := first; cur.Time().Month() == t.Month(); cur = cur.AddDays(1) {
		days = append(days, cur)
	}
	return days
}
