package attendance

import (
	"fmt"
	"strconv"
	"strings"
)

// EveryDayToken is the stored sentinel meaning "due every calendar day".
const EveryDayToken = "0"

// Schedule is the set of weekdays a plan is due on, as a bitmask over
// Weekday. The zero value means every day.
type Schedule uint8

// EveryDay is the schedule that is due on all seven weekdays.
const EveryDay Schedule = 0

// NewSchedule builds a schedule from weekdays. Invalid weekdays are ignored;
// no valid weekday yields EveryDay.
func NewSchedule(days ...Weekday) Schedule {
	var s Schedule
	for _, w := range days {
		if w.Valid() {
			s |= 1 << w
		}
	}
	return s
}

// ParseSchedule parses a stored schedule such as "1,3,5" or "0".
//
// Malformed tokens (non-numeric or outside 1..7) are skipped one by one.
// If the sentinel "0" appears, or no token is valid, the plan is due every day.
func ParseSchedule(raw string) Schedule {
	s, _ := parseSchedule(raw)
	return s
}

// ParseScheduleStrict is ParseSchedule for user input: it fails on the first
// malformed token instead of skipping it.
func ParseScheduleStrict(raw string) (Schedule, error) {
	s, bad := parseSchedule(raw)
	if len(bad) > 0 {
		return EveryDay, fmt.Errorf("invalid weekday %q in %q: use 1 (Mon) … 7 (Sun), or 0 for every day", bad[0], raw)
	}
	return s, nil
}

func parseSchedule(raw string) (Schedule, []string) {
	var (
		s        Schedule
		bad      []string
		everyDay bool
	)
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if tok == EveryDayToken {
			everyDay = true
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n < int(Monday) || n > int(Sunday) {
			bad = append(bad, tok)
			continue
		}
		s |= 1 << Weekday(n)
	}
	if everyDay {
		return EveryDay, bad
	}
	return s, bad
}

// IsEveryDay reports whether the schedule is due on all days.
func (s Schedule) IsEveryDay() bool {
	return s == EveryDay
}

// Includes reports whether the schedule is due on weekday w.
func (s Schedule) Includes(w Weekday) bool {
	if s.IsEveryDay() {
		return w.Valid()
	}
	return w.Valid() && s&(1<<w) != 0
}

// Weekdays lists the scheduled weekdays in Monday-first order.
func (s Schedule) Weekdays() []Weekday {
	var days []Weekday
	for w := Monday; w <= Sunday; w++ {
		if s.Includes(w) {
			days = append(days, w)
		}
	}
	return days
}

// String encodes the schedule in its stored form: "0" or e.g. "1,3,5".
func (s Schedule) String() string {
	if s.IsEveryDay() {
		return EveryDayToken
	}
	parts := make([]string, 0, 7)
	for _, w := range s.Weekdays() {
		parts = append(parts, strconv.Itoa(int(w)))
	}
	return strings.Join(parts, ",")
}

// Label renders the schedule for humans, e.g. "Mo We Fr" or "every day".
func (s Schedule) Label() string {
	if s.IsEveryDay() {
		return "every day"
	}
	parts := make([]string, 0, 7)
	for _, w := range s.Weekdays() {
		parts = append(parts, w.Short())
	}
	return strings.Join(parts, " ")
}

func (s Schedule) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Schedule) UnmarshalText(b []byte) error {
	*s = ParseSchedule(string(b))
	return nil
}
