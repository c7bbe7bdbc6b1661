// Package progress turns diary totals into a training level and a short
// list of achievements.
package progress

import "fmt"

// Stats are the totals progress is derived from.
type Stats struct {
	LoggedDays int // distinct days with any check-in
	BestStreak int
	Plans      int
}

// Level is a rank earned by logged training days.
type Level struct {
	Rank int
	Name string
	Icon string
	// Next is the number of logged days needed to reach the next rank;
	// 0 at the top rank.
	Next int
}

func (l Level) String() string {
	s := fmt.Sprintf("Lv.%d %s", l.Rank, l.Name)
	if l.Icon != "" {
		s += " " + l.Icon
	}
	return s
}

// levels are ordered by max logged days; the last one is open-ended.
var levels = []struct {
	max  int
	name string
	icon string
}{
	{0, "Newcomer", ""},
	{15, "Rookie", "🐣"},
	{30, "Trainee", "🔨"},
	{60, "Regular", "💪"},
	{-1, "Iron", "🏆"},
}

// LevelFor returns the level for a number of logged days.
func LevelFor(loggedDays int) Level {
	for rank, l := range levels {
		if l.max >= 0 && loggedDays > l.max {
			continue
		}
		lvl := Level{Rank: rank, Name: l.name, Icon: l.icon}
		if l.max >= 0 {
			lvl.Next = l.max + 1 - loggedDays
		}
		return lvl
	}
	return Level{}
}

// Achievement is a milestone and whether it has been reached.
type Achievement struct {
	ID       string
	Name     string
	Desc     string
	Unlocked bool
}

// Achievements evaluates every milestone against s, in a fixed order.
func Achievements(s Stats) []Achievement {
	return []Achievement{
		{ID: "first_day", Name: "First step", Desc: "Log your first training day", Unlocked: s.LoggedDays >= 1},
		{ID: "streak_3", Name: "Keep it up", Desc: "Fully attend 3 days in a row", Unlocked: s.BestStreak >= 3},
		{ID: "plan_master", Name: "Planner", Desc: "Create 3 or more plans", Unlocked: s.Plans >= 3},
	}
}

// Unlocked counts the reached achievements.
func Unlocked(list []Achievement) int {
	n := 0
	for _, a := range list {
		if a.Unlocked {
			n++
		}
	}
	return n
}
