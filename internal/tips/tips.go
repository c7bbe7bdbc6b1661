// Package tips rotates short command hints shown once the day's training is done.
package tips

import "time"

var all = []string{
	"`fit calendar --month` to see the whole month at a glance.",
	"`fit calendar -i` to page through weeks with the arrow keys.",
	"`fit check 3 --date yesterday` to log a session you forgot.",
	"`fit check 3 -m 40` to record how long you trained.",
	"`fit uncheck 3 --clear` to forget an entry logged by mistake.",
	"`fit plan add \"Rows\" --days 2,4 --sets 4 --reps 10` to schedule a new plan.",
	"`fit plan edit 3 --days 0` to make a plan daily.",
	"`fit plan list --category legs` to see one group of plans.",
	"`fit plan category rename legs lower` to regroup plans in one go.",
	"`fit plan prune --before 2025-01-01` to drop old history.",
	"`fit plan show 3` to see a plan's notes and history.",
	"`fit today --date -2` to look back a couple of days.",
	"`fit streak` for your streak and this week's strip.",
	"`fit backup export` to write an encrypted copy of your diary.",
	"`fit config set diary.default_minutes 30` so every check-in logs a duration.",
	"`fit config set diary.calendar_view month` to open calendars on the month.",
	"`fit config set diary.hints false` to hide these tips.",
	"Days with nothing logged are skipped, so a missed log never breaks a streak.",
	"Finishing every plan due today is what extends the streak.",
	"A plan with no days set is due every day.",
}

// All returns the tip pool.
func All() []string {
	return all
}

// Daily returns a deterministic tip for the given day.
// The same tip is returned all day; it changes each day.
func Daily(t time.Time) string {
	return all[t.YearDay()%len(all)]
}
