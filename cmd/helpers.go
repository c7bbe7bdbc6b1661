package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rnwolfe/fitdiary/internal/attendance"
	"github.com/rnwolfe/fitdiary/internal/config"
	"github.com/rnwolfe/fitdiary/internal/diary"
	"github.com/rnwolfe/fitdiary/internal/store"
	"github.com/rnwolfe/fitdiary/internal/tui"
	"github.com/rnwolfe/fitdiary/internal/ui"
)

// now is the clock for "today"; tests pin it.
var now = time.Now

func openDiary() (*store.DB, *diary.Store, error) {
	db, err := store.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	return db, diary.NewStore(db.Conn()), nil
}

// parsePlanID accepts "3" or "#3".
func parsePlanID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(arg), "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid plan id %q", arg)
	}
	return id, nil
}

// resolveDay turns a --date value into a calendar day. Empty means today;
// "yesterday" and negative offsets like "-2" count back from today.
func resolveDay(s string) (attendance.Day, error) {
	today := attendance.Today(now())
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	}
	if strings.HasPrefix(s, "-") {
		if n, err := strconv.Atoi(s); err == nil {
			return today.AddDays(n), nil
		}
	}
	d, err := attendance.ParseDay(s)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: use YYYY-MM-DD, today, yesterday or -N", s)
	}
	return d, nil
}

// dayLabel renders a day relative to today where that reads better.
func dayLabel(d attendance.Day) string {
	switch attendance.Today(now()).DaysUntil(d) {
	case 0:
		return "today"
	case -1:
		return "yesterday"
	case 1:
		return "tomorrow"
	}
	return d.Time().Format("Mon Jan 2")
}

func interactive() bool {
	return tui.IsTTY() && ui.IsStdoutTTY()
}

func hint(cfg *config.Config, msg string) {
	if cfg == nil || cfg.Diary.HintsEnabled() {
		ui.Tip(msg)
	}
}

// loadConfigOrDefault never fails: commands that only read preferences
// keep working with a broken config file.
func loadConfigOrDefault() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		ui.Warn(fmt.Sprintf("config unreadable, using defaults: %v", err))
		return &config.Config{}
	}
	return cfg
}

// planNames indexes plan names by ID.
func planNames(plans []diary.Plan) map[int64]string {
	names := make(map[int64]string, len(plans))
	for _, p := range plans {
		names[p.ID] = p.Name
	}
	return names
}
