package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rnwolfe/fitdiary/internal/attendance"
	"github.com/rnwolfe/fitdiary/internal/progress"
	"github.com/rnwolfe/fitdiary/internal/tui"
	"github.com/rnwolfe/fitdiary/internal/ui"
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show your current streak",
	Long: `Show the number of consecutive logged days on which every due plan was done,
your level by logged days, and achievements.

Days with nothing logged are skipped, not counted as breaks. Today only
counts once it is complete, and an unfinished today never breaks the streak.`,
	Args: cobra.NoArgs,
	RunE: runStreak,
}

func runStreak(_ *cobra.Command, _ []string) error {
	db, d, err := openDiary()
	if err != nil {
		return err
	}
	defer db.Close()

	snap, err := d.Engine().Snapshot(context.Background())
	if err != nil {
		return err
	}
	total, err := d.CountLoggedDays()
	if err != nil {
		return err
	}

	today := attendance.Today(now())
	streak := snap.CurrentStreak(today)
	todayView := snap.Evaluate(today)

	fmt.Println()
	ui.Kv("Streak", ui.StreakLine(streak))
	ui.Kv("Logged days", fmt.Sprintf("%d", total))
	switch {
	case len(snap.Plans) == 0:
		ui.Kv("Today", ui.Muted.Render("no plans"))
	case len(todayView.Due) == 0:
		ui.Kv("Today", ui.Muted.Render("rest day"))
	case todayView.FullyAttended:
		ui.Kv("Today", ui.Success.Render("done"))
	default:
		left := len(todayView.Missing())
		ui.Kv("Today", ui.Warning.Render(fmt.Sprintf("%d of %d left", left, len(todayView.Due))))
	}

	stats := progress.Stats{
		LoggedDays: total,
		BestStreak: snap.LongestStreak(today),
		Plans:      len(snap.Plans),
	}
	lvl := progress.LevelFor(stats.LoggedDays)
	level := lvl.String()
	if lvl.Next > 0 {
		level += ui.Muted.Render(fmt.Sprintf("  (%d more to Lv.%d)", lvl.Next, lvl.Rank+1))
	}
	ui.Kv("Level", level)
	ui.Kv("Best streak", ui.StreakLine(stats.BestStreak))
	achievements := progress.Achievements(stats)
	ui.Kv("Achievements", fmt.Sprintf("%d/%d", progress.Unlocked(achievements), len(achievements)))
	for _, a := range achievements {
		mark := ui.Muted.Render(ui.IconDot)
		name := ui.Muted.Render(a.Name)
		if a.Unlocked {
			mark = ui.Success.Render("✓")
			name = a.Name
		}
		fmt.Printf("    %s %s %s\n", mark, name, ui.Muted.Render(a.Desc))
	}
	fmt.Println()
	fmt.Print(tui.RenderWeek(snap.DayAttendanceCalendar(attendance.WeekOf(today)), today))

	if len(todayView.Due) > 0 && !todayView.FullyAttended {
		hint(loadConfigOrDefault(), fmt.Sprintf("Finish today to make it %d.", streak+1))
	}
	fmt.Println()
	return nil
}
