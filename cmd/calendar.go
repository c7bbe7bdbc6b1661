package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rnwolfe/fitdiary/internal/attendance"
	"github.com/rnwolfe/fitdiary/internal/config"
	"github.com/rnwolfe/fitdiary/internal/tui"
)

var (
	calendarMonth       bool
	calendarWeek        bool
	calendarDate        string
	calendarInteractive bool
)

var calendarCmd = &cobra.Command{
	Use:     "calendar",
	Aliases: []string{"cal"},
	Short:   "Show attendance for a week or month",
	Long: `Show which days were fully attended.

  ✓ every due plan done   ~ some done   ✗ none done
  ○ today, not finished   · nothing scheduled`,
	Args: cobra.NoArgs,
	RunE: runCalendar,
}

func init() {
	calendarCmd.Flags().BoolVar(&calendarMonth, "month", false, "Show the whole month")
	calendarCmd.Flags().BoolVar(&calendarWeek, "week", false, "Show one week")
	calendarCmd.Flags().StringVar(&calendarDate, "date", "", "Show the week/month containing this day")
	calendarCmd.Flags().BoolVarP(&calendarInteractive, "interactive", "i", false, "Browse in a full-screen view")
	calendarCmd.MarkFlagsMutuallyExclusive("month", "week")
}

func runCalendar(_ *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault()
	anchor, err := resolveDay(calendarDate)
	if err != nil {
		return err
	}
	month := cfg.Diary.CalendarView == config.ViewMonth
	if calendarMonth {
		month = true
	}
	if calendarWeek {
		month = false
	}

	db, d, err := openDiary()
	if err != nil {
		return err
	}
	defer db.Close()

	today := attendance.Today(now())
	engine := d.Engine()

	if calendarInteractive {
		if !interactive() {
			return fmt.Errorf("--interactive needs a terminal")
		}
		return tui.RunCalendar(engine, today, anchor, month)
	}

	days := attendance.WeekOf(anchor)
	if month {
		days = attendance.MonthOf(anchor)
	}
	cal, err := engine.DayAttendanceCalendar(context.Background(), days)
	if err != nil {
		return err
	}

	fmt.Println()
	if month {
		fmt.Print(tui.RenderMonth(cal, today))
	} else {
		fmt.Print(tui.RenderWeek(cal, today))
	}
	fmt.Println()
	return nil
}
