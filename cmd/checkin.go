package cmd

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rnwolfe/fitdiary/internal/attendance"
	"github.com/rnwolfe/fitdiary/internal/diary"
	"github.com/rnwolfe/fitdiary/internal/tui"
	"github.com/rnwolfe/fitdiary/internal/ui"
)

// errNoPlans is returned by commands that need at least one plan.
var errNoPlans = errors.New("no plans yet: add one with `fit plan add`")

var (
	checkDate    string
	checkMinutes int

	uncheckDate  string
	uncheckClear bool

	todayDate string
)

var checkCmd = &cobra.Command{
	Use:     "check [id]",
	Aliases: []string{"done"},
	Short:   "Mark a plan done for a day",
	Long: `Mark a plan done for today, or for --date.

Without an id, pick from the plans due that day.`,
	Example: `  fit check 3
  fit check 3 --date yesterday --minutes 40`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

var uncheckCmd = &cobra.Command{
	Use:   "uncheck <id>",
	Short: "Mark a plan not done for a day",
	Long: `Record that a plan was not done. With --clear, forget the day's entry
for the plan entirely, as if it had never been logged.`,
	Args: cobra.ExactArgs(1),
	RunE: runUncheck,
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "List the plans due today and what's left",
	Args:  cobra.NoArgs,
	RunE:  runToday,
}

func init() {
	checkCmd.Flags().StringVar(&checkDate, "date", "", "Day to check in (YYYY-MM-DD, yesterday, -N)")
	checkCmd.Flags().IntVarP(&checkMinutes, "minutes", "m", -1, "Minutes trained (default from diary.default_minutes)")

	uncheckCmd.Flags().StringVar(&uncheckDate, "date", "", "Day to change (YYYY-MM-DD, yesterday, -N)")
	uncheckCmd.Flags().BoolVar(&uncheckClear, "clear", false, "Remove the entry instead of marking it not done")

	todayCmd.Flags().StringVar(&todayDate, "date", "", "Show another day (YYYY-MM-DD, yesterday, -N)")
}

func runCheck(_ *cobra.Command, args []string) error {
	cfg := loadConfigOrDefault()
	day, err := resolveDay(checkDate)
	if err != nil {
		return err
	}
	minutes := checkMinutes
	if minutes < 0 {
		minutes = cfg.Diary.DefaultMinutes
	}

	db, d, err := openDiary()
	if err != nil {
		return err
	}
	defer db.Close()

	var id int64
	if len(args) == 1 {
		if id, err = parsePlanID(args[0]); err != nil {
			return err
		}
	} else {
		if !interactive() {
			return fmt.Errorf("plan id required (see `fit today`)")
		}
		p, err := pickPlanFor(d, day)
		if err != nil || p == nil {
			return err
		}
		id = p.ID
	}

	p, err := d.GetPlan(id)
	if err != nil {
		return err
	}
	if err := d.CheckIn(id, day, true, minutes*60); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"plan": id, "day": day.String(), "minutes": minutes}).Debug("checked in")

	msg := fmt.Sprintf("%s done %s", p.Name, dayLabel(day))
	if minutes > 0 {
		msg += fmt.Sprintf(" (%s)", ui.Duration(minutes*60))
	}
	ui.Ok(msg)
	if !p.Schedule.Includes(attendance.WeekdayOf(day)) {
		ui.Warn(fmt.Sprintf("%s isn't scheduled on %s; logged anyway", p.Name, attendance.WeekdayOf(day).Short()))
	}

	return reportDay(d, day)
}

// pickPlanFor offers the plans due on day, or every plan on a rest day.
func pickPlanFor(d *diary.Store, day attendance.Day) (*diary.Plan, error) {
	plans, err := d.ListPlans(context.Background())
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, errNoPlans
	}
	due := attendance.DuePlanIDs(day, diary.TrainingPlans(plans))
	var candidates []diary.Plan
	for _, p := range plans {
		if due.Has(attendance.PlanID(p.ID)) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		candidates = plans
	}
	return tui.PickPlan(fmt.Sprintf("Check in · %s", dayLabel(day)), candidates)
}

// reportDay prints how the day stands after a change, and the streak.
func reportDay(d *diary.Store, day attendance.Day) error {
	ctx := context.Background()
	snap, err := d.Engine().Snapshot(ctx)
	if err != nil {
		return err
	}
	plans, err := d.ListPlans(ctx)
	if err != nil {
		return err
	}
	names := planNames(plans)
	today := attendance.Today(now())

	a := snap.Evaluate(day)
	if missing := a.Missing(); len(missing) > 0 {
		left := make([]string, len(missing))
		for i, id := range missing {
			left[i] = fmt.Sprintf("#%d %s", id, names[int64(id)])
		}
		ui.Inf(fmt.Sprintf("%d left %s: %s", len(missing), dayLabel(day), strings.Join(left, ", ")))
	} else if len(a.Due) > 0 {
		ui.Ok(fmt.Sprintf("Every plan due %s is done %s", dayLabel(day), ui.IconFire))
	}
	ui.Kv("Streak", ui.StreakLine(snap.CurrentStreak(today)))
	return nil
}

func runUncheck(_ *cobra.Command, args []string) error {
	id, err := parsePlanID(args[0])
	if err != nil {
		return err
	}
	day, err := resolveDay(uncheckDate)
	if err != nil {
		return err
	}

	db, d, err := openDiary()
	if err != nil {
		return err
	}
	defer db.Close()

	p, err := d.GetPlan(id)
	if err != nil {
		return err
	}

	if uncheckClear {
		removed, err := d.ClearCheckIn(id, day)
		if err != nil {
			return err
		}
		if !removed {
			ui.Warn(fmt.Sprintf("Nothing logged for %s %s", p.Name, dayLabel(day)))
			return nil
		}
		ui.Ok(fmt.Sprintf("Cleared %s for %s", p.Name, dayLabel(day)))
	} else {
		if err := d.CheckIn(id, day, false, 0); err != nil {
			return err
		}
		ui.Ok(fmt.Sprintf("%s marked not done %s", p.Name, dayLabel(day)))
	}
	return reportDay(d, day)
}

func runToday(_ *cobra.Command, _ []string) error {
	day, err := resolveDay(todayDate)
	if err != nil {
		return err
	}
	db, d, err := openDiary()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	plans, err := d.ListPlans(ctx)
	if err != nil {
		return err
	}
	logs, err := d.LogsForDay(day)
	if err != nil {
		return err
	}
	minutes := make(map[int64]int, len(logs))
	for _, l := range logs {
		minutes[l.PlanID] = l.DurationSec
	}

	snap, err := d.Engine().Snapshot(ctx)
	if err != nil {
		return err
	}
	a := snap.Evaluate(day)

	fmt.Println()
	fmt.Println("  " + ui.Title.Render(fmt.Sprintf("%s %s", ui.IconPlan, day.Time().Format("Monday, January 2"))))
	fmt.Println()
	if len(a.Due) == 0 {
		fmt.Println("  " + ui.Muted.Render(ui.IconRest+" Nothing scheduled. Rest day."))
		fmt.Println()
		return nil
	}

	sort.Slice(plans, func(i, j int) bool { return plans[i].ID < plans[j].ID })
	for _, p := range plans {
		pid := attendance.PlanID(p.ID)
		if !a.Due.Has(pid) {
			continue
		}
		box := "[ ]"
		if a.Completed.Has(pid) {
			box = ui.Success.Render("[✓]")
		}
		line := fmt.Sprintf("  %s %s %s", box, ui.Muted.Render(fmt.Sprintf("#%d", p.ID)), p.Name)
		if t := p.Target(); t != "" {
			line += "  " + ui.Muted.Render(t)
		}
		if m := ui.Duration(minutes[p.ID]); m != "" {
			line += "  " + ui.Info.Render(m)
		}
		fmt.Println(line)
	}
	fmt.Println()

	done := len(a.Due) - len(a.Missing())
	if a.FullyAttended {
		ui.Ok(fmt.Sprintf("All %d done", done))
	} else {
		fmt.Println("  " + ui.Muted.Render(fmt.Sprintf("%d/%d done", done, len(a.Due))))
		if missing := a.Missing(); len(missing) > 0 {
			hint(loadConfigOrDefault(), fmt.Sprintf("`fit check %d` to tick off the next one.", missing[0]))
		}
	}
	fmt.Println()
	return nil
}
