package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rnwolfe/fitdiary/internal/attendance"
	"github.com/rnwolfe/fitdiary/internal/diary"
	"github.com/rnwolfe/fitdiary/internal/ui"
)

const daysHelp = "Weekdays as numbers, 1=Mon … 7=Sun (e.g. 1,3,5); 0 = every day"

var (
	planAddDays     string
	planAddCategory string
	planAddSets     int
	planAddReps     int
	planAddDesc     string

	planListCategory string

	planEditName     string
	planEditDays     string
	planEditCategory string
	planEditSets     int
	planEditReps     int
	planEditDesc     string

	planPruneBefore string
)

var planCmd = &cobra.Command{
	Use:     "plan",
	Aliases: []string{"plans", "p"},
	Short:   "Manage training plans",
	RunE:    runPlanList,
}

var planAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a training plan",
	Long: `Add a recurring training plan.

Without --days the plan is due every day.`,
	Example: `  fit plan add "Push-ups" --days 1,3,5 --sets 3 --reps 15
  fit plan add Run --category cardio`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlanAdd,
}

var planListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List training plans",
	Args:    cobra.NoArgs,
	RunE:    runPlanList,
}

var planShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a plan with its notes and history",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanShow,
}

var planEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a plan",
	Long: `Change a plan's fields. Only the flags you pass are changed.

Schedule changes apply to past days too: streaks and calendars are always
judged against the current schedule.`,
	Example: `  fit plan edit 3 --days 2,4
  fit plan edit 3 --name "Incline push-ups" --reps 12`,
	Args: cobra.ExactArgs(1),
	RunE: runPlanEdit,
}

var planRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete a plan and its check-ins",
	Args:    cobra.ExactArgs(1),
	RunE:    runPlanRm,
}

var planCategoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage plan categories",
}

var planCategoryRenameCmd = &cobra.Command{
	Use:   "rename <from> <to>",
	Short: "Rename a category on every plan that uses it",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlanCategoryRename,
}

var planPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete check-ins older than a date",
	Long: `Delete every check-in before --before. Plans are kept.

Pruned days no longer count toward streaks or the calendar.`,
	Args: cobra.NoArgs,
	RunE: runPlanPrune,
}

func init() {
	planCmd.AddCommand(planAddCmd)
	planCmd.AddCommand(planListCmd)
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planEditCmd)
	planCmd.AddCommand(planRmCmd)
	planCmd.AddCommand(planCategoryCmd)
	planCmd.AddCommand(planPruneCmd)
	planCategoryCmd.AddCommand(planCategoryRenameCmd)

	planAddCmd.Flags().StringVarP(&planAddDays, "days", "d", "", daysHelp)
	planAddCmd.Flags().StringVarP(&planAddCategory, "category", "c", "", "Category (default from diary.default_category)")
	planAddCmd.Flags().IntVar(&planAddSets, "sets", 0, "Target sets")
	planAddCmd.Flags().IntVar(&planAddReps, "reps", 0, "Target reps per set")
	planAddCmd.Flags().StringVar(&planAddDesc, "desc", "", "Notes (markdown)")

	planListCmd.Flags().StringVarP(&planListCategory, "category", "c", "", "Only show this category")

	planEditCmd.Flags().StringVar(&planEditName, "name", "", "New name")
	planEditCmd.Flags().StringVarP(&planEditDays, "days", "d", "", daysHelp)
	planEditCmd.Flags().StringVarP(&planEditCategory, "category", "c", "", "New category")
	planEditCmd.Flags().IntVar(&planEditSets, "sets", 0, "Target sets")
	planEditCmd.Flags().IntVar(&planEditReps, "reps", 0, "Target reps per set")
	planEditCmd.Flags().StringVar(&planEditDesc, "desc", "", "Notes (markdown); empty clears them")

	planPruneCmd.Flags().StringVar(&planPruneBefore, "before", "", "Delete check-ins before this date (YYYY-MM-DD)")
	_ = planPruneCmd.MarkFlagRequired("before")
}

func runPlanAdd(_ *cobra.Command, args []string) error {
	cfg := loadConfigOrDefault()

	schedule := attendance.EveryDay
	if planAddDays != "" {
		s, err := attendance.ParseScheduleStrict(planAddDays)
		if err != nil {
			return err
		}
		schedule = s
	}
	category := planAddCategory
	if category == "" {
		category = cfg.Diary.DefaultCategory
	}

	db, d, err := openDiary()
	if err != nil {
		return err
	}
	defer db.Close()

	p := diary.Plan{
		Name:        strings.Join(args, " "),
		Description: planAddDesc,
		Category:    category,
		Sets:        planAddSets,
		Reps:        planAddReps,
		Schedule:    schedule,
	}
	id, err := d.AddPlan(p)
	if err != nil {
		return err
	}

	ui.Ok(fmt.Sprintf("Plan %s added: %s", ui.Accent.Render(fmt.Sprintf("#%d", id)), strings.TrimSpace(p.Name)))
	ui.Kv("Schedule", schedule.Label())
	if t := p.Target(); t != "" {
		ui.Kv("Target", t)
	}
	if schedule.Includes(attendance.WeekdayOf(attendance.Today(now()))) {
		hint(cfg, fmt.Sprintf("It's due today. `fit check %d` when you're done.", id))
	}
	return nil
}

func runPlanList(_ *cobra.Command, _ []string) error {
	db, d, err := openDiary()
	if err != nil {
		return err
	}
	defer db.Close()

	plans, err := d.ListPlans(context.Background())
	if err != nil {
		return err
	}
	if planListCategory != "" {
		var kept []diary.Plan
		for _, p := range plans {
			if strings.EqualFold(p.Category, planListCategory) {
				kept = append(kept, p)
			}
		}
		plans = kept
	}

	if len(plans) == 0 {
		fmt.Println()
		fmt.Println(ui.Muted.Render("  No plans yet."))
		hint(loadConfigOrDefault(), "`fit plan add \"Squats\" --days 2,4` to add one.")
		fmt.Println()
		return nil
	}

	sort.Slice(plans, func(i, j int) bool { return plans[i].ID < plans[j].ID })
	dueToday := attendance.NewResolver(diary.TrainingPlans(plans)).Due(attendance.Today(now()))

	fmt.Println()
	for _, p := range plans {
		fmt.Println(formatPlanRow(p, dueToday.Has(attendance.PlanID(p.ID))))
	}
	fmt.Println()
	fmt.Println(ui.Muted.Render(fmt.Sprintf("  %d plans · %d due today", len(plans), len(dueToday))))
	fmt.Println()
	return nil
}

func formatPlanRow(p diary.Plan, due bool) string {
	marker := " "
	if due {
		marker = ui.Accent.Render("●")
	}
	id := ui.Muted.Render(fmt.Sprintf("#%-3d", p.ID))
	line := fmt.Sprintf("  %s %s %-24s %s", marker, id, p.Name, ui.Info.Render(fmt.Sprintf("%-14s", p.Schedule.Label())))
	if t := p.Target(); t != "" {
		line += " " + ui.Muted.Render(t)
	}
	if p.Category != "" {
		line += " " + ui.Tag.Render(p.Category)
	}
	return line
}

func runPlanShow(_ *cobra.Command, args []string) error {
	id, err := parsePlanID(args[0])
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
	logs, err := d.ListLogs(context.Background())
	if err != nil {
		return err
	}

	ui.Header(fmt.Sprintf("#%d %s", p.ID, p.Name))
	fmt.Println()
	ui.Kv("Schedule", p.Schedule.Label())
	if p.Category != "" {
		ui.Kv("Category", p.Category)
	}
	if t := p.Target(); t != "" {
		ui.Kv("Target", t)
	}
	ui.Kv("Created", p.CreatedAt.Local().Format("Jan 2, 2006"))

	done, total := 0, 0
	var last attendance.Day
	for _, l := range logs {
		if l.PlanID != p.ID || !l.Completed {
			continue
		}
		done++
		total += l.DurationSec
		if l.Day > last {
			last = l.Day
		}
	}
	history := fmt.Sprintf("%d check-ins", done)
	if done > 0 {
		history += fmt.Sprintf(" · last %s", dayLabel(last))
	}
	if total > 0 {
		history += " · " + ui.Duration(total) + " logged"
	}
	ui.Kv("History", history)

	if notes := ui.PlanNotes(p.Description, ui.IsStdoutTTY()); notes != "" {
		fmt.Println()
		fmt.Println(notes)
	}
	fmt.Println()
	return nil
}

func runPlanEdit(cmd *cobra.Command, args []string) error {
	id, err := parsePlanID(args[0])
	if err != nil {
		return err
	}

	var (
		u       diary.PlanUpdate
		flagErr error
	)
	cmd.Flags().Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "name":
			u.Name = &planEditName
		case "days":
			s, err := attendance.ParseScheduleStrict(planEditDays)
			if err != nil {
				flagErr = err
				return
			}
			u.Schedule = &s
		case "category":
			u.Category = &planEditCategory
		case "sets":
			u.Sets = &planEditSets
		case "reps":
			u.Reps = &planEditReps
		case "desc":
			u.Description = &planEditDesc
		}
	})
	if flagErr != nil {
		return flagErr
	}
	if u.Empty() {
		return fmt.Errorf("nothing to change: pass at least one of --name, --days, --category, --sets, --reps, --desc")
	}

	db, d, err := openDiary()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := d.UpdatePlan(id, u); err != nil {
		return err
	}
	p, err := d.GetPlan(id)
	if err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("Plan #%d updated", id))
	fmt.Println(formatPlanRow(*p, false))
	if u.Schedule != nil {
		hint(loadConfigOrDefault(), "Past days are re-judged against the new schedule; your streak may change.")
	}
	return nil
}

func runPlanRm(_ *cobra.Command, args []string) error {
	id, err := parsePlanID(args[0])
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
	if err := d.DeletePlan(id); err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("Removed plan #%d %s and its check-ins", id, p.Name))
	return nil
}

func runPlanCategoryRename(_ *cobra.Command, args []string) error {
	db, d, err := openDiary()
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := d.RenameCategory(args[0], args[1])
	if err != nil {
		return err
	}
	if n == 0 {
		ui.Warn(fmt.Sprintf("No plans in category %q", args[0]))
		return nil
	}
	ui.Ok(fmt.Sprintf("Moved %d plans from %s to %s", n, args[0], ui.Accent.Render(strings.TrimSpace(args[1]))))
	return nil
}

func runPlanPrune(_ *cobra.Command, _ []string) error {
	before, err := resolveDay(planPruneBefore)
	if err != nil {
		return err
	}
	if before > attendance.Today(now()) {
		return fmt.Errorf("--before %s is in the future", before)
	}

	db, d, err := openDiary()
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := d.PurgeLogsBefore(before)
	if err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("Pruned %d check-ins before %s", n, before))
	return nil
}
