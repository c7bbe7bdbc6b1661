package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rnwolfe/fitdiary/internal/attendance"
	"github.com/rnwolfe/fitdiary/internal/config"
	"github.com/rnwolfe/fitdiary/internal/logging"
	"github.com/rnwolfe/fitdiary/internal/tips"
	"github.com/rnwolfe/fitdiary/internal/tui"
	"github.com/rnwolfe/fitdiary/internal/ui"
)

var (
	debugLog  bool
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "fit",
	Short: "Training plans, daily check-ins and streaks",
	Long: `fit keeps a diary of recurring training plans.

Schedule plans on weekdays, check them off each day, and keep your streak
alive: a day counts once every plan due that day is done.`,
	RunE: runDashboard,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		setupLogging()
		logrus.WithField("cmd", cmd.CommandPath()).Debug("running")
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Debug("command failed")
		ui.Err(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Log diagnostics to stderr")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(uncheckCmd)
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupLogging points logrus at the state dir. A broken config still gets
// default logging so the command itself can report the problem.
func setupLogging() {
	p := logging.Params{
		File:  config.GetPaths().LogFile,
		Level: config.DefaultLogLevel,
		Debug: debugLog,
	}
	if cfg, err := config.Load(); err == nil {
		p.Level = cfg.Log.Level
		p.MaxSizeMB = cfg.Log.MaxSizeMB
	}
	logCloser = logging.Setup(p)
}

// runDashboard shows today's plans and the streak when you just type `fit`.
func runDashboard(_ *cobra.Command, _ []string) error {
	if !config.Initialized() {
		fmt.Println(ui.Greet(""))
		fmt.Println()
		fmt.Println("  Looks like this is your first time. Let's set things up!")
		fmt.Println()
		fmt.Printf("  Run %s to get started.\n", ui.Accent.Render("fit init"))
		fmt.Println()
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	db, d, err := openDiary()
	if err != nil {
		return err
	}
	defer db.Close()

	today := attendance.Today(now())

	if interactive() {
		for {
			action, err := tui.RunDash(d, cfg.User.Name, today)
			if err != nil {
				return err
			}
			if action != tui.DashActionOpenCalendar {
				return nil
			}
			month := cfg.Diary.CalendarView == config.ViewMonth
			if err := tui.RunCalendar(d.Engine(), today, today, month); err != nil {
				return err
			}
		}
	}

	data, err := tui.LoadDash(context.Background(), d, cfg.User.Name, today)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Print(tui.RenderDash(data, -1, 80))

	switch {
	case data.Plans == 0:
		hint(cfg, "`fit plan add \"Push-ups\" --days 1,3,5` to schedule your first plan.")
	case data.DoneCount() < len(data.Due):
		hint(cfg, fmt.Sprintf("`fit check %d` when you're done.", firstOpen(data)))
	default:
		hint(cfg, tips.Daily(now()))
	}
	fmt.Println()
	return nil
}

func firstOpen(data tui.DashData) int64 {
	for _, p := range data.Due {
		if !data.Done[p.ID] {
			return p.ID
		}
	}
	return 0
}
