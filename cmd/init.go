package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rnwolfe/fitdiary/internal/config"
	"github.com/rnwolfe/fitdiary/internal/store"
	"github.com/rnwolfe/fitdiary/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up fit for the first time",
	Long:  `Create the config file and the diary database. Safe to re-run: existing answers become the defaults.`,
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func runInit(_ *cobra.Command, _ []string) error {
	return runInitWithReader(bufio.NewReader(os.Stdin))
}

func runInitWithReader(reader *bufio.Reader) error {
	fmt.Println(ui.Title.Render(ui.IconFit + "Welcome to fit!"))
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		ui.Warn(fmt.Sprintf("existing config unreadable, starting fresh: %v", err))
		cfg = &config.Config{}
	}

	defName := cfg.User.Name
	if defName == "" {
		defName = os.Getenv("USER")
	}
	cfg.User.Name = prompt(reader, "  What should I call you?", defName)
	cfg.Diary.DefaultCategory = prompt(reader, "  Default category for new plans?", orDefault(cfg.Diary.DefaultCategory, "general"))

	view := config.SchemaKeys["diary.calendar_view"]
	for {
		answer := prompt(reader, "  Calendar view, week or month?", orDefault(cfg.Diary.CalendarView, config.ViewWeek))
		if err := view.Set(cfg, answer); err != nil {
			ui.Warn(err.Error())
			cfg.Diary.CalendarView = config.ViewWeek
			continue
		}
		break
	}
	fmt.Println()

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("creating diary: %w", err)
	}
	db.Close()

	paths := config.GetPaths()
	ui.Ok("All set")
	ui.Kv("Config", paths.ConfigFile)
	ui.Kv("Diary", paths.DBFile)
	hint(cfg, "`fit plan add \"Push-ups\" --days 1,3,5 --sets 3 --reps 15` to add your first plan.")
	fmt.Println()
	return nil
}

// prompt asks a question and returns the trimmed answer, or defaultVal on
// an empty line or EOF.
func prompt(reader *bufio.Reader, question, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s %s ", question, ui.Muted.Render(fmt.Sprintf("(%s)", defaultVal)))
	} else {
		fmt.Printf("%s ", question)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	return input
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
