package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rnwolfe/fitdiary/internal/backup"
	"github.com/rnwolfe/fitdiary/internal/config"
	"github.com/rnwolfe/fitdiary/internal/store"
	"github.com/rnwolfe/fitdiary/internal/ui"
	"github.com/rnwolfe/fitdiary/internal/version"
)

// passphraseEnv, when set, supplies the backup passphrase non-interactively.
const passphraseEnv = "FIT_BACKUP_PASSPHRASE"

const kvLastExport = "backup.last_export"

var backupImportYes bool

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export and restore encrypted backups",
	Long: `Export the whole diary (plans and check-ins) to a passphrase-encrypted
file, and restore it later.

The passphrase is read from ` + passphraseEnv + ` or prompted for.`,
	RunE: runBackupStatus,
}

var backupExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write an encrypted backup",
	Long: `Write an encrypted backup. A bare file name goes into backup.dir when it
is set. Without a file name, fitdiary-YYYYMMDD.age is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBackupExport,
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the diary with a backup",
	Long: `Replace every plan and check-in with the contents of a backup.
The current diary is replaced entirely (no merge).`,
	Args: cobra.ExactArgs(1),
	RunE: runBackupImport,
}

func init() {
	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)
	backupImportCmd.Flags().BoolVarP(&backupImportYes, "yes", "y", false, "Replace without asking")
}

func runBackupStatus(_ *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault()
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	last, err := db.GetKV(kvLastExport)
	if err != nil {
		return err
	}

	fmt.Println()
	if last == "" {
		ui.Kv("Last export", ui.Muted.Render("never"))
	} else {
		ui.Kv("Last export", last)
	}
	dir := cfg.Backup.Dir
	if dir == "" {
		dir = ui.Muted.Render("current directory")
	}
	ui.Kv("Backup dir", dir)
	hint(cfg, "`fit backup export` to write one now.")
	fmt.Println()
	return nil
}

func runBackupExport(_ *cobra.Command, args []string) error {
	cfg := loadConfigOrDefault()
	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	path := backupPath(cfg, name, now())
	if err := validateExportPath(path, cfg.Backup.Dir); err != nil {
		return err
	}

	pass, err := readPassphrase(true)
	if err != nil {
		return err
	}

	db, d, err := openDiary()
	if err != nil {
		return err
	}
	defer db.Close()

	snap, err := backup.Take(context.Background(), d, version.Short(), now())
	if err != nil {
		return err
	}
	if err := backup.WriteFile(path, snap, pass); err != nil {
		return formatBackupError(err)
	}
	if err := db.SetKV(kvLastExport, now().Format(time.RFC3339)); err != nil {
		ui.Warn(err.Error())
	}

	ui.Ok(fmt.Sprintf("Backed up %d plans and %d check-ins to %s", len(snap.Plans), len(snap.Logs), ui.Accent.Render(path)))
	return nil
}

func runBackupImport(_ *cobra.Command, args []string) error {
	path := args[0]
	if err := validateImportPath(path); err != nil {
		return err
	}
	pass, err := readPassphrase(false)
	if err != nil {
		return err
	}
	snap, err := backup.ReadFile(path, pass)
	if err != nil {
		return formatBackupError(err)
	}

	if !backupImportYes {
		if !term.IsTerminal(int(syscall.Stdin)) {
			return fmt.Errorf("refusing to replace the diary without --yes")
		}
		fmt.Printf("  Replace the diary with %d plans and %d check-ins from %s? [y/N] ",
			len(snap.Plans), len(snap.Logs), snap.Manifest.CreatedAt.Local().Format("Jan 2, 2006 15:04"))
		var answer string
		fmt.Scanln(&answer)
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			ui.Warn("Import canceled")
			return nil
		}
	}

	db, d, err := openDiary()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := backup.Restore(context.Background(), d, snap); err != nil {
		return formatBackupError(err)
	}
	ui.Ok(fmt.Sprintf("Restored %d plans and %d check-ins", len(snap.Plans), len(snap.Logs)))
	return nil
}

// backupPath places bare names in backup.dir and fills in a dated default.
func backupPath(cfg *config.Config, name string, at time.Time) string {
	if name == "" {
		name = fmt.Sprintf("fitdiary-%s.age", at.Format("20060102"))
	}
	if cfg.Backup.Dir != "" && filepath.Base(name) == name {
		return filepath.Join(cfg.Backup.Dir, name)
	}
	return name
}

// validateExportPath rejects directories and missing parents. The configured
// backup dir is created on demand.
func validateExportPath(path, backupDir string) error {
	clean := filepath.Clean(path)
	if info, err := os.Stat(clean); err == nil && info.IsDir() {
		return fmt.Errorf("export path is a directory: %s", path)
	}
	dir := filepath.Dir(clean)
	if backupDir != "" && dir == filepath.Clean(backupDir) {
		return nil
	}
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("export directory does not exist: %s", dir)
	}
	return nil
}

func validateImportPath(path string) error {
	info, err := os.Stat(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("backup file not found: %s", path)
		}
		return fmt.Errorf("checking backup file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("backup path must be a file, not a directory: %s", path)
	}
	return nil
}

// readPassphrase prefers the env var, then prompts on a terminal.
func readPassphrase(confirm bool) (string, error) {
	if p := os.Getenv(passphraseEnv); p != "" {
		return p, nil
	}
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("backup passphrase required: set %s or run interactively", passphraseEnv)
	}

	fmt.Fprint(os.Stderr, ui.Muted.Render("  Backup passphrase: "))
	passBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	pass := strings.TrimSpace(string(passBytes))
	if pass == "" {
		return "", fmt.Errorf("passphrase can't be empty")
	}

	if confirm {
		fmt.Fprint(os.Stderr, ui.Muted.Render("  Confirm passphrase: "))
		confirmBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading passphrase confirmation: %w", err)
		}
		if strings.TrimSpace(string(confirmBytes)) != pass {
			return "", fmt.Errorf("passphrases do not match")
		}
	}
	return pass, nil
}

func formatBackupError(err error) error {
	switch {
	case errors.Is(err, backup.ErrWrongPassphrase):
		return fmt.Errorf("wrong passphrase: check %s or try again", passphraseEnv)
	case errors.Is(err, backup.ErrCorruptedBackup):
		return fmt.Errorf("backup is corrupted or was not written by fit: %w", err)
	}
	return err
}
