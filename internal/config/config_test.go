package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetPaths(t *testing.T) {
	paths := GetPaths()

	if paths.ConfigDir == "" {
		t.Fatal("ConfigDir should not be empty")
	}
	if paths.DataDir == "" {
		t.Fatal("DataDir should not be empty")
	}
	if paths.ConfigFile == "" {
		t.Fatal("ConfigFile should not be empty")
	}
	if paths.DBFile == "" {
		t.Fatal("DBFile should not be empty")
	}
	if paths.LogFile == "" {
		t.Fatal("LogFile should not be empty")
	}
}

func TestGetPathsRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/testxdg/config")
	t.Setenv("XDG_DATA_HOME", "/tmp/testxdg/data")
	t.Setenv("XDG_STATE_HOME", "/tmp/testxdg/state")

	paths := GetPaths()

	if paths.ConfigDir != "/tmp/testxdg/config/fitdiary" {
		t.Fatalf("expected /tmp/testxdg/config/fitdiary, got %s", paths.ConfigDir)
	}
	if paths.DataDir != "/tmp/testxdg/data/fitdiary" {
		t.Fatalf("expected /tmp/testxdg/data/fitdiary, got %s", paths.DataDir)
	}
	if paths.LogFile != "/tmp/testxdg/state/fitdiary/fit.log" {
		t.Fatalf("expected /tmp/testxdg/state/fitdiary/fit.log, got %s", paths.LogFile)
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("FIT_LOG_LEVEL", "")
	cfg := defaultConfig()

	if cfg.Diary.CalendarView != ViewWeek {
		t.Fatalf("expected calendar view %q, got %q", ViewWeek, cfg.Diary.CalendarView)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Fatalf("expected log level %q, got %q", DefaultLogLevel, cfg.Log.Level)
	}
	if !cfg.Diary.HintsEnabled() {
		t.Fatal("hints should default to enabled")
	}
}

func TestHintsEnabled_NilMeansTrue(t *testing.T) {
	if !(DiaryConfig{}).HintsEnabled() {
		t.Fatal("nil Hints should be treated as enabled")
	}
}

func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir+"/config")
	t.Setenv("XDG_DATA_HOME", tmpDir+"/data")
	t.Setenv("XDG_CACHE_HOME", tmpDir+"/cache")
	t.Setenv("XDG_STATE_HOME", tmpDir+"/state")

	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs failed: %v", err)
	}

	for _, dir := range []string{paths.ConfigDir, paths.DataDir, paths.CacheDir, paths.StateDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("dir %s not created: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("%s is not a directory", dir)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "data"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(tmpDir, "cache"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmpDir, "state"))

	if Initialized() {
		t.Fatal("should not be initialized before Save")
	}

	cfg := defaultConfig()
	cfg.User.Name = "Sam"
	cfg.Diary.DefaultMinutes = 30
	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !Initialized() {
		t.Fatal("should be initialized after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.User.Name != "Sam" || got.Diary.DefaultMinutes != 30 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	paths := GetPaths()
	if err := os.MkdirAll(paths.ConfigDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(paths.ConfigFile, []byte("[user]\nname = \"Lee\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.User.Name != "Lee" {
		t.Fatalf("name = %q, want Lee", cfg.User.Name)
	}
	if cfg.Diary.CalendarView != ViewWeek {
		t.Fatalf("calendar view = %q, want default %q", cfg.Diary.CalendarView, ViewWeek)
	}
}

func TestDefaultConfig_LogLevelFromEnv(t *testing.T) {
	t.Setenv("FIT_LOG_LEVEL", "debug")
	if got := defaultConfig().Log.Level; got != "debug" {
		t.Fatalf("expected debug from FIT_LOG_LEVEL, got %q", got)
	}
}
