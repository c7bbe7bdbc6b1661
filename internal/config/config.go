package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Calendar views accepted by diary.calendar_view.
const (
	ViewWeek  = "week"
	ViewMonth = "month"
)

// DefaultLogLevel is used when [log] level and FIT_LOG_LEVEL are unset.
const DefaultLogLevel = "info"

// Config holds the top-level fitdiary configuration.
type Config struct {
	User   UserConfig   `toml:"user"`
	Diary  DiaryConfig  `toml:"diary"`
	Log    LogConfig    `toml:"log"`
	Backup BackupConfig `toml:"backup"`
}

type UserConfig struct {
	Name string `toml:"name"`
}

// DiaryConfig holds defaults for plans, check-ins and views.
type DiaryConfig struct {
	DefaultCategory string `toml:"default_category"`
	CalendarView    string `toml:"calendar_view"` // week or month
	DefaultMinutes  int    `toml:"default_minutes"`

	// Hints controls the "tip:" lines after commands.
	// Nil (missing from config) means enabled.
	Hints *bool `toml:"hints,omitempty"`
}

// HintsEnabled treats a missing setting as true.
func (d DiaryConfig) HintsEnabled() bool {
	if d.Hints == nil {
		return true
	}
	return *d.Hints
}

// LogConfig controls the diagnostic log file.
type LogConfig struct {
	Level     string `toml:"level"`
	MaxSizeMB int    `toml:"max_size_mb"`
}

type BackupConfig struct {
	// Dir is where `fit backup export` writes when given a bare file name.
	Dir string `toml:"dir"`
}

// Paths returns standard XDG-compliant paths.
type Paths struct {
	ConfigDir  string
	DataDir    string
	CacheDir   string
	StateDir   string
	ConfigFile string
	DBFile     string
	LogFile    string
}

// GetPaths returns the resolved paths, respecting XDG env vars.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()

	configDir := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dataDir := envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	cacheDir := envOr("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	stateDir := envOr("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	appConfig := filepath.Join(configDir, "fitdiary")
	appData := filepath.Join(dataDir, "fitdiary")
	appState := filepath.Join(stateDir, "fitdiary")

	return Paths{
		ConfigDir:  appConfig,
		DataDir:    appData,
		CacheDir:   filepath.Join(cacheDir, "fitdiary"),
		StateDir:   appState,
		ConfigFile: filepath.Join(appConfig, "config.toml"),
		DBFile:     filepath.Join(appData, "fitdiary.db"),
		LogFile:    filepath.Join(appState, "fit.log"),
	}
}

// EnsureDirs creates all required directories.
func (p Paths) EnsureDirs() error {
	dirs := []string{p.ConfigDir, p.DataDir, p.CacheDir, p.StateDir}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Load reads config from disk, returning defaults if not found.
// Keys missing from the file keep their default values.
func Load() (*Config, error) {
	paths := GetPaths()
	cfg := defaultConfig()

	data, err := os.ReadFile(paths.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes config to disk.
func Save(cfg *Config) error {
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	f, err := os.Create(paths.ConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Initialized returns true if fitdiary has been set up.
func Initialized() bool {
	paths := GetPaths()
	_, err := os.Stat(paths.ConfigFile)
	return err == nil
}

// BoolPtr returns a pointer to a bool value.
func BoolPtr(v bool) *bool {
	return &v
}

func defaultConfig() *Config {
	return &Config{
		Diary: DiaryConfig{
			DefaultCategory: "general",
			CalendarView:    ViewWeek,
			Hints:           BoolPtr(true),
		},
		Log: LogConfig{
			Level:     envOr("FIT_LOG_LEVEL", DefaultLogLevel),
			MaxSizeMB: 5,
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
