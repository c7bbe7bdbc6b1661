package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// KeyType represents the data type of a config key.
type KeyType string

const (
	KeyTypeString KeyType = "string"
	KeyTypeInt    KeyType = "int"
	KeyTypeBool   KeyType = "bool"
)

// KeyEntry describes a known, settable config key.
type KeyEntry struct {
	// Type is the value's data type (string, int, bool).
	Type KeyType
	// Desc is a human-readable description shown in `fit config list`.
	Desc string
	// DefaultStr is the string representation of the default value.
	DefaultStr string

	get   func(*Config) string
	set   func(cfg *Config, value string) error
	unset func(cfg *Config)
}

// Get returns the current value of the key as a string.
func (e *KeyEntry) Get(cfg *Config) string { return e.get(cfg) }

// Set validates and sets the value, returning a descriptive error on type mismatch.
func (e *KeyEntry) Set(cfg *Config, value string) error { return e.set(cfg, value) }

// Unset resets the key to its schema default.
func (e *KeyEntry) Unset(cfg *Config) { e.unset(cfg) }

// SchemaKeys is the authoritative registry of all settable config keys.
// Keys use dot-notation matching the TOML section structure.
var SchemaKeys = map[string]*KeyEntry{
	"user.name": {
		Type:       KeyTypeString,
		Desc:       "Display name",
		DefaultStr: "",
		get:        func(cfg *Config) string { return cfg.User.Name },
		set:        func(cfg *Config, v string) error { cfg.User.Name = v; return nil },
		unset:      func(cfg *Config) { cfg.User.Name = "" },
	},
	"diary.default_category": {
		Type:       KeyTypeString,
		Desc:       "Category given to new plans without --category",
		DefaultStr: "general",
		get:        func(cfg *Config) string { return cfg.Diary.DefaultCategory },
		set:        func(cfg *Config, v string) error { cfg.Diary.DefaultCategory = v; return nil },
		unset:      func(cfg *Config) { cfg.Diary.DefaultCategory = "general" },
	},
	"diary.calendar_view": {
		Type:       KeyTypeString,
		Desc:       "Default `fit calendar` view (week, month)",
		DefaultStr: ViewWeek,
		get:        func(cfg *Config) string { return cfg.Diary.CalendarView },
		set: func(cfg *Config, v string) error {
			v = strings.ToLower(strings.TrimSpace(v))
			if v != ViewWeek && v != ViewMonth {
				return fmt.Errorf("invalid calendar view %q (use %s or %s)", v, ViewWeek, ViewMonth)
			}
			cfg.Diary.CalendarView = v
			return nil
		},
		unset: func(cfg *Config) { cfg.Diary.CalendarView = ViewWeek },
	},
	"diary.default_minutes": {
		Type:       KeyTypeInt,
		Desc:       "Minutes recorded by `fit check` when --minutes is omitted",
		DefaultStr: "0",
		get:        func(cfg *Config) string { return strconv.Itoa(cfg.Diary.DefaultMinutes) },
		set: func(cfg *Config, v string) error {
			n, err := parseNonNegativeInt(v)
			if err != nil {
				return fmt.Errorf("invalid value %q for diary.default_minutes: %w", v, err)
			}
			cfg.Diary.DefaultMinutes = n
			return nil
		},
		unset: func(cfg *Config) { cfg.Diary.DefaultMinutes = 0 },
	},
	"diary.hints": {
		Type:       KeyTypeBool,
		Desc:       "Show tips after commands",
		DefaultStr: "true",
		get:        func(cfg *Config) string { return fmt.Sprintf("%t", cfg.Diary.HintsEnabled()) },
		set: func(cfg *Config, v string) error {
			b, err := ParseBoolValue(v)
			if err != nil {
				return fmt.Errorf("invalid value %q for diary.hints: %w", v, err)
			}
			cfg.Diary.Hints = BoolPtr(b)
			return nil
		},
		unset: func(cfg *Config) { cfg.Diary.Hints = BoolPtr(true) },
	},
	"log.level": {
		Type:       KeyTypeString,
		Desc:       "Diagnostic log level (debug, info, warn, error)",
		DefaultStr: DefaultLogLevel,
		get:        func(cfg *Config) string { return cfg.Log.Level },
		set: func(cfg *Config, v string) error {
			v = strings.ToLower(strings.TrimSpace(v))
			switch v {
			case "debug", "info", "warn", "warning", "error":
				cfg.Log.Level = v
				return nil
			}
			return fmt.Errorf("invalid log level %q (use debug, info, warn, error)", v)
		},
		unset: func(cfg *Config) { cfg.Log.Level = DefaultLogLevel },
	},
	"log.max_size_mb": {
		Type:       KeyTypeInt,
		Desc:       "Rotate the log file after this many megabytes",
		DefaultStr: "5",
		get:        func(cfg *Config) string { return strconv.Itoa(cfg.Log.MaxSizeMB) },
		set: func(cfg *Config, v string) error {
			n, err := parseNonNegativeInt(v)
			if err != nil {
				return fmt.Errorf("invalid value %q for log.max_size_mb: %w", v, err)
			}
			cfg.Log.MaxSizeMB = n
			return nil
		},
		unset: func(cfg *Config) { cfg.Log.MaxSizeMB = 5 },
	},
	"backup.dir": {
		Type:       KeyTypeString,
		Desc:       "Directory for backups given as a bare file name",
		DefaultStr: "",
		get:        func(cfg *Config) string { return cfg.Backup.Dir },
		set:        func(cfg *Config, v string) error { cfg.Backup.Dir = v; return nil },
		unset:      func(cfg *Config) { cfg.Backup.Dir = "" },
	},
}

// ValidKeyNames returns the sorted list of all known config key names.
func ValidKeyNames() []string {
	names := make([]string, 0, len(SchemaKeys))
	for k := range SchemaKeys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LookupKey returns the KeyEntry for a known config key.
func LookupKey(key string) (*KeyEntry, bool) {
	entry, ok := SchemaKeys[key]
	return entry, ok
}

// ParseBoolValue accepts common boolean string representations.
// Valid truthy values: true, 1, yes, on.
// Valid falsy values: false, 0, no, off.
func ParseBoolValue(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean: %q (use one of: true/false, 1/0, yes/no, on/off)", s)
	}
}

func parseNonNegativeInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("not an integer")
	}
	if n < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	return n, nil
}
