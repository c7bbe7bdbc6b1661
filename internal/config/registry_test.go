package config

import (
	"sort"
	"testing"
)

func TestValidKeyNames_NonEmpty(t *testing.T) {
	names := ValidKeyNames()
	if len(names) == 0 {
		t.Fatal("expected non-empty key list")
	}
}

func TestValidKeyNames_Sorted(t *testing.T) {
	names := ValidKeyNames()
	if !sort.StringsAreSorted(names) {
		t.Fatalf("expected sorted key names, got %v", names)
	}
}

func TestValidKeyNames_ContainsKnownKeys(t *testing.T) {
	expected := []string{"user.name", "diary.calendar_view", "diary.default_minutes", "log.level", "backup.dir"}
	names := ValidKeyNames()
	nameSet := make(map[string]bool, len(names))
	for _, n := range names {
		nameSet[n] = true
	}
	for _, want := range expected {
		if !nameSet[want] {
			t.Errorf("ValidKeyNames missing expected key %q", want)
		}
	}
}

func TestLookupKey_Known(t *testing.T) {
	entry, ok := LookupKey("user.name")
	if !ok {
		t.Fatal("expected user.name to be found")
	}
	if entry.Type != KeyTypeString {
		t.Fatalf("expected string type for user.name, got %q", entry.Type)
	}
}

func TestLookupKey_Unknown(t *testing.T) {
	_, ok := LookupKey("not.a.real.key")
	if ok {
		t.Fatal("expected unknown key to return false")
	}
}

func TestParseBoolValue_TrueVariants(t *testing.T) {
	for _, v := range []string{"true", "1", "yes", "on", "TRUE", "YES", "On"} {
		b, err := ParseBoolValue(v)
		if err != nil {
			t.Errorf("ParseBoolValue(%q): unexpected error: %v", v, err)
		}
		if !b {
			t.Errorf("ParseBoolValue(%q): expected true", v)
		}
	}
}

func TestParseBoolValue_Invalid(t *testing.T) {
	for _, v := range []string{"maybe", "yep", "", "2"} {
		if _, err := ParseBoolValue(v); err == nil {
			t.Errorf("ParseBoolValue(%q): expected error for invalid bool", v)
		}
	}
}

func TestSetGetUnset_StringKey(t *testing.T) {
	cfg := &Config{}
	entry, ok := LookupKey("user.name")
	if !ok {
		t.Fatal("user.name not found in registry")
	}

	if err := entry.Set(cfg, "Alice"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := entry.Get(cfg); got != "Alice" {
		t.Fatalf("Get: expected 'Alice', got %q", got)
	}

	entry.Unset(cfg)
	if got := entry.Get(cfg); got != "" {
		t.Fatalf("Unset: expected '', got %q", got)
	}
}

func TestSetGetUnset_BoolKey(t *testing.T) {
	cfg := defaultConfig()
	entry, ok := LookupKey("diary.hints")
	if !ok {
		t.Fatal("diary.hints not found in registry")
	}

	if err := entry.Set(cfg, "off"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := entry.Get(cfg); got != "false" {
		t.Fatalf("Get: expected 'false', got %q", got)
	}

	entry.Unset(cfg)
	if got := entry.Get(cfg); got != "true" {
		t.Fatalf("Unset: expected 'true', got %q", got)
	}
}

func TestSet_CalendarViewValidated(t *testing.T) {
	cfg := defaultConfig()
	entry, _ := LookupKey("diary.calendar_view")

	if err := entry.Set(cfg, "Month"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if cfg.Diary.CalendarView != ViewMonth {
		t.Fatalf("CalendarView = %q, want %q", cfg.Diary.CalendarView, ViewMonth)
	}
	if err := entry.Set(cfg, "year"); err == nil {
		t.Fatal("expected error for unknown view")
	}
}

func TestSet_IntKey(t *testing.T) {
	cfg := defaultConfig()
	entry, _ := LookupKey("diary.default_minutes")

	if err := entry.Set(cfg, " 45 "); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if cfg.Diary.DefaultMinutes != 45 {
		t.Fatalf("DefaultMinutes = %d, want 45", cfg.Diary.DefaultMinutes)
	}
	for _, bad := range []string{"-1", "ten", ""} {
		if err := entry.Set(cfg, bad); err == nil {
			t.Errorf("Set(%q): expected error", bad)
		}
	}
}

func TestSet_LogLevel(t *testing.T) {
	cfg := defaultConfig()
	entry, _ := LookupKey("log.level")

	if err := entry.Set(cfg, "DEBUG"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("Level = %q, want debug", cfg.Log.Level)
	}
	if err := entry.Set(cfg, "loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestAllSchemaKeys_GetSetUnsetDoNotPanic(t *testing.T) {
	cfg := defaultConfig()
	for key, entry := range SchemaKeys {
		_ = entry.Get(cfg)
		entry.Unset(cfg)
		_ = entry.Get(cfg)

		if err := entry.Set(cfg, entry.DefaultStr); err != nil {
			t.Errorf("key %q: Set with default value %q failed: %v", key, entry.DefaultStr, err)
		}
	}
}

func TestAllSchemaKeys_HaveDesc(t *testing.T) {
	for key, entry := range SchemaKeys {
		if entry.Desc == "" {
			t.Errorf("key %q has no description", key)
		}
	}
}
