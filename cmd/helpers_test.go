package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rnwolfe/fitdiary/internal/attendance"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// testEnv points every XDG dir at a temp dir and pins "now" to
// Thursday 2026-02-26 10:00 local time.
func testEnv(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir+"/config")
	t.Setenv("XDG_DATA_HOME", tmpDir+"/data")
	t.Setenv("XDG_CACHE_HOME", tmpDir+"/cache")
	t.Setenv("XDG_STATE_HOME", tmpDir+"/state")

	orig := now
	now = func() time.Time { return time.Date(2026, 2, 26, 10, 0, 0, 0, time.Local) }
	t.Cleanup(func() { now = orig })
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		done <- buf.String()
	}()

	defer func() {
		os.Stdout = old
	}()
	fn()
	w.Close()
	out := <-done
	r.Close()
	return out
}

// resetFlags restores every flag of cmd to its default and clears Changed.
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := f.Value.Set(f.DefValue); err != nil {
			t.Fatalf("reset --%s: %v", f.Name, err)
		}
		f.Changed = false
	})
}

func testDay(t *testing.T, s string) attendance.Day {
	t.Helper()
	d, err := attendance.ParseDay(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestParsePlanID(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"3", 3, false},
		{"#12", 12, false},
		{" 7 ", 7, false},
		{"0", 0, true},
		{"-2", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := parsePlanID(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parsePlanID(%q) = %d, %v; want %d, err=%v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestResolveDay(t *testing.T) {
	testEnv(t)

	tests := map[string]string{
		"":           "2026-02-26",
		"today":      "2026-02-26",
		"Yesterday":  "2026-02-25",
		"-3":         "2026-02-23",
		"2026-01-31": "2026-01-31",
	}
	for in, want := range tests {
		got, err := resolveDay(in)
		if err != nil {
			t.Errorf("resolveDay(%q): %v", in, err)
			continue
		}
		if got.String() != want {
			t.Errorf("resolveDay(%q) = %s, want %s", in, got, want)
		}
	}

	for _, bad := range []string{"tomorrowish", "2026-13-01", "-x"} {
		if _, err := resolveDay(bad); err == nil {
			t.Errorf("resolveDay(%q) should fail", bad)
		}
	}
}

func TestDayLabel(t *testing.T) {
	testEnv(t)

	tests := map[string]string{
		"2026-02-26": "today",
		"2026-02-25": "yesterday",
		"2026-02-27": "tomorrow",
		"2026-02-20": "Fri Feb 20",
	}
	for in, want := range tests {
		if got := dayLabel(testDay(t, in)); got != want {
			t.Errorf("dayLabel(%s) = %q, want %q", in, got, want)
		}
	}
}
