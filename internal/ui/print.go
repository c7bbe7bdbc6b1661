package ui

import (
	"fmt"
	"os"
	"strings"
)

// Puts prints a line to stdout.
func Puts(s string) {
	fmt.Println(s)
}

// Putsf prints a formatted line to stdout.
func Putsf(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

// Warn prints a warning message.
func Warn(msg string) {
	fmt.Println(Warning.Render(IconWarn + msg))
}

// Err prints an error message to stderr.
func Err(msg string) {
	fmt.Fprintln(os.Stderr, Error.Bold(true).Render(IconError+msg))
}

// Ok prints a success message.
func Ok(msg string) {
	fmt.Println(Success.Render(IconOk + msg))
}

// Inf prints an info message.
func Inf(msg string) {
	fmt.Println(Info.Render("  " + msg))
}

// Header prints a section header.
func Header(s string) {
	fmt.Println()
	fmt.Println(Title.Render(s))
	fmt.Println(Muted.Render(strings.Repeat("─", len([]rune(s))+2)))
}

// Tip prints a hint line.
func Tip(msg string) {
	fmt.Println()
	fmt.Println(Muted.Render("  tip: " + msg))
}

// Kv prints a key-value pair, padded.
func Kv(key string, value string) {
	k := KeyStyle.Render(fmt.Sprintf("  %-12s", key))
	v := ValueStyle.Render(value)
	fmt.Printf("%s %s\n", k, v)
}

// Greet returns the dashboard greeting.
func Greet(name string) string {
	if name == "" {
		return IconFit + "Let's move!"
	}
	return fmt.Sprintf("%sLet's move, %s!", IconFit, name)
}

// StreakLine renders a streak count, e.g. "🔥 5 days".
func StreakLine(n int) string {
	switch n {
	case 0:
		return Muted.Render("no streak yet")
	case 1:
		return Accent.Render(IconFire + " 1 day")
	}
	return Accent.Render(fmt.Sprintf("%s %d days", IconFire, n))
}

// Duration renders seconds as "45m" or "1h05m"; zero renders "".
func Duration(sec int) string {
	if sec <= 0 {
		return ""
	}
	m := (sec + 59) / 60
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%02dm", m/60, m%60)
}
