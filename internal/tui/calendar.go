package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rnwolfe/fitdiary/internal/attendance"
	"github.com/rnwolfe/fitdiary/internal/ui"
)

// CalendarSource evaluates attendance for a run of days.
// *attendance.Engine satisfies it.
type CalendarSource interface {
	DayAttendanceCalendar(ctx context.Context, days []attendance.Day) ([]attendance.DayAttendance, error)
}

type cellState int

const (
	cellRest cellState = iota
	cellDone
	cellPartial
	cellMissed
	cellPending
	cellFuture
)

var cellGlyph = map[cellState]string{
	cellRest:    "·",
	cellDone:    "✓",
	cellPartial: "~",
	cellMissed:  "✗",
	cellPending: "○",
	cellFuture:  " ",
}

func stateOf(a attendance.DayAttendance, today attendance.Day) cellState {
	switch {
	case len(a.Due) == 0:
		return cellRest
	case a.FullyAttended:
		return cellDone
	case a.Day > today:
		return cellFuture
	case a.Day == today:
		return cellPending
	}
	for id := range a.Due {
		if a.Completed.Has(id) {
			return cellPartial
		}
	}
	return cellMissed
}

func styleCell(s cellState, text string) string {
	switch s {
	case cellDone:
		return ui.Success.Render(text)
	case cellPartial, cellPending:
		return ui.Warning.Render(text)
	case cellMissed:
		return ui.Error.Render(text)
	}
	return ui.Muted.Render(text)
}

// cell renders one day as a fixed-width "dd✓" block; today is bracketed.
func cell(a attendance.DayAttendance, today attendance.Day) string {
	s := stateOf(a, today)
	text := fmt.Sprintf("%2d%s", a.Day.Time().Day(), cellGlyph[s])
	if a.Day == today {
		return "[" + styleCell(s, text) + "]"
	}
	return " " + styleCell(s, text) + " "
}

func weekdayHeader() string {
	var b strings.Builder
	for w := attendance.Monday; w <= attendance.Sunday; w++ {
		b.WriteString(fmt.Sprintf(" %-3s ", w.Short()))
	}
	return ui.Muted.Render(b.String())
}

func legend() string {
	return ui.Muted.Render("  ✓ done · ~ partial · ✗ missed · ○ today · · rest")
}

// RenderWeek draws a Monday..Sunday strip with done/due counts under each day.
func RenderWeek(days []attendance.DayAttendance, today attendance.Day) string {
	var b strings.Builder
	if len(days) > 0 {
		first, last := days[0].Day, days[len(days)-1].Day
		b.WriteString("  " + ui.Title.Render(fmt.Sprintf("%s Week of %s", ui.IconCalendar, first.Time().Format("Jan 2"))))
		b.WriteString(ui.Muted.Render(fmt.Sprintf(" – %s", last.Time().Format("Jan 2"))) + "\n\n")
	}
	b.WriteString("  " + weekdayHeader() + "\n")

	cells := make([]string, 0, len(days))
	counts := make([]string, 0, len(days))
	for _, a := range days {
		cells = append(cells, cell(a, today))
		count := "  - "
		if len(a.Due) > 0 {
			done := 0
			for id := range a.Due {
				if a.Completed.Has(id) {
					done++
				}
			}
			count = fmt.Sprintf("%-4s", fmt.Sprintf("%d/%d", done, len(a.Due)))
		}
		counts = append(counts, " "+ui.Muted.Render(count))
	}
	b.WriteString("  " + strings.Join(cells, "") + "\n")
	b.WriteString("  " + strings.Join(counts, "") + "\n\n")
	b.WriteString(legend() + "\n")
	return b.String()
}

// RenderMonth draws a month grid. days must be consecutive and start on
// the first of the month.
func RenderMonth(days []attendance.DayAttendance, today attendance.Day) string {
	var b strings.Builder
	if len(days) == 0 {
		return ""
	}
	first := days[0].Day
	b.WriteString("  " + ui.Title.Render(ui.IconCalendar+" "+first.Time().Format("January 2006")) + "\n\n")
	b.WriteString("  " + weekdayHeader() + "\n")

	row := strings.Repeat("     ", attendance.WeekdayIndex(first)-1)
	full := 0
	for _, a := range days {
		row += cell(a, today)
		if a.FullyAttended && len(a.Due) > 0 && a.Day <= today {
			full++
		}
		if attendance.WeekdayOf(a.Day) == attendance.Sunday {
			b.WriteString("  " + row + "\n")
			row = ""
		}
	}
	if row != "" {
		b.WriteString("  " + row + "\n")
	}
	b.WriteString("\n  " + ui.Muted.Render(fmt.Sprintf("%d fully attended training days", full)) + "\n")
	b.WriteString(legend() + "\n")
	return b.String()
}

type calendarMsg struct {
	anchor attendance.Day
	month  bool
	days   []attendance.DayAttendance
}

type calendarErrMsg struct{ err error }

// CalendarModel is the Bubbletea model for the attendance calendar.
type CalendarModel struct {
	src     CalendarSource
	today   attendance.Day
	anchor  attendance.Day
	month   bool
	days    []attendance.DayAttendance
	loading bool
	err     error
}

// NewCalendarModel creates a calendar anchored on the given day.
func NewCalendarModel(src CalendarSource, today, anchor attendance.Day, month bool) *CalendarModel {
	return &CalendarModel{
		src:     src,
		today:   today,
		anchor:  anchor,
		month:   month,
		loading: true,
	}
}

// RunCalendar runs the interactive calendar until the user quits.
func RunCalendar(src CalendarSource, today, anchor attendance.Day, month bool) error {
	prog := tea.NewProgram(NewCalendarModel(src, today, anchor, month), tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("calendar: %w", err)
	}
	return nil
}

func (m *CalendarModel) Init() tea.Cmd {
	return m.load()
}

func (m *CalendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case calendarMsg:
		// Drop results for a page the user already moved away from.
		if msg.anchor != m.anchor || msg.month != m.month {
			return m, nil
		}
		m.days = msg.days
		m.loading = false
		m.err = nil
		return m, nil

	case calendarErrMsg:
		m.err = msg.err
		m.loading = false
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			m.anchor = m.step(-1)
			return m, m.reload()
		case "right", "l":
			m.anchor = m.step(1)
			return m, m.reload()
		case "m":
			m.month = !m.month
			return m, m.reload()
		case "t":
			m.anchor = m.today
			return m, m.reload()
		case "r":
			return m, m.reload()
		}
	}
	return m, nil
}

func (m *CalendarModel) View() string {
	if m.err != nil {
		return "\n  " + ui.Error.Render("Error: "+m.err.Error()) + "\n"
	}
	if m.loading && m.days == nil {
		return "\n  " + ui.Muted.Render("Loading…") + "\n"
	}
	var body string
	if m.month {
		body = RenderMonth(m.days, m.today)
	} else {
		body = RenderWeek(m.days, m.today)
	}
	toggle := "month"
	if m.month {
		toggle = "week"
	}
	help := "←/→ move · m " + toggle + " · t today · q quit"
	return "\n" + lipgloss.JoinVertical(lipgloss.Left, body, ui.Muted.Render("  "+help)) + "\n"
}

func (m *CalendarModel) step(dir int) attendance.Day {
	if !m.month {
		return m.anchor.AddDays(7 * dir)
	}
	t := m.anchor.Time()
	// Day 1 avoids overflow from e.g. Jan 31 + 1 month.
	return attendance.DayOf(t.AddDate(0, dir, 1-t.Day()))
}

func (m *CalendarModel) reload() tea.Cmd {
	m.loading = true
	return m.load()
}

func (m *CalendarModel) load() tea.Cmd {
	anchor, month, src := m.anchor, m.month, m.src
	return func() tea.Msg {
		days := attendance.WeekOf(anchor)
		if month {
			days = attendance.MonthOf(anchor)
		}
		cal, err := src.DayAttendanceCalendar(context.Background(), days)
		if err != nil {
			return calendarErrMsg{err}
		}
		return calendarMsg{anchor: anchor, month: month, days: cal}
	}
}
