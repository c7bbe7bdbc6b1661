package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rnwolfe/fitdiary/internal/attendance"
	"github.com/rnwolfe/fitdiary/internal/diary"
	"github.com/rnwolfe/fitdiary/internal/ui"
)

// DashAction indicates what action triggered the dashboard exit.
type DashAction int

const (
	// DashActionQuit means the user pressed q or ctrl+c.
	DashActionQuit DashAction = iota
	// DashActionOpenCalendar means the user pressed c.
	DashActionOpenCalendar
)

// Diary is the slice of the diary store the dashboard needs.
type Diary interface {
	ListPlans(ctx context.Context) ([]diary.Plan, error)
	ListLogs(ctx context.Context) ([]diary.Log, error)
	CheckIn(planID int64, day attendance.Day, completed bool, durationSec int) error
}

// DashData holds everything the dashboard shows.
type DashData struct {
	Name   string
	Today  attendance.Day
	Due    []diary.Plan
	Done   map[int64]bool
	Streak int
	Week   []attendance.DayAttendance
	Plans  int
}

// DoneCount returns how many of today's due plans are complete.
func (d DashData) DoneCount() int {
	n := 0
	for _, p := range d.Due {
		if d.Done[p.ID] {
			n++
		}
	}
	return n
}

// LoadDash reads the diary once and derives today's dashboard.
func LoadDash(ctx context.Context, d Diary, name string, today attendance.Day) (DashData, error) {
	plans, err := d.ListPlans(ctx)
	if err != nil {
		return DashData{}, err
	}
	logs, err := d.ListLogs(ctx)
	if err != nil {
		return DashData{}, err
	}
	snap := attendance.Snapshot{
		Plans:   diary.TrainingPlans(plans),
		Records: diary.CompletionRecords(logs),
	}

	todayView := snap.Evaluate(today)
	data := DashData{
		Name:   name,
		Today:  today,
		Done:   make(map[int64]bool),
		Streak: snap.CurrentStreak(today),
		Week:   snap.DayAttendanceCalendar(attendance.WeekOf(today)),
		Plans:  len(plans),
	}
	for _, p := range plans {
		id := attendance.PlanID(p.ID)
		if !todayView.Due.Has(id) {
			continue
		}
		data.Due = append(data.Due, p)
		data.Done[p.ID] = todayView.Completed.Has(id)
	}
	sort.Slice(data.Due, func(i, j int) bool { return data.Due[i].ID < data.Due[j].ID })
	return data, nil
}

type dashDataMsg DashData
type dashErrMsg struct{ err error }

// DashModel is the Bubbletea model for the fit dashboard.
type DashModel struct {
	data    DashData
	diary   Diary
	name    string
	today   attendance.Day
	cursor  int
	width   int
	loading bool
	err     error
	action  DashAction
}

// NewDashModel creates a dashboard over d for the given day.
func NewDashModel(d Diary, name string, today attendance.Day) *DashModel {
	return &DashModel{
		diary:   d,
		name:    name,
		today:   today,
		width:   80,
		loading: true,
	}
}

// RunDash runs the dashboard TUI once and returns the exit action.
func RunDash(d Diary, name string, today attendance.Day) (DashAction, error) {
	prog := tea.NewProgram(NewDashModel(d, name, today), tea.WithAltScreen())
	result, err := prog.Run()
	if err != nil {
		return DashActionQuit, fmt.Errorf("dashboard: %w", err)
	}
	return result.(*DashModel).action, nil
}

func (m *DashModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *DashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case dashDataMsg:
		m.data = DashData(msg)
		m.loading = false
		m.err = nil
		if m.cursor >= len(m.data.Due) {
			m.cursor = max(0, len(m.data.Due)-1)
		}
		return m, nil

	case dashErrMsg:
		m.err = msg.err
		m.loading = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *DashModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.action = DashActionQuit
		return m, tea.Quit
	case "c":
		if !m.loading {
			m.action = DashActionOpenCalendar
			return m, tea.Quit
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.data.Due)-1 {
			m.cursor++
		}
	case " ", "enter", "x":
		if m.loading || len(m.data.Due) == 0 {
			return m, nil
		}
		p := m.data.Due[m.cursor]
		m.loading = true
		return m, m.toggle(p.ID, !m.data.Done[p.ID])
	case "r":
		m.loading = true
		return m, m.loadData()
	}
	return m, nil
}

func (m *DashModel) View() string {
	if m.err != nil {
		return "\n  " + ui.Error.Render("Error: "+m.err.Error()) + "\n"
	}
	if m.loading && m.data.Done == nil {
		return "\n  " + ui.Muted.Render("Loading…") + "\n"
	}
	body := RenderDash(m.data, m.cursor, m.width)
	help := ui.Muted.Render("  ↑↓ move · space check · c calendar · r refresh · q quit")
	return "\n" + body + "\n" + help + "\n"
}

// RenderDash draws the dashboard. cursor < 0 hides the selection pointer.
func RenderDash(d DashData, cursor, width int) string {
	var b strings.Builder

	greet := ui.Title.Render(ui.Greet(d.Name))
	streak := ui.StreakLine(d.Streak)
	gap := width - lipgloss.Width(greet) - lipgloss.Width(streak) - 4
	if gap < 2 {
		gap = 2
	}
	b.WriteString("  " + greet + strings.Repeat(" ", gap) + streak + "\n\n")

	b.WriteString(renderTodayPanel(d, cursor))
	b.WriteString("\n")
	b.WriteString(RenderWeek(d.Week, d.Today))
	return b.String()
}

func renderTodayPanel(d DashData, cursor int) string {
	var b strings.Builder
	heading := fmt.Sprintf("%s Today · %s", ui.IconPlan, d.Today.Time().Format("Mon Jan 2"))
	count := ""
	if len(d.Due) > 0 {
		count = ui.Muted.Render(fmt.Sprintf("  %d/%d done", d.DoneCount(), len(d.Due)))
	}
	b.WriteString("  " + ui.Subtitle.Render(heading) + count + "\n\n")

	switch {
	case d.Plans == 0:
		b.WriteString("  " + ui.Muted.Render("No plans yet. Add one with `fit plan add`.") + "\n")
	case len(d.Due) == 0:
		b.WriteString("  " + ui.Muted.Render(ui.IconRest+" Rest day. Nothing scheduled.") + "\n")
	default:
		for i, p := range d.Due {
			b.WriteString(renderDueRow(p, d.Done[p.ID], i == cursor) + "\n")
		}
	}
	return b.String()
}

func renderDueRow(p diary.Plan, done, selected bool) string {
	pointer := "  "
	if selected {
		pointer = ui.Accent.Render(ui.IconArrow + " ")
	}
	box := "[ ]"
	name := p.Name
	if done {
		box = ui.Success.Render("[✓]")
		name = ui.Muted.Render(name)
	}
	line := fmt.Sprintf("  %s%s %s %s", pointer, box, ui.Muted.Render(fmt.Sprintf("#%d", p.ID)), name)
	if t := p.Target(); t != "" {
		line += "  " + ui.Muted.Render(t)
	}
	if p.Category != "" {
		line += " " + ui.Tag.Render(p.Category)
	}
	return line
}

func (m *DashModel) loadData() tea.Cmd {
	d, name, today := m.diary, m.name, m.today
	return func() tea.Msg {
		data, err := LoadDash(context.Background(), d, name, today)
		if err != nil {
			return dashErrMsg{err}
		}
		return dashDataMsg(data)
	}
}

func (m *DashModel) toggle(planID int64, done bool) tea.Cmd {
	d, today := m.diary, m.today
	reload := m.loadData()
	return func() tea.Msg {
		if err := d.CheckIn(planID, today, done, 0); err != nil {
			return dashErrMsg{err}
		}
		return reload()
	}
}
