package tui

import (
	"fmt"
	"os"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/rnwolfe/fitdiary/internal/diary"
	"github.com/rnwolfe/fitdiary/internal/ui"
)

// IsTTY returns true when stdin is connected to a terminal.
func IsTTY() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// PlanPicker is a fuzzy-search plan selector. Plans match on name and category.
type PlanPicker struct {
	title    string
	plans    []diary.Plan
	filtered []scoredPlan
	query    []rune
	cursor   int
	offset   int
	chosen   *diary.Plan
	canceled bool
	height   int
}

type scoredPlan struct {
	plan  diary.Plan
	score int
}

// NewPlanPicker creates a picker over plans.
func NewPlanPicker(title string, plans []diary.Plan) *PlanPicker {
	p := &PlanPicker{title: title, plans: plans, height: 24}
	p.applyFilter()
	return p
}

// PickPlan shows a picker and returns the chosen plan, or nil if canceled.
func PickPlan(title string, plans []diary.Plan) (*diary.Plan, error) {
	prog := tea.NewProgram(NewPlanPicker(title, plans), tea.WithAltScreen())
	m, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("picker: %w", err)
	}
	result := m.(*PlanPicker)
	if result.canceled {
		return nil, nil
	}
	return result.chosen, nil
}

func (p *PlanPicker) Init() tea.Cmd {
	return nil
}

func (p *PlanPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			p.canceled = true
			return p, tea.Quit
		case tea.KeyEnter:
			if len(p.filtered) > 0 {
				chosen := p.filtered[p.cursor].plan
				p.chosen = &chosen
			}
			return p, tea.Quit
		case tea.KeyUp, tea.KeyCtrlP:
			if p.cursor > 0 {
				p.cursor--
				if p.cursor < p.offset {
					p.offset = p.cursor
				}
			}
		case tea.KeyDown, tea.KeyCtrlN:
			if p.cursor < len(p.filtered)-1 {
				p.cursor++
				if vis := p.visible(); p.cursor >= p.offset+vis {
					p.offset = p.cursor - vis + 1
				}
			}
		case tea.KeyBackspace:
			if len(p.query) > 0 {
				p.query = p.query[:len(p.query)-1]
				p.applyFilter()
			}
		case tea.KeyRunes, tea.KeySpace:
			p.query = append(p.query, msg.Runes...)
			p.applyFilter()
		}
	}
	return p, nil
}

func (p *PlanPicker) View() string {
	var b strings.Builder
	if p.title != "" {
		b.WriteString("  " + ui.Title.Render(p.title) + "\n\n")
	}
	prompt := lipgloss.NewStyle().Foreground(ui.Ember).Bold(true).Render("> ")
	b.WriteString("  " + prompt + string(p.query) + ui.Muted.Render("▎") + "\n\n")

	if len(p.filtered) == 0 {
		b.WriteString("  " + ui.Muted.Render("No matching plans") + "\n")
	}
	end := min(p.offset+p.visible(), len(p.filtered))
	for i := p.offset; i < end; i++ {
		b.WriteString(renderPickRow(p.filtered[i].plan, i == p.cursor) + "\n")
	}

	b.WriteString("\n" + ui.Muted.Render(fmt.Sprintf("  %d/%d · ↑↓ navigate · enter select · esc cancel", len(p.filtered), len(p.plans))) + "\n")
	return b.String()
}

func renderPickRow(plan diary.Plan, selected bool) string {
	pointer := "  "
	name := plan.Name
	if selected {
		pointer = ui.Accent.Render(ui.IconArrow + " ")
		name = ui.Accent.Render(name)
	}
	desc := plan.Schedule.Label()
	if plan.Category != "" {
		desc = plan.Category + " · " + desc
	}
	return fmt.Sprintf("  %s%s %s  %s", pointer, ui.Muted.Render(fmt.Sprintf("#%d", plan.ID)), name, ui.Muted.Render(desc))
}

func (p *PlanPicker) visible() int {
	return max(p.height-7, 3)
}

func (p *PlanPicker) applyFilter() {
	p.filtered = p.filtered[:0]
	q := string(p.query)
	for _, plan := range p.plans {
		ok, score := FuzzyMatch(q, plan.Name)
		if cok, cscore := FuzzyMatch(q, plan.Category); q != "" && cok && cscore > score {
			ok, score = true, cscore
		}
		if ok {
			p.filtered = append(p.filtered, scoredPlan{plan: plan, score: score})
		}
	}
	sort.SliceStable(p.filtered, func(i, j int) bool { return p.filtered[i].score > p.filtered[j].score })
	p.cursor = 0
	p.offset = 0
}
