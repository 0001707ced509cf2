package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ChecklistStatus is the outcome class of one checklist item.
type ChecklistStatus int

const (
	ChecklistPass ChecklistStatus = iota
	ChecklistWarn
	ChecklistFail
)

// ChecklistItem is one unit of work rendered as a line in the checklist.
type ChecklistItem struct {
	Name string
	Run  func() ChecklistResult
}

// ChecklistResult is what an item's Run reports back.
type ChecklistResult struct {
	Status     ChecklistStatus
	Message    string
	Suggestion string
}

// checklistFrames matches the component spinner used elsewhere in the CLI.
var checklistFrames = spinner.Spinner{
	Frames: []string{"◐", "◓", "◑", "◒"},
	FPS:    time.Second / 10,
}

// checkDoneMsg carries a finished item's result back into the model.
type checkDoneMsg struct {
	index  int
	result ChecklistResult
}

// ChecklistModel is a Bubble Tea model that runs items one at a time,
// animating the in-progress line and pinning finished lines in place.
type ChecklistModel struct {
	spinner spinner.Model
	items   []ChecklistItem
	results []*ChecklistResult
	current int
	done    bool
}

// NewChecklistModel creates a checklist over the given items.
func NewChecklistModel(items []ChecklistItem) ChecklistModel {
	sp := spinner.New()
	sp.Spinner = checklistFrames
	sp.Style = lipgloss.NewStyle().Foreground(ColorInfo)

	return ChecklistModel{
		spinner: sp,
		items:   items,
		results: make([]*ChecklistResult, len(items)),
	}
}

// Init starts the spinner tick and the first item.
func (m ChecklistModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runItem(0))
}

// runItem returns a command executing the item at index.
func (m ChecklistModel) runItem(index int) tea.Cmd {
	if index >= len(m.items) {
		return tea.Quit
	}
	item := m.items[index]
	return func() tea.Msg {
		return checkDoneMsg{index: index, result: item.Run()}
	}
}

// Update handles spinner ticks, completed items, and interruption.
func (m ChecklistModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case checkDoneMsg:
		result := msg.result
		m.results[msg.index] = &result
		m.current = msg.index + 1
		if m.current >= len(m.items) {
			m.done = true
			return m, tea.Quit
		}
		return m, m.runItem(m.current)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders one line per item.
func (m ChecklistModel) View() string {
	var b strings.Builder

	for i, item := range m.items {
		switch {
		case m.results[i] != nil:
			b.WriteString(renderChecklistLine(*m.results[i]))
		case i == m.current && !m.done:
			b.WriteString(fmt.Sprintf("%s %s\n", m.spinner.View(), item.Name))
		default:
			pending := lipgloss.NewStyle().Foreground(ColorMuted)
			b.WriteString(fmt.Sprintf("%s %s\n", pending.Render(SymbolPending), item.Name))
		}
	}

	return b.String()
}

// Results returns the collected results; entries are nil for items that
// never ran (interrupted).
func (m ChecklistModel) Results() []*ChecklistResult {
	return m.results
}

// renderChecklistLine renders a finished item with its status symbol.
func renderChecklistLine(r ChecklistResult) string {
	var symbol string
	var color lipgloss.Color

	switch r.Status {
	case ChecklistPass:
		symbol, color = SymbolSuccess, ColorSuccess
	case ChecklistWarn:
		symbol, color = SymbolWarning, ColorWarning
	default:
		symbol, color = SymbolFail, ColorError
	}

	style := lipgloss.NewStyle().Foreground(color)
	line := fmt.Sprintf("%s %s\n", style.Render(symbol), r.Message)

	if r.Suggestion != "" {
		muted := lipgloss.NewStyle().Foreground(ColorMuted)
		line += fmt.Sprintf("  %s\n", muted.Render(r.Suggestion))
	}
	return line
}

// RunChecklist executes the items inside a Bubble Tea program when stdout is
// a terminal, falling back to plain sequential output otherwise. Returns the
// results in item order.
func RunChecklist(items []ChecklistItem) ([]ChecklistResult, error) {
	if !IsTerminal() {
		return runChecklistPlain(items), nil
	}

	model := NewChecklistModel(items)
	program := tea.NewProgram(model)

	final, err := program.Run()
	if err != nil {
		// Terminal trouble; run the checks without the TUI.
		return runChecklistPlain(items), nil
	}

	m, ok := final.(ChecklistModel)
	if !ok {
		return runChecklistPlain(items), nil
	}

	var results []ChecklistResult
	for _, r := range m.Results() {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results, nil
}

// runChecklistPlain runs items sequentially, printing each line as it
// finishes.
func runChecklistPlain(items []ChecklistItem) []ChecklistResult {
	results := make([]ChecklistResult, 0, len(items))
	for _, item := range items {
		r := item.Run()
		fmt.Print(renderChecklistLine(r))
		results = append(results, r)
	}
	return results
}
