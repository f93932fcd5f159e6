// Package progress renders the pipeline's ten stages as a live
// checklist while a layout runs. Grounded on matzehuels-stacktower's
// internal/cli/tui.go: a bubbletea Model with Init/Update/View and
// lipgloss styles for selected/dim text, adapted from an interactive
// list picker into a non-interactive progress display driven by
// messages sent from outside the program via Program.Send.
package progress

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	styleDone    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")) // green
	stylePending = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleCurrent = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")) // cyan
)

// StageDoneMsg reports that the named stage finished.
type StageDoneMsg struct{ Name string }

// DoneMsg reports that every stage finished and the program should exit.
type DoneMsg struct{}

// Model tracks which of a fixed, ordered list of stages have completed.
type Model struct {
	stages    []string
	completed map[string]bool
	start     time.Time
}

// NewModel builds a Model tracking stages in the given order.
func NewModel(stages []string) Model {
	return Model{
		stages:    stages,
		completed: make(map[string]bool, len(stages)),
		start:     time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StageDoneMsg:
		m.completed[msg.Name] = true
		return m, nil
	case DoneMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	firstPending := true
	for _, s := range m.stages {
		switch {
		case m.completed[s]:
			fmt.Fprintf(&b, "%s %s\n", styleDone.Render("done"), s)
		case firstPending:
			firstPending = false
			fmt.Fprintf(&b, "%s %s\n", styleCurrent.Render("running"), s)
		default:
			fmt.Fprintf(&b, "%s %s\n", stylePending.Render("pending"), s)
		}
	}
	return b.String()
}

// Stages lists the pipeline's stage names in run order, matching
// pipeline.go's Run.
var Stages = []string{
	"build", "acyclic", "rank", "normalize", "order",
	"position", "denormalize", "fixup", "unacyclic", "emit",
}

// RunWithProgress starts a bubbletea program rendering Stages, runs
// work in the background feeding it stage names as they complete, and
// returns once work finishes.
func RunWithProgress(work func(onStage func(stage string)) error) error {
	p := tea.NewProgram(NewModel(Stages))

	errCh := make(chan error, 1)
	go func() {
		errCh <- work(func(stage string) {
			p.Send(StageDoneMsg{Name: stage})
		})
		p.Send(DoneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		return err
	}
	return <-errCh
}
