// Package ui provides the interactive terminal pieces of stencil. The only
// one is a spinner shown while an external generator runs: generator output
// goes to the log file, so the terminal needs a liveness signal.
package ui

import (
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// IsTTY reports whether stdout is an interactive terminal.
func IsTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// doneMsg signals that the wrapped task finished.
type doneMsg struct {
	err error
}

// spinnerModel renders a spinner next to a label until the task completes.
type spinnerModel struct {
	spinner spinner.Model
	label   string
	err     error
	done    bool
}

func newSpinnerModel(label string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	return spinnerModel{spinner: s, label: label}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.label
}

// RunWithSpinner executes task while showing a spinner with the given label.
// It returns the task's error. The task is not cancelled by the UI; callers
// pass cancellation through the task's own context.
func RunWithSpinner(label string, task func() error) error {
	p := tea.NewProgram(newSpinnerModel(label))

	go func() {
		p.Send(doneMsg{err: task()})
	}()

	final, err := p.Run()
	if err != nil {
		return err
	}
	return final.(spinnerModel).err
}
