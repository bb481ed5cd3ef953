package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type actionDoneMsg struct {
	err error
}

type actionSpinnerModel struct {
	spinner spinner.Model
	label   string
	action  tea.Cmd
	err     error
	done    bool
}

func newActionSpinnerModel(label string, action tea.Cmd) actionSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return actionSpinnerModel{
		spinner: s,
		label:   label,
		action:  action,
	}
}

func (m actionSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.action)
}

func (m actionSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case actionDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m actionSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// runWithSpinner shows a spinner while one session action is in flight.
func runWithSpinner(ctx context.Context, output io.Writer, label string, action func(context.Context) error) error {
	actionCmd := func() tea.Msg {
		return actionDoneMsg{err: action(ctx)}
	}

	p := tea.NewProgram(
		newActionSpinnerModel(label, actionCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(actionSpinnerModel); ok {
		return m.err
	}
	return nil
}
