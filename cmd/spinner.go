package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type waitDoneMsg struct {
	err error
}

type waitSpinnerModel struct {
	spinner spinner.Model
	label   string
	wait    tea.Cmd
	failed  lipgloss.Style
	err     error
	done    bool
}

func newWaitSpinnerModel(label string, wait tea.Cmd) waitSpinnerModel {
	return waitSpinnerModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("39"))),
		),
		label:  label,
		wait:   wait,
		failed: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}

func (m waitSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.wait)
}

func (m waitSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case waitDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m waitSpinnerModel) View() string {
	switch {
	case m.done && m.err != nil:
		return m.failed.Render("x "+m.label) + "\n"
	case m.done:
		return ""
	default:
		return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
	}
}

// runWithSpinner shows label on output until wait returns and passes its
// error through.
func runWithSpinner(ctx context.Context, output io.Writer, label string, wait func(context.Context) error) error {
	p := tea.NewProgram(
		newWaitSpinnerModel(label, func() tea.Msg {
			return waitDoneMsg{err: wait(ctx)}
		}),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("run %q spinner: %w", label, err)
	}

	result, ok := finalModel.(waitSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
