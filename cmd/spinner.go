package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dlyog/dl-creator-cli/internal/application"
	"github.com/dlyog/dl-creator-cli/internal/domain"
)

type settledMsg[T any] struct {
	value T
	err   error
}

// pendingModel animates label until its task settles, then quits and keeps
// the task's result.
type pendingModel[T any] struct {
	spinner spinner.Model
	label   string
	task    tea.Cmd
	result  settledMsg[T]
	settled bool
}

func newPendingModel[T any](label string, task tea.Cmd) pendingModel[T] {
	return pendingModel[T]{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
		),
		label: label,
		task:  task,
	}
}

func (m pendingModel[T]) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.task)
}

func (m pendingModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settledMsg[T]:
		m.result = msg
		m.settled = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m pendingModel[T]) View() string {
	if m.settled {
		return ""
	}
	return m.spinner.View() + " " + m.label
}

// runPending runs task while a spinner with label plays on output.
func runPending[T any](ctx context.Context, output io.Writer, label string, task func(context.Context) (T, error)) (T, error) {
	var zero T

	program := tea.NewProgram(
		newPendingModel[T](label, func() tea.Msg {
			value, err := task(ctx)
			return settledMsg[T]{value: value, err: err}
		}),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	final, err := program.Run()
	if err != nil {
		return zero, fmt.Errorf("run spinner: %w", err)
	}

	model, ok := final.(pendingModel[T])
	if !ok {
		return zero, fmt.Errorf("unexpected final spinner model type %T", final)
	}
	return model.result.value, model.result.err
}

// mountWithSpinner mounts licensePage while showing the checking message.
func mountWithSpinner(ctx context.Context, output io.Writer, licensePage *application.LicensePage) (domain.LicenseStatus, error) {
	return runPending(ctx, output, application.MessageCheckingLicense, func(ctx context.Context) (domain.LicenseStatus, error) {
		return licensePage.Mount(ctx), nil
	})
}
