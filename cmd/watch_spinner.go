package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/doctowatch/internal/application"
)

type watchDoneMsg struct {
	err error
}

type watchProgressMsg struct {
	note string
}

type watchSpinnerModel struct {
	spinner spinner.Model
	label   string
	watch   tea.Cmd
	err     error
	done    bool
}

func newWatchSpinnerModel(label string, watch tea.Cmd) watchSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return watchSpinnerModel{
		spinner: s,
		label:   label,
		watch:   watch,
	}
}

func (m watchSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.watch)
}

func (m watchSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case watchProgressMsg:
		m.label = msg.note
		return m, nil
	case watchDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m watchSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// runWatchSpinner keeps a spinner on screen while watch runs, updating the
// label with every progress note. The prompts all happen before polling
// starts, so the program can safely own the terminal.
func runWatchSpinner(ctx context.Context, output io.Writer, watch func(context.Context, application.ProgressFunc) error) error {
	var p *tea.Program

	watchCmd := func() tea.Msg {
		return watchDoneMsg{err: watch(ctx, func(note string) {
			p.Send(watchProgressMsg{note: note})
		})}
	}

	p = tea.NewProgram(
		newWatchSpinnerModel("Looking for open slots...", watchCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(watchSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
