package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bnema/mystic-tarot-cli/internal/application"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type chatProgressMsg application.ChatProgress

type chatDoneMsg struct{}

type chatSpinnerModel struct {
	spinner  spinner.Model
	label    string
	progress application.ChatProgress
	done     bool
}

func newChatSpinnerModel(label string, remainingSeconds int) chatSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Moon),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("141"))),
	)

	return chatSpinnerModel{
		spinner:  s,
		label:    label,
		progress: application.ChatProgress{RemainingSeconds: remainingSeconds},
	}
}

func (m chatSpinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m chatSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case chatProgressMsg:
		m.progress = application.ChatProgress(msg)
		return m, nil
	case chatDoneMsg:
		m.done = true
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m chatSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s %s left", m.spinner.View(), m.label, formatClock(m.progress.RemainingSeconds))
}

func formatClock(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// runChatSpinner shows a spinner while meter runs. Leaving the program early
// (Ctrl+C) cancels the meter; the minutes recorded so far are kept.
func runChatSpinner(ctx context.Context, output io.Writer, remainingSeconds int, meter func(context.Context, func(application.ChatProgress)) application.ChatResult) (application.ChatResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(
		newChatSpinnerModel("Chatting with Madame Luna...", remainingSeconds),
		tea.WithInput(nil),
		tea.WithOutput(output),
	)

	results := make(chan application.ChatResult, 1)
	go func() {
		result := meter(ctx, func(progress application.ChatProgress) {
			p.Send(chatProgressMsg(progress))
		})
		results <- result
		p.Send(chatDoneMsg{})
	}()

	_, err := p.Run()
	cancel()
	result := <-results

	if err != nil && !errors.Is(err, tea.ErrInterrupted) && !errors.Is(err, tea.ErrProgramKilled) {
		return result, err
	}

	return result, nil
}
