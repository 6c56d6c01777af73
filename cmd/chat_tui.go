package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	licenserender "github.com/dlyog/dl-creator-cli/internal/adapters/render/license"
	"github.com/dlyog/dl-creator-cli/internal/application"
	"github.com/dlyog/dl-creator-cli/internal/domain"
)

const resetCommand = "/reset"

type chatAppendedMsg struct{}

type chatSubmittedMsg struct {
	err error
}

type chatModel struct {
	ctx        context.Context
	pipeline   *application.AssistantPipeline
	input      textinput.Model
	spinner    spinner.Model
	suggestion int
	notice     string
}

func newChatModel(ctx context.Context, pipeline *application.AssistantPipeline) chatModel {
	input := textinput.New()
	input.Placeholder = "Type your message..."
	input.Prompt = "> "
	input.Focus()

	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return chatModel{
		ctx:        ctx,
		pipeline:   pipeline,
		input:      input,
		spinner:    s,
		suggestion: -1,
	}
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			m.suggestion = (m.suggestion + 1) % len(domain.AssistantSuggestions)
			text := domain.AssistantSuggestions[m.suggestion].Text
			m.pipeline.SetInput(text)
			m.input.SetValue(text)
			m.input.CursorEnd()
			return m, nil
		case tea.KeyEnter:
			return m.submit()
		}
	case chatAppendedMsg:
		return m, nil
	case chatSubmittedMsg:
		m.notice = ""
		if errors.Is(msg.err, domain.ErrAwaitingReply) {
			m.notice = "Waiting for the assistant to reply..."
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.pipeline.SetInput(m.input.Value())
	return m, cmd
}

func (m chatModel) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	if text == resetCommand {
		m.pipeline.Reset()
		m.input.Reset()
		m.suggestion = -1
		m.notice = ""
		return m, nil
	}

	if m.pipeline.Awaiting() {
		m.notice = "Waiting for the assistant to reply..."
		return m, nil
	}

	m.input.Reset()
	m.suggestion = -1
	pipeline := m.pipeline
	ctx := m.ctx
	return m, func() tea.Msg {
		return chatSubmittedMsg{err: pipeline.Submit(ctx, text)}
	}
}

func (m chatModel) View() string {
	var b strings.Builder
	b.WriteString(licenserender.RenderTranscript(m.pipeline.Transcript(), domain.AssistantSuggestions))
	b.WriteString("\n\n")
	if m.pipeline.Awaiting() {
		fmt.Fprintf(&b, "%s assistant is typing...\n", m.spinner.View())
	}
	if m.notice != "" {
		b.WriteString(m.notice + "\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Faint(true).Render("enter send · tab suggestion · /reset new chat · esc quit"))
	return b.String()
}

func runChatTUI(ctx context.Context, input io.Reader, output io.Writer, pipeline *application.AssistantPipeline) error {
	p := tea.NewProgram(
		newChatModel(ctx, pipeline),
		tea.WithInput(input),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	// Send blocks until the event loop reads it, and Reset runs on the event loop.
	pipeline.OnAppend(func(domain.Message) {
		go p.Send(chatAppendedMsg{})
	})

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run chat: %w", err)
	}
	return nil
}
