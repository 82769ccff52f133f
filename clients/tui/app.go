// Package tui is the terminal chat client for SchemeNav.
// Architecture: GREETING | CHAT | INPUT. The conversation state machine
// lives in the conversation package; this layer only renders it and
// feeds it submissions.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/schemenav/schemenav/internal/conversation"
)

const inputHeight = 3

// App is the main TUI application model.
type App struct {
	controller *conversation.Controller

	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model
	markdown markdownRenderer

	width    int
	height   int
	ready    bool
	quitting bool
}

// NewApp creates the chat application around a conversation controller.
func NewApp(controller *conversation.Controller) *App {
	ta := textarea.New()
	ta.Placeholder = "Ask about a scheme..."
	ta.CharLimit = 2000
	ta.SetHeight(1)
	ta.ShowLineNumbers = false
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = mutedStyle

	return &App{
		controller: controller,
		input:      ta,
		spinner:    sp,
	}
}

// Run starts the chat program and blocks until it exits.
func Run(controller *conversation.Controller) error {
	_, err := tea.NewProgram(NewApp(controller), tea.WithAltScreen()).Run()
	return err
}

// Init initializes the application.
func (a *App) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages and updates state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		chatHeight := a.height - inputHeight - 4
		if chatHeight < 1 {
			chatHeight = 1
		}
		if !a.ready {
			a.viewport = viewport.New(a.width, chatHeight)
			a.ready = true
		} else {
			a.viewport.Width = a.width
			a.viewport.Height = chatHeight
		}
		a.input.SetWidth(a.width - 4)
		a.refreshChat()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			a.quitting = true
			return a, tea.Quit
		case "pgup", "pgdown":
			var cmd tea.Cmd
			a.viewport, cmd = a.viewport.Update(msg)
			return a, cmd
		case "enter":
			if cmd := a.submit(); cmd != nil {
				cmds = append(cmds, cmd)
			}
			return a, tea.Batch(cmds...)
		}

		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		cmds = append(cmds, cmd)

	case spinner.TickMsg:
		if a.controller.Awaiting() {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			a.refreshChat()
			cmds = append(cmds, cmd)
		}

	case exchangeResultMsg:
		a.controller.Resolve(msg.resp, msg.err)
		a.input.Focus()
		a.refreshChat()
		cmds = append(cmds, textarea.Blink)
	}

	return a, tea.Batch(cmds...)
}

// submit hands the input buffer to the controller. A rejected
// submission (blank input or an exchange in flight) leaves the buffer
// untouched.
func (a *App) submit() tea.Cmd {
	turn, ok := a.controller.Submit(a.input.Value())
	if !ok {
		return nil
	}

	a.input.Reset()
	a.input.Blur()
	a.refreshChat()

	exchange := func() tea.Msg {
		resp, err := a.controller.Exchange(context.Background(), turn)
		return exchangeResultMsg{resp: resp, err: err}
	}
	return tea.Batch(exchange, a.spinner.Tick)
}

func (a *App) refreshChat() {
	if !a.ready {
		return
	}
	a.viewport.SetContent(a.renderMessages())
	a.viewport.GotoBottom()
}

func (a *App) renderMessages() string {
	msgs := a.controller.Messages()
	if len(msgs) == 0 {
		return mutedStyle.Render("No messages yet. Type a question below and press enter.")
	}

	width := a.viewport.Width - 2
	var b strings.Builder
	for i, m := range msgs {
		if i > 0 {
			b.WriteString("\n")
		}
		switch {
		case m.Role == conversation.RoleUser:
			b.WriteString(userLabelStyle.Render("You") + "\n")
			b.WriteString(m.Content + "\n")
		case m.Pending:
			b.WriteString(assistantLabelStyle.Render("SchemeNav") + "\n")
			b.WriteString(a.spinner.View() + mutedStyle.Render(" thinking...") + "\n")
		default:
			b.WriteString(assistantLabelStyle.Render("SchemeNav") + "\n")
			b.WriteString(a.markdown.render(m.Content, width) + "\n")
		}
	}
	return b.String()
}

// View renders the application.
func (a *App) View() string {
	if a.quitting {
		return ""
	}
	if !a.ready {
		return "Loading..."
	}

	sections := []string{
		greetingStyle.Render(greeting(time.Now())),
		a.viewport.View(),
		inputBorderStyle.Width(a.width - 2).Render(a.input.View()),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// greeting returns the time-of-day greeting line.
func greeting(now time.Time) string {
	var part string
	switch h := now.Hour(); {
	case h < 12:
		part = "Good morning"
	case h < 17:
		part = "Good afternoon"
	default:
		part = "Good evening"
	}
	return fmt.Sprintf("%s! Ask me about Karnataka agriculture schemes.", part)
}
