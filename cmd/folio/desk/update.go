package desk

import (
	"errors"
	"time"

	"termfolio/internal/ai"
	"termfolio/internal/logging"
	"termfolio/internal/terminal"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Layout rows outside the scrollback: icon row, taskbar, window border,
// window title and input line.
const chromeRows = 3 + 1 + 2 + 1 + 1

// Update handles input and timer messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil

	case tickMsg:
		m.now = time.Time(msg)
		return m, tick()

	case mailMsg:
		return m.openMail(msg.mail), nil

	case aiReplyMsg:
		m.waiting = false
		m.lines = append(m.lines, m.renderReply(msg.reply, msg.err))
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.session.Close()
			return m, tea.Quit
		}
		if m.visible {
			return m.updateTerminal(msg)
		}
		return m.updateDesktop(msg)
	}
	return m, nil
}

func (m Model) updateTerminal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if m.waiting {
			return m, nil
		}
		line := m.input.Value()
		m.input.Reset()
		return m.submit(line)

	case tea.KeyUp:
		m.input.SetValue(m.session.Recall(terminal.Older))
		m.input.CursorEnd()
		return m, nil

	case tea.KeyDown:
		m.input.SetValue(m.session.Recall(terminal.Newer))
		m.input.CursorEnd()
		return m, nil

	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyEsc:
		return m.closeWindow(), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateDesktop(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h", "shift+tab":
		m.selected = (m.selected + len(Icons) - 1) % len(Icons)
	case "right", "l", "tab":
		m.selected = (m.selected + 1) % len(Icons)
	case "enter", " ":
		return m.activate(Icons[m.selected])
	case "q":
		m.session.Close()
		return m, tea.Quit
	}
	return m, nil
}

// activate runs an icon's command. Every icon but the terminal toggle also
// brings the window up to show the output.
func (m Model) activate(icon Icon) (tea.Model, tea.Cmd) {
	logging.UIDebug("icon %s", icon.Label)
	next, cmd := m.submit(icon.Command)
	if icon.Command != "terminal" {
		next.visible = true
	}
	return next, cmd
}

func (m Model) resize(width, height int) Model {
	if width <= 0 || height <= 0 {
		return m
	}
	m.width, m.height = width, height

	inner := max(width-4, 10)
	m.viewport.Width = inner
	m.viewport.Height = max(height-chromeRows, 3)
	m.input.Width = max(inner-len(m.input.Prompt)-1, 10)
	m.renderer = newRenderer(m.styles.Theme.IsDark, inner-2)
	m.refresh()
	return m
}

func (m Model) renderReply(reply string, err error) string {
	switch {
	case errors.Is(err, ai.ErrNoBackend):
		return m.styles.Notice.Render("Note: AI integration requires backend setup.")
	case err != nil:
		logging.UIError("ai reply failed: %v", err)
		return m.styles.Error.Render("AI error: " + err.Error())
	}
	return m.styles.AIReply.Render(m.safeRenderMarkdown(reply))
}
