package desk

import (
	"strings"

	"termfolio/internal/terminal"

	"github.com/charmbracelet/lipgloss"
)

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// safeRenderMarkdown renders markdown with panic recovery
func (m Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		rendered, err := m.renderer.Render(content)
		if err == nil {
			return strings.TrimRight(rendered, "\n")
		}
	}
	return content
}

// renderBlock styles one response block for the scrollback.
func (m Model) renderBlock(b terminal.Block) string {
	switch b.Kind {
	case terminal.BlockWelcome:
		return m.styles.Success.Render(b.Text)
	case terminal.BlockCommand:
		return m.styles.Echo.Render(b.Text)
	}

	var body string
	switch {
	case b.Markdown:
		body = m.safeRenderMarkdown(b.Text)
	case len(b.Entries) > 0:
		names := make([]string, 0, len(b.Entries))
		for _, e := range b.Entries {
			if e.IsDir {
				names = append(names, m.styles.Directory.Render(e.Name+"/"))
			} else {
				names = append(names, m.styles.Body.Render(e.Name))
			}
		}
		body = strings.Join(names, "  ")
	default:
		body = m.styles.Tone(b.Tone).Render(b.Text)
	}

	if b.Title == "" {
		return body
	}
	return m.styles.Heading.Render(b.Title) + "\n" + body
}

// View renders the desktop, the terminal window when shown, and the taskbar.
func (m Model) View() string {
	icons := m.renderIcons()

	var window string
	if m.visible {
		window = m.renderWindow()
	}

	desktop := lipgloss.JoinVertical(lipgloss.Left, icons, window)
	if m.height > 0 {
		desktop = lipgloss.PlaceVertical(m.height-1, lipgloss.Top, desktop)
	}
	return desktop + "\n" + m.renderTaskbar()
}

func (m Model) renderIcons() string {
	cells := make([]string, len(Icons))
	for i, icon := range Icons {
		style := m.styles.Icon
		if !m.visible && i == m.selected {
			style = m.styles.IconSelected
		}
		cells[i] = style.Render("[" + icon.Label + "]")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...) + "\n"
}

func (m Model) renderWindow() string {
	title := m.styles.WindowTitle.Render("terminal  (esc closes)")

	input := m.input.View()
	if m.waiting {
		input = m.spinner.View() + " " + m.styles.Muted.Render("thinking...")
	}

	body := lipgloss.JoinVertical(lipgloss.Left, title, m.viewport.View(), input)
	style := m.styles.Window
	if m.width > 0 {
		style = style.Width(m.width - 2)
	}
	return style.Render(body)
}

func (m Model) renderTaskbar() string {
	left := "folio"
	if m.status != "" {
		left += "  " + m.status
	}
	right := m.styles.Clock.Render(m.now.Format("15:04")) + "  " + m.now.Format("Jan 2, 2006")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return m.styles.Taskbar.Render(left + strings.Repeat(" ", gap) + right)
}
