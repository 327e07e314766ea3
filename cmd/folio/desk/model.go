// Package desk implements the full-screen folio interface: a desktop with
// icons and a taskbar clock, and a terminal window running a session.
package desk

import (
	"context"
	"time"

	"termfolio/cmd/folio/ui"
	"termfolio/internal/ai"
	"termfolio/internal/logging"
	"termfolio/internal/terminal"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// Icon is a desktop shortcut. Activating it submits Command like typed input.
type Icon struct {
	Label   string
	Command string
}

// Icons are the desktop shortcuts, left to right.
var Icons = []Icon{
	{Label: "About", Command: "about"},
	{Label: "Skills", Command: "skills"},
	{Label: "Projects", Command: "projects"},
	{Label: "Social", Command: "social"},
	{Label: "Terminal", Command: "terminal"},
}

const askTimeout = 60 * time.Second

// Options configures a Model.
type Options struct {
	Session      *terminal.Session
	Conversation *ai.Conversation // nil disables AI replies
	Styles       ui.Styles
	Clock        func() time.Time   // default time.Now
	CopyText     func(string) error // default clipboard.WriteAll
}

// Model is the bubbletea model for the desktop and its terminal window.
type Model struct {
	session  *terminal.Session
	conv     *ai.Conversation
	styles   ui.Styles
	renderer *glamour.TermRenderer

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	width, height int
	clock         func() time.Time
	now           time.Time
	copyText      func(string) error

	lines    []string // rendered scrollback
	visible  bool     // terminal window shown
	selected int      // focused desktop icon
	waiting  bool     // AI reply pending
	status   string   // taskbar message
}

type tickMsg time.Time

// mailMsg fires once a hire mail's delay has elapsed.
type mailMsg struct{ mail terminal.Mail }

type aiReplyMsg struct {
	reply string
	err   error
}

// New creates the model with the terminal window open.
func New(opts Options) Model {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.CopyText == nil {
		opts.CopyText = clipboard.WriteAll
	}

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 80
	ti.PromptStyle = opts.Styles.Prompt
	ti.TextStyle = opts.Styles.UserInput

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = opts.Styles.Spinner

	vp := viewport.New(80, 20)

	m := Model{
		session:  opts.Session,
		conv:     opts.Conversation,
		styles:   opts.Styles,
		renderer: newRenderer(opts.Styles.Theme.IsDark, 78),
		input:    ti,
		viewport: vp,
		spinner:  sp,
		clock:    opts.Clock,
		now:      opts.Clock(),
		copyText: opts.CopyText,
		visible:  true,
	}
	m.resetScrollback()
	return m
}

func newRenderer(dark bool, width int) *glamour.TermRenderer {
	style := "light"
	if dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		logging.UIError("markdown renderer unavailable: %v", err)
		return nil
	}
	return r
}

// Session returns the session the terminal window is attached to.
func (m Model) Session() *terminal.Session { return m.session }

// Init starts the cursor blink and the taskbar clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// resetScrollback shows only the welcome block.
func (m *Model) resetScrollback() {
	m.lines = []string{m.renderBlock(m.session.Welcome())}
	m.input.Prompt = m.session.Prompt() + " "
	m.refresh()
}

func (m *Model) refresh() {
	m.viewport.SetContent(joinLines(m.lines))
	m.viewport.GotoBottom()
}

// submit runs line through the session and applies the response.
func (m Model) submit(line string) (Model, tea.Cmd) {
	resp := m.session.Submit(line)
	logging.UIDebug("submitted %q -> %s (%d blocks)", line, resp.Command, len(resp.Blocks))

	if resp.Clear {
		m.lines = nil
	}
	for _, b := range resp.Blocks {
		m.lines = append(m.lines, m.renderBlock(b))
	}
	if resp.ToggleVisibility {
		m.visible = !m.visible
	}
	m.input.Prompt = m.session.Prompt() + " "
	m.refresh()

	var cmds []tea.Cmd
	if resp.Mail != nil {
		mail := *resp.Mail
		cmds = append(cmds, tea.Tick(mail.Delay, func(time.Time) tea.Msg { return mailMsg{mail: mail} }))
	}
	if resp.Ended != terminal.ModeNormal && m.conv != nil {
		m.conv.Reset(trackFor(resp.Ended))
	}
	if resp.Chat != nil && m.conv != nil {
		m.waiting = true
		cmds = append(cmds, m.spinner.Tick, m.ask(*resp.Chat))
	}
	return m, tea.Batch(cmds...)
}

// ask sends a chat request to the conversation on its own goroutine.
func (m Model) ask(req terminal.ChatRequest) tea.Cmd {
	conv := m.conv
	track := trackFor(req.Mode)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
		defer cancel()
		reply, err := conv.Ask(ctx, track, req.Prompt)
		return aiReplyMsg{reply: reply, err: err}
	}
}

func trackFor(mode terminal.Mode) ai.Track {
	if mode == terminal.ModeInterview {
		return ai.TrackInterview
	}
	return ai.TrackChat
}

// closeWindow hides the terminal and starts it over in a fresh session.
func (m Model) closeWindow() Model {
	old := m.session
	m.session = terminal.NewSession(old.Interpreter())
	old.Close()
	m.visible = false
	m.waiting = false
	m.input.Reset()
	m.resetScrollback()
	return m
}

// openMail hands the mailto link to the clipboard.
func (m Model) openMail(mail terminal.Mail) Model {
	link := mail.URL()
	if err := m.copyText(link); err != nil {
		logging.UIError("clipboard: %v", err)
		m.status = "Mail draft: " + link
	} else {
		m.status = "Mail link copied to clipboard"
	}
	m.lines = append(m.lines, m.styles.Notice.Render("Open in your mail client: "+link))
	m.refresh()
	return m
}
