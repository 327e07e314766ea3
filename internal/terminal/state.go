// Package terminal implements the portfolio's command interpreter and the
// per-session state it operates on.
//
// The interpreter is a pure function of (line, State) over an immutable
// vfs.Filesystem: it returns the blocks to display, the side effects the
// caller must carry out (clear, toggle, mail, chat), and the next State.
// Session wraps a State with exclusive ownership for callers that want a
// stateful object instead.
package terminal

// Mode is the interpretation context applied to the next input line.
type Mode int

const (
	ModeNormal Mode = iota
	ModeAiChat
	ModeInterview
	ModeHire
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeAiChat:
		return "ai-chat"
	case ModeInterview:
		return "interview"
	case ModeHire:
		return "hire"
	default:
		return "unknown"
	}
}

// HireStage is the step of the hire wizard. Only meaningful in ModeHire.
type HireStage int

const (
	StageAwaitingName HireStage = iota + 1
	StageAwaitingOrganization
)

func (s HireStage) String() string {
	switch s {
	case StageAwaitingName:
		return "awaiting-name"
	case StageAwaitingOrganization:
		return "awaiting-organization"
	default:
		return ""
	}
}

// HireDraft collects the wizard answers.
type HireDraft struct {
	Name         string
	Organization string
}

// State is everything a session remembers between lines.
type State struct {
	CurrentPath string   // always a directory in the filesystem
	History     []string // submitted lines, most recent first
	Mode        Mode
	Stage       HireStage // set while Mode == ModeHire
	Draft       HireDraft
}

// NewState starts a session in the given home directory.
func NewState(home string) State {
	return State{CurrentPath: home, Mode: ModeNormal}
}

// InSession reports whether an AI chat or interview is active.
func (s State) InSession() bool {
	return s.Mode == ModeAiChat || s.Mode == ModeInterview
}

// pushHistory returns a copy of history with line in front, leaving the
// caller's slice untouched.
func pushHistory(history []string, line string) []string {
	out := make([]string, 0, len(history)+1)
	out = append(out, line)
	return append(out, history...)
}
