package terminal

import (
	"net/url"
	"strings"
	"time"

	"termfolio/internal/vfs"
)

// BlockKind tags a display block.
type BlockKind int

const (
	BlockWelcome BlockKind = iota
	BlockCommand           // echo of the submitted line
	BlockOutput
)

func (k BlockKind) String() string {
	switch k {
	case BlockWelcome:
		return "welcome"
	case BlockCommand:
		return "command"
	default:
		return "output"
	}
}

// Tone hints how a block should be colored.
type Tone int

const (
	ToneDefault Tone = iota
	ToneError
	ToneSuccess
	ToneNotice
)

func (t Tone) String() string {
	switch t {
	case ToneError:
		return "error"
	case ToneSuccess:
		return "success"
	case ToneNotice:
		return "notice"
	default:
		return "default"
	}
}

// Block is one unit of terminal output. Text is always a complete plain-text
// rendering; Title, Entries and Markdown are hints for richer front ends.
type Block struct {
	Kind     BlockKind
	Tone     Tone
	Title    string      // heading shown above Text
	Text     string
	Entries  []vfs.Entry // directory listing behind an ls block
	Markdown bool        // Text is markdown (project files)
}

// Mail is a pre-filled message handed to the mail client.
type Mail struct {
	To      string
	Subject string
	Body    string
	Delay   time.Duration // how long the caller waits before opening it
}

// URL returns the mailto: link for m with subject and body percent-encoded.
func (m Mail) URL() string {
	return "mailto:" + m.To + "?subject=" + encodeComponent(m.Subject) + "&body=" + encodeComponent(m.Body)
}

// encodeComponent escapes s for a mailto query. Spaces become %20, not '+'.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// ChatRequest hands a line to the AI collaborator.
type ChatRequest struct {
	Mode   Mode // ModeAiChat or ModeInterview
	Prompt string
}

// Response is the result of one submitted line.
type Response struct {
	Command string // dispatched command name, for logs and metrics

	Blocks []Block

	// Clear asks the caller to replace the scrollback with Blocks.
	Clear bool
	// ToggleVisibility asks the caller to show or hide the terminal window.
	ToggleVisibility bool

	Mail *Mail
	Chat *ChatRequest
	// Ended is the AI mode an "exit" just left, ModeNormal otherwise.
	Ended Mode
}

func (r *Response) add(b Block) {
	r.Blocks = append(r.Blocks, b)
}

func (r *Response) output(tone Tone, text string) {
	r.add(Block{Kind: BlockOutput, Tone: tone, Text: text})
}
