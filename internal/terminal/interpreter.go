package terminal

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"termfolio/internal/logging"
	"termfolio/internal/profile"
	"termfolio/internal/vfs"
)

// Picker draws a pseudo-random index in [0, n). *rand.Rand satisfies it.
type Picker interface {
	IntN(n int) int
}

// Options configures an Interpreter. Zero values pick the defaults.
type Options struct {
	User      string        // prompt user label, default "user"
	Host      string        // prompt host label, default "host"
	HireDelay time.Duration // delay before the hire mail opens, default 2s
	Picker    Picker        // neofetch quote source, default time-seeded
}

// DefaultHireDelay is how long the hire wizard waits before opening mail.
const DefaultHireDelay = 2 * time.Second

// Interpreter dispatches command lines against one profile and the
// filesystem built from it. It holds no session state and is safe for
// concurrent use.
type Interpreter struct {
	profile *profile.Profile
	fs      *vfs.Filesystem
	user    string
	host    string
	delay   time.Duration

	pickMu sync.Mutex
	picker Picker
}

// NewInterpreter creates an interpreter for p. When fs is nil it is built
// from p.
func NewInterpreter(p *profile.Profile, fs *vfs.Filesystem, opts Options) *Interpreter {
	if fs == nil {
		fs = vfs.Build(p)
	}
	in := &Interpreter{
		profile: p,
		fs:      fs,
		user:    opts.User,
		host:    opts.Host,
		delay:   opts.HireDelay,
		picker:  opts.Picker,
	}
	if in.user == "" {
		in.user = "user"
	}
	if in.host == "" {
		in.host = "host"
	}
	if in.delay <= 0 {
		in.delay = DefaultHireDelay
	}
	if in.picker == nil {
		now := uint64(time.Now().UnixNano())
		in.picker = rand.New(rand.NewPCG(now, now>>1))
	}
	return in
}

// Profile returns the profile the interpreter renders.
func (in *Interpreter) Profile() *profile.Profile { return in.profile }

// Filesystem returns the filesystem commands operate on.
func (in *Interpreter) Filesystem() *vfs.Filesystem { return in.fs }

// NewState returns the initial state of a session.
func (in *Interpreter) NewState() State {
	return NewState(in.fs.Home())
}

// Prompt renders the input prefix for st.
func (in *Interpreter) Prompt(st State) string {
	switch st.Mode {
	case ModeAiChat:
		return "[AI Chat] >"
	case ModeInterview:
		return "[Interview Mode] >"
	case ModeHire:
		return "[Hiring Mode] >"
	}
	return fmt.Sprintf("%s@%s:%s$", in.user, in.host, vfs.DisplayPath(st.CurrentPath, in.fs.Home()))
}

// Welcome is the block shown at session start and after clear.
func (in *Interpreter) Welcome() Block {
	return Block{
		Kind: BlockWelcome,
		Text: "Welcome to my Interactive Portfolio!\nType `help` or click an icon to see available commands.",
	}
}

func (in *Interpreter) echo(line string, st State) Block {
	return Block{Kind: BlockCommand, Text: in.Prompt(st) + " " + line}
}

// Route applies mode-sensitive routing and then dispatches. In an AI chat
// or interview "exit" ends the session without being dispatched; in the
// hire wizard every line is an answer.
func (in *Interpreter) Route(line string, st State) (Response, State) {
	switch st.Mode {
	case ModeAiChat, ModeInterview:
		if strings.EqualFold(strings.TrimSpace(line), "exit") {
			return in.exitSession(line, st)
		}
	case ModeHire:
		return in.hire(line, st)
	}
	return in.Process(line, st)
}

func (in *Interpreter) exitSession(line string, st State) (Response, State) {
	resp := Response{Command: "exit", Ended: st.Mode}
	resp.add(in.echo(line, st))
	if st.Mode == ModeInterview {
		resp.output(ToneNotice, "Interview session ended.")
	} else {
		resp.output(ToneSuccess, "AI chat session ended.")
	}
	logging.SessionDebug("%s session ended", st.Mode)
	st.Mode = ModeNormal
	return resp, st
}

// Process dispatches one command line. Blank lines are ignored; every other
// line is recorded in history first, whether or not it is recognized.
func (in *Interpreter) Process(line string, st State) (Response, State) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return Response{}, st
	}
	cmd := strings.ToLower(args[0])
	args = args[1:]

	prev := st
	st.History = pushHistory(st.History, line)

	var resp Response
	resp.add(in.echo(line, prev))
	logging.InterpreterDebug("dispatch %q args=%v cwd=%s", cmd, args, st.CurrentPath)

	switch cmd {
	case "clear":
		resp = Response{Clear: true, Blocks: []Block{in.Welcome()}}
	case "ls":
		in.ls(&resp, args, st)
	case "cd":
		st.CurrentPath = in.cd(&resp, args, st)
	case "cat":
		in.cat(&resp, args, st)
	case "terminal", "term":
		resp.ToggleVisibility = true
	case "help":
		in.help(&resp)
	case "about":
		in.about(&resp)
	case "skills":
		in.skills(&resp)
	case "social":
		in.social(&resp)
	case "projects":
		in.projects(&resp)
	case "history":
		in.history(&resp, prev.History)
	case "neofetch":
		in.neofetch(&resp)
	case "sudo":
		if len(args) == 1 && args[0] == "hire" {
			cmd = "sudo hire"
			st = in.startHire(&resp, st)
			break
		}
		cmd = in.notFound(&resp, line, &st)
	case "ai":
		if len(args) > 0 && strings.EqualFold(args[0], "interview") {
			cmd = "ai interview"
			resp.output(ToneNotice, "Starting mock interview... Type 'exit' to end the session.")
			resp.output(ToneNotice, "Note: AI integration requires backend setup.")
			st.Mode = ModeInterview
			break
		}
		resp.output(ToneSuccess, "Starting AI chat session... Type 'exit' to end.")
		resp.output(ToneSuccess, "Note: AI integration requires backend setup.")
		st.Mode = ModeAiChat
	default:
		cmd = in.notFound(&resp, line, &st)
	}

	resp.Command = cmd
	return resp, st
}

// notFound reports an unknown command. Inside an AI session the line is
// also forwarded to the chat collaborator.
func (in *Interpreter) notFound(resp *Response, line string, st *State) string {
	resp.output(ToneError, fmt.Sprintf("Command not found: %s. Type 'help' for a list of commands.", line))
	if st.InSession() {
		resp.Chat = &ChatRequest{Mode: st.Mode, Prompt: line}
	}
	return "not-found"
}

func (in *Interpreter) ls(resp *Response, args []string, st State) {
	path := st.CurrentPath
	if len(args) > 0 {
		path = vfs.Resolve(args[0], st.CurrentPath)
	}
	entries, ok := in.fs.List(path)
	if !ok {
		target := "."
		if len(args) > 0 {
			target = args[0]
		}
		resp.output(ToneError, fmt.Sprintf("ls: cannot access '%s': No such file or directory", target))
		return
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir {
			names = append(names, e.Name+"/")
		} else {
			names = append(names, e.Name)
		}
	}
	resp.add(Block{Kind: BlockOutput, Text: strings.Join(names, "  "), Entries: entries})
}

// cd returns the new working directory.
func (in *Interpreter) cd(resp *Response, args []string, st State) string {
	target := in.fs.Home()
	if len(args) > 0 {
		target = args[0]
	}
	path := vfs.Resolve(target, st.CurrentPath)
	if !in.fs.IsDir(path) {
		resp.output(ToneError, "cd: no such file or directory: "+target)
		return st.CurrentPath
	}
	return path
}

func (in *Interpreter) cat(resp *Response, args []string, st State) {
	if len(args) == 0 {
		resp.output(ToneError, "cat: missing operand")
		return
	}
	target := args[0]
	path := vfs.Resolve(target, st.CurrentPath)
	node, ok := in.fs.Lookup(path)
	switch {
	case !ok:
		resp.output(ToneError, fmt.Sprintf("cat: %s: No such file or directory", target))
	case node.IsDir():
		resp.output(ToneError, fmt.Sprintf("cat: %s: Is a directory", target))
	default:
		resp.add(Block{
			Kind:     BlockOutput,
			Text:     node.Content,
			Markdown: strings.HasSuffix(path, ".md"),
		})
	}
}
