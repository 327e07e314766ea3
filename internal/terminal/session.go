package terminal

import (
	"sync"
	"time"

	"termfolio/internal/logging"
)

// Direction selects which way Recall walks the history.
type Direction int

const (
	Older Direction = iota
	Newer
)

// Mailer opens a composed mail. Implementations decide what opening means:
// launching a mail client, copying the link, or printing it.
type Mailer interface {
	Send(m Mail)
}

// MailerFunc adapts a function to Mailer.
type MailerFunc func(m Mail)

func (f MailerFunc) Send(m Mail) { f(m) }

// AfterFunc schedules f after d. time.AfterFunc satisfies it.
type AfterFunc func(d time.Duration, f func()) *time.Timer

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithMailer hands hire mails to m after their delay. Without a mailer the
// caller is expected to act on Response.Mail itself.
func WithMailer(m Mailer) SessionOption {
	return func(s *Session) { s.mailer = m }
}

// WithAfterFunc replaces time.AfterFunc, mostly for tests.
func WithAfterFunc(after AfterFunc) SessionOption {
	return func(s *Session) { s.after = after }
}

// Session exclusively owns one State. All methods are safe for concurrent
// use; lines are processed one at a time.
type Session struct {
	in *Interpreter

	mu      sync.Mutex
	state   State
	recall  int // index into state.History, -1 when not recalling
	closed  bool
	mails   sync.WaitGroup // scheduled hire mails not yet delivered

	mailer Mailer
	after  AfterFunc
}

// NewSession starts a session at the interpreter's home directory.
func NewSession(in *Interpreter, opts ...SessionOption) *Session {
	s := &Session{
		in:      in,
		state:   in.NewState(),
		recall:  -1,
		after:   time.AfterFunc,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Interpreter returns the interpreter the session dispatches to.
func (s *Session) Interpreter() *Interpreter { return s.in }

// Welcome is the block to show when the session opens.
func (s *Session) Welcome() Block {
	return s.in.Welcome()
}

// State returns a snapshot of the session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.History = append([]string(nil), s.state.History...)
	return st
}

// Prompt renders the current input prefix.
func (s *Session) Prompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.in.Prompt(s.state)
}

// Submit routes one input line and updates the session state. A hire mail
// in the response is scheduled on the mailer, when one is configured.
func (s *Session) Submit(line string) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp, next := s.in.Route(line, s.state)
	s.state = next
	s.recall = -1

	if resp.Mail != nil && s.mailer != nil && !s.closed {
		s.schedule(*resp.Mail)
	}
	return resp
}

func (s *Session) schedule(m Mail) {
	s.mails.Add(1)
	s.after(m.Delay, func() {
		defer s.mails.Done()
		logging.SessionDebug("opening hire mail to %s", m.To)
		s.mailer.Send(m)
	})
}

// Recall walks the history like the arrow keys. Older stops at the oldest
// line; Newer returns "" once it moves past the most recent line.
func (s *Session) Recall(dir Direction) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.state.History
	switch dir {
	case Older:
		if s.recall < len(h)-1 {
			s.recall++
		}
		if s.recall < 0 {
			return ""
		}
		return h[s.recall]
	default:
		if s.recall > 0 {
			s.recall--
			return h[s.recall]
		}
		s.recall = -1
		return ""
	}
}

// Close stops scheduling hire mails. A mail already scheduled is not
// cancelled; it is still delivered once its delay elapses.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Wait blocks until every scheduled hire mail has been handed to the mailer.
// Front ends that exit right after Close call it so a wizard finished just
// before quitting still opens its mail.
func (s *Session) Wait() {
	s.mails.Wait()
}
