// Package webterm serves terminal sessions over HTTP for browser front ends.
package webterm

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"termfolio/internal/logging"
	"termfolio/internal/metrics"
	"termfolio/internal/terminal"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("terminal session not found")

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 30 * time.Minute

type entry struct {
	session  *terminal.Session
	lastSeen time.Time
}

// Store holds the open web sessions keyed by id. Sessions idle for longer
// than the TTL are closed by Sweep, which Run calls periodically.
type Store struct {
	ttl    time.Duration
	now    func() time.Time
	interp atomic.Pointer[terminal.Interpreter]

	mu       sync.Mutex
	sessions map[string]*entry
}

// NewStore creates a store whose new sessions use in.
func NewStore(in *terminal.Interpreter, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
	s.interp.Store(in)
	return s
}

// SetInterpreter swaps the interpreter used for sessions created from now
// on. Open sessions keep the profile they started with.
func (s *Store) SetInterpreter(in *terminal.Interpreter) {
	s.interp.Store(in)
}

// Interpreter returns the interpreter new sessions will use.
func (s *Store) Interpreter() *terminal.Interpreter {
	return s.interp.Load()
}

// Create opens a new session and returns its id.
func (s *Store) Create() (string, *terminal.Session) {
	id := uuid.NewString()
	sess := terminal.NewSession(s.interp.Load())

	s.mu.Lock()
	s.sessions[id] = &entry{session: sess, lastSeen: s.now()}
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.SessionOpened()
	logging.WebTerm("session %s opened (%d open)", id, n)
	return id, sess
}

// Get returns the session for id and marks it as active.
func (s *Store) Get(id string) (*terminal.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastSeen = s.now()
	return e.session, nil
}

// Delete closes and forgets the session for id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	e, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	e.session.Close()
	metrics.SessionClosed(false)
	logging.WebTerm("session %s closed", id)
	return nil
}

// Len returns the number of open sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep closes sessions idle for longer than the TTL and returns how many
// it closed.
func (s *Store) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	var expired []*terminal.Session
	s.mu.Lock()
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, e.session)
			delete(s.sessions, id)
			logging.WebTermDebug("session %s expired", id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.Close()
		metrics.SessionClosed(true)
	}
	if len(expired) > 0 {
		logging.WebTerm("expired %d idle sessions", len(expired))
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done. A non-positive interval
// uses a quarter of the TTL.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = s.ttl / 4
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// CloseAll closes every open session.
func (s *Store) CloseAll() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*entry)
	s.mu.Unlock()

	for _, e := range sessions {
		e.session.Close()
		metrics.SessionClosed(false)
	}
}
