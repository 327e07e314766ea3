package webterm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"termfolio/internal/profile"
	"termfolio/internal/terminal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *stepClock) {
	t.Helper()
	in := terminal.NewInterpreter(profile.Default(), nil, terminal.Options{})
	s := NewStore(in, ttl)
	clock := &stepClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	s.now = clock.Now
	t.Cleanup(s.CloseAll)
	return s, clock
}

// =============================================================================
// STORE
// =============================================================================

func TestStore_CreateGetDelete(t *testing.T) {
	s, _ := newTestStore(t, time.Minute)

	id, sess := s.Create()
	require.NotEmpty(t, id)
	assert.Equal(t, 1, s.Len())

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	require.NoError(t, s.Delete(id))
	assert.Equal(t, 0, s.Len())

	_, err = s.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, s.Delete(id), ErrSessionNotFound)
}

func TestStore_SessionsAreIndependent(t *testing.T) {
	s, _ := newTestStore(t, time.Minute)
	_, a := s.Create()
	_, b := s.Create()

	a.Submit("cd projects")
	assert.Equal(t, "/home/prasanth/projects", a.State().CurrentPath)
	assert.Equal(t, "/home/prasanth", b.State().CurrentPath)
}

func TestStore_SweepExpiresIdleSessions(t *testing.T) {
	s, clock := newTestStore(t, 10*time.Minute)

	idle, _ := s.Create()
	clock.Advance(6 * time.Minute)
	active, _ := s.Create()
	clock.Advance(5 * time.Minute)

	_, err := s.Get(active)
	require.NoError(t, err)

	assert.Equal(t, 1, s.Sweep())
	_, err = s.Get(idle)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = s.Get(active)
	assert.NoError(t, err)

	assert.Equal(t, 0, s.Sweep())
}

func TestStore_SetInterpreterAffectsNewSessionsOnly(t *testing.T) {
	s, _ := newTestStore(t, time.Minute)
	_, before := s.Create()

	p := profile.Default()
	p.Username = "ada"
	s.SetInterpreter(terminal.NewInterpreter(p, nil, terminal.Options{}))
	_, after := s.Create()

	assert.Equal(t, "/home/prasanth", before.State().CurrentPath)
	assert.Equal(t, "/home/ada", after.State().CurrentPath)
	assert.Same(t, s.Interpreter(), after.Interpreter())
}

func TestStore_RunStopsWithContext(t *testing.T) {
	s, _ := newTestStore(t, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, time.Millisecond) }()

	time.Sleep(5 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestStore_DefaultTTL(t *testing.T) {
	s := NewStore(terminal.NewInterpreter(profile.Default(), nil, terminal.Options{}), 0)
	assert.Equal(t, DefaultTTL, s.ttl)
}

// =============================================================================
// HTTP
// =============================================================================

func newTestServer(t *testing.T) (*httptest.Server, *Store) {
	t.Helper()
	s, _ := newTestStore(t, time.Minute)
	mux := http.NewServeMux()
	NewHandler(s).Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	t.Cleanup(http.DefaultClient.CloseIdleConnections)
	return srv, s
}

func do(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func open(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp, out := do(t, http.MethodPost, srv.URL+"/api/terminal/sessions", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return out["id"].(string)
}

func send(t *testing.T, srv *httptest.Server, id, line string) map[string]any {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"line": line})
	resp, out := do(t, http.MethodPost, srv.URL+"/api/terminal/sessions/"+id+"/input", string(body))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return out
}

func TestHTTP_CreateSession(t *testing.T) {
	srv, s := newTestServer(t)

	resp, out := do(t, http.MethodPost, srv.URL+"/api/terminal/sessions", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	assert.NotEmpty(t, out["id"])
	assert.Equal(t, "user@host:~$", out["prompt"])
	assert.Equal(t, "normal", out["mode"])
	assert.Equal(t, "~", out["cwd"])

	welcome := out["welcome"].(map[string]any)
	assert.Equal(t, "welcome", welcome["kind"])
	assert.Contains(t, welcome["text"], "Welcome to my Interactive Portfolio!")
	assert.Equal(t, 1, s.Len())
}

func TestHTTP_Input(t *testing.T) {
	srv, _ := newTestServer(t)
	id := open(t, srv)

	out := send(t, srv, id, "cd projects")
	assert.Equal(t, "cd", out["command"])
	assert.Equal(t, "user@host:~/projects$", out["prompt"])

	out = send(t, srv, id, "ls")
	blocks := out["blocks"].([]any)
	require.Len(t, blocks, 2)
	echo := blocks[0].(map[string]any)
	assert.Equal(t, "command", echo["kind"])
	assert.Equal(t, "user@host:~/projects$ ls", echo["text"])

	listing := blocks[1].(map[string]any)
	entries := listing["entries"].([]any)
	assert.Len(t, entries, 3)
	assert.Equal(t, "promptpilot.md", entries[0].(map[string]any)["name"])

	resp, state := do(t, http.MethodGet, srv.URL+"/api/terminal/sessions/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "~/projects", state["cwd"])
	assert.Equal(t, []any{"ls", "cd projects"}, state["history"])
}

func TestHTTP_ClearAndToggle(t *testing.T) {
	srv, _ := newTestServer(t)
	id := open(t, srv)

	out := send(t, srv, id, "clear")
	assert.Equal(t, true, out["clear"])
	assert.Len(t, out["blocks"], 1)

	out = send(t, srv, id, "term")
	assert.Equal(t, true, out["toggle"])
}

func TestHTTP_HireReturnsMail(t *testing.T) {
	srv, _ := newTestServer(t)
	id := open(t, srv)

	out := send(t, srv, id, "sudo hire")
	assert.Equal(t, "hire", out["mode"])
	assert.Equal(t, "[Hiring Mode] >", out["prompt"])

	send(t, srv, id, "Ada Lovelace")
	out = send(t, srv, id, "Analytical Engines")

	assert.Equal(t, "normal", out["mode"])
	mail := out["mail"].(map[string]any)
	assert.Equal(t, "prasanthpradeep@email.com", mail["to"])
	assert.Equal(t, float64(2000), mail["delay_ms"])
	assert.True(t, strings.HasPrefix(mail["url"].(string), "mailto:prasanthpradeep@email.com?subject="))
	assert.NotContains(t, mail["url"], "+")
}

func TestHTTP_ChatRequestInAiMode(t *testing.T) {
	srv, _ := newTestServer(t)
	id := open(t, srv)

	send(t, srv, id, "ai interview")
	out := send(t, srv, id, "tell me about yourself")

	chat := out["chat"].(map[string]any)
	assert.Equal(t, "interview", chat["mode"])
	assert.Equal(t, "tell me about yourself", chat["prompt"])

	out = send(t, srv, id, "exit")
	assert.Equal(t, "normal", out["mode"])
	assert.Nil(t, out["chat"])
}

func TestHTTP_Errors(t *testing.T) {
	srv, _ := newTestServer(t)
	id := open(t, srv)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"unknown session input", http.MethodPost, "/api/terminal/sessions/nope/input", `{"line":"ls"}`, http.StatusNotFound},
		{"unknown session show", http.MethodGet, "/api/terminal/sessions/nope", "", http.StatusNotFound},
		{"unknown session delete", http.MethodDelete, "/api/terminal/sessions/nope", "", http.StatusNotFound},
		{"bad json", http.MethodPost, "/api/terminal/sessions/" + id + "/input", `{"line":`, http.StatusBadRequest},
		{"missing line", http.MethodPost, "/api/terminal/sessions/" + id + "/input", `{"text":"ls"}`, http.StatusBadRequest},
		{"line not a string", http.MethodPost, "/api/terminal/sessions/" + id + "/input", `{"line":42}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, out := do(t, tt.method, srv.URL+tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.NotEmpty(t, out["error"])
		})
	}
}

func TestHTTP_Delete(t *testing.T) {
	srv, s := newTestServer(t)
	id := open(t, srv)

	resp, _ := do(t, http.MethodDelete, srv.URL+"/api/terminal/sessions/"+id, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 0, s.Len())
}
