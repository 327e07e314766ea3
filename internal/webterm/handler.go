package webterm

import (
	"encoding/json"
	"errors"
	"net/http"

	"termfolio/internal/logging"
	"termfolio/internal/metrics"
	"termfolio/internal/terminal"
	"termfolio/internal/vfs"

	"github.com/tidwall/gjson"
)

const maxInputBytes = 16 << 10

// Handler exposes a Store as a small JSON API.
type Handler struct {
	store *Store
}

// NewHandler creates a handler over store.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Register mounts the session routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/terminal/sessions", h.create)
	mux.HandleFunc("GET /api/terminal/sessions/{id}", h.show)
	mux.HandleFunc("POST /api/terminal/sessions/{id}/input", h.input)
	mux.HandleFunc("DELETE /api/terminal/sessions/{id}", h.remove)
}

type blockJSON struct {
	Kind     string      `json:"kind"`
	Tone     string      `json:"tone"`
	Title    string      `json:"title,omitempty"`
	Text     string      `json:"text"`
	Markdown bool        `json:"markdown,omitempty"`
	Entries  []entryJSON `json:"entries,omitempty"`
}

type entryJSON struct {
	Name  string `json:"name"`
	IsDir bool   `json:"is_dir"`
}

type mailJSON struct {
	URL     string `json:"url"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	DelayMS int64  `json:"delay_ms"`
}

type chatJSON struct {
	Mode   string `json:"mode"`
	Prompt string `json:"prompt"`
}

type sessionJSON struct {
	ID      string     `json:"id"`
	Prompt  string     `json:"prompt"`
	Mode    string     `json:"mode"`
	Cwd     string     `json:"cwd"`
	History []string   `json:"history,omitempty"`
	Welcome *blockJSON `json:"welcome,omitempty"`
}

type inputJSON struct {
	Command string      `json:"command,omitempty"`
	Blocks  []blockJSON `json:"blocks"`
	Prompt  string      `json:"prompt"`
	Mode    string      `json:"mode"`
	Clear   bool        `json:"clear,omitempty"`
	Toggle  bool        `json:"toggle,omitempty"`
	Mail    *mailJSON   `json:"mail,omitempty"`
	Chat    *chatJSON   `json:"chat,omitempty"`
}

func toBlock(b terminal.Block) blockJSON {
	out := blockJSON{
		Kind:     b.Kind.String(),
		Tone:     b.Tone.String(),
		Title:    b.Title,
		Text:     b.Text,
		Markdown: b.Markdown,
	}
	for _, e := range b.Entries {
		out.Entries = append(out.Entries, entryJSON{Name: e.Name, IsDir: e.IsDir})
	}
	return out
}

func toInput(resp terminal.Response, sess *terminal.Session) inputJSON {
	st := sess.State()
	out := inputJSON{
		Command: resp.Command,
		Blocks:  make([]blockJSON, 0, len(resp.Blocks)),
		Prompt:  sess.Prompt(),
		Mode:    st.Mode.String(),
		Clear:   resp.Clear,
		Toggle:  resp.ToggleVisibility,
	}
	for _, b := range resp.Blocks {
		out.Blocks = append(out.Blocks, toBlock(b))
	}
	if m := resp.Mail; m != nil {
		out.Mail = &mailJSON{
			URL:     m.URL(),
			To:      m.To,
			Subject: m.Subject,
			Body:    m.Body,
			DelayMS: m.Delay.Milliseconds(),
		}
	}
	if c := resp.Chat; c != nil {
		out.Chat = &chatJSON{Mode: c.Mode.String(), Prompt: c.Prompt}
	}
	return out
}

func describe(id string, sess *terminal.Session) sessionJSON {
	st := sess.State()
	return sessionJSON{
		ID:      id,
		Prompt:  sess.Prompt(),
		Mode:    st.Mode.String(),
		Cwd:     vfs.DisplayPath(st.CurrentPath, sess.Interpreter().Filesystem().Home()),
		History: st.History,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (string, *terminal.Session, bool) {
	id := r.PathValue("id")
	sess, err := h.store.Get(id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrSessionNotFound) {
			status = http.StatusNotFound
		}
		writeError(w, status, err.Error())
		return "", nil, false
	}
	return id, sess, true
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	id, sess := h.store.Create()
	out := describe(id, sess)
	welcome := toBlock(sess.Welcome())
	out.Welcome = &welcome
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, describe(id, sess))
}

func (h *Handler) input(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var body []byte
	if r.Body != nil {
		var buf json.RawMessage
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxInputBytes)).Decode(&buf); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		body = buf
	}
	line := gjson.GetBytes(body, "line")
	if line.Type != gjson.String {
		writeError(w, http.StatusBadRequest, "Missing line")
		return
	}

	resp := sess.Submit(line.Str)
	metrics.RecordCommand(resp.Command)
	logging.WebTermDebug("session %s ran %q", id, resp.Command)
	writeJSON(w, http.StatusOK, toInput(resp, sess))
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.PathValue("id")); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
