package ai

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"termfolio/internal/logging"
	"termfolio/internal/profile"
)

// Track selects which conversation a prompt belongs to.
type Track int

const (
	TrackChat Track = iota
	TrackInterview
)

func (t Track) String() string {
	if t == TrackInterview {
		return "interview"
	}
	return "chat"
}

// Conversation keeps separate histories for the chat and the mock
// interview and sends each prompt with the history of its track.
type Conversation struct {
	client Client
	system map[Track]string

	mu      sync.Mutex
	history map[Track][]Message
}

// NewConversation creates a conversation about p. A nil client behaves
// like NopClient.
func NewConversation(client Client, p *profile.Profile) *Conversation {
	if client == nil {
		client = NopClient{}
	}
	return &Conversation{
		client: client,
		system: map[Track]string{
			TrackChat:      ChatPersona(p),
			TrackInterview: InterviewPersona(p),
		},
		history: make(map[Track][]Message),
	}
}

// Ask sends prompt on track. On success the prompt and the reply are
// appended to that track's history; failed turns are not remembered.
func (c *Conversation) Ask(ctx context.Context, track Track, prompt string) (string, error) {
	c.mu.Lock()
	history := append([]Message(nil), c.history[track]...)
	c.mu.Unlock()

	logging.AIDebug("%s prompt (%d prior turns)", track, len(history))
	reply, err := c.client.Generate(ctx, Request{
		Prompt:  prompt,
		History: history,
		System:  c.system[track],
	})
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.history[track] = append(c.history[track], NewMessage(RoleUser, prompt), NewMessage(RoleModel, reply))
	c.mu.Unlock()
	return reply, nil
}

// History returns a copy of the turns recorded on track.
func (c *Conversation) History(track Track) []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.history[track]...)
}

// Reset forgets the history of track, e.g. when its session ends.
func (c *Conversation) Reset(track Track) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.history, track)
}

// ChatPersona is the system instruction for the portfolio assistant.
func ChatPersona(p *profile.Profile) string {
	return fmt.Sprintf(
		"You are the assistant on %s's interactive terminal portfolio. %s is a %s based in %s. "+
			"Answer visitors' questions about %s's background, skills and projects briefly and in plain text.\n\n%s",
		p.Name, p.Name, p.Role, p.Location, p.Name, profileSummary(p))
}

// InterviewPersona is the system instruction for the mock interview.
func InterviewPersona(p *profile.Profile) string {
	return fmt.Sprintf(
		"You are a friendly technical interviewer running a mock interview with %s, a %s. "+
			"Ask one question at a time, wait for the answer, and give short feedback before the next question. "+
			"Base your questions on this background:\n\n%s",
		p.Name, p.Role, profileSummary(p))
}

func profileSummary(p *profile.Profile) string {
	var sb strings.Builder
	sb.WriteString("About: ")
	sb.WriteString(p.About)
	for _, sc := range p.Skills {
		fmt.Fprintf(&sb, "\n%s: %s", sc.Category, strings.Join(sc.Items, ", "))
	}
	for _, proj := range p.Projects {
		fmt.Fprintf(&sb, "\nProject %s: %s", proj.Name, proj.Description)
	}
	return sb.String()
}
