// Package ai talks to the generative-language backend for the terminal's
// chat and mock interview sessions.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoBackend is returned when no AI backend is configured.
	ErrNoBackend = errors.New("AI integration requires backend setup")
	// ErrEmptyReply is returned when the backend answered without text.
	ErrEmptyReply = errors.New("empty reply from AI backend")
)

// UpstreamError is a non-OK HTTP answer from the proxy or the API.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream returned status %d", e.Status)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.Status, e.Body)
}

// Roles of a conversation turn, as the API names them.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Part is one piece of a message. Only text is used.
type Part struct {
	Text string `json:"text"`
}

// Message is one conversation turn in the API's "contents" shape.
type Message struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// NewMessage builds a single-part text message.
func NewMessage(role, text string) Message {
	return Message{Role: role, Parts: []Part{{Text: text}}}
}

// Text concatenates the message parts.
func (m Message) Text() string {
	var sb strings.Builder
	for _, p := range m.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// Request is one prompt plus the turns that came before it.
type Request struct {
	Prompt  string
	History []Message
	System  string // optional system instruction
}

// Client generates a reply for a request.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// NopClient is the client used when no backend is configured.
type NopClient struct{}

func (NopClient) Generate(context.Context, Request) (string, error) {
	return "", ErrNoBackend
}
