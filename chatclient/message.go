// Package chatclient implements the portfolio chat widget's client side:
// sending the transcript to the streaming gateway, parsing the
// server-sent-event reply, throttled typing playback, and best-effort
// transcript persistence.
package chatclient

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Topics assigned to user messages by keyword matching.
const (
	TopicProjects = "projects"
	TopicServices = "services"
	TopicTech     = "tech"
	TopicContact  = "contact"
	TopicGeneral  = "general"
)

// Message is one transcript entry. Messages live only on the client; the
// gateway never stores them.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Topic     string    `json:"topic,omitempty"`
	Reaction  string    `json:"reaction,omitempty"`
	Pinned    bool      `json:"pinned"`
	Timestamp time.Time `json:"timestamp"`
}

func newMessage(role, content, topic string) Message {
	return Message{
		ID:        uuid.New(),
		Role:      role,
		Content:   content,
		Topic:     topic,
		Timestamp: time.Now(),
	}
}

// DetectTopic tags a user message with a coarse topic by scanning for a
// fixed keyword set. Unmatched text falls through to "general".
func DetectTopic(text string) string {
	lowered := strings.ToLower(text)

	switch {
	case containsAny(lowered, "project", "portfolio", "built", "build"):
		return TopicProjects
	case containsAny(lowered, "service", "offer", "consulting"):
		return TopicServices
	case containsAny(lowered, "tech", "stack", "framework", "language", "tool"):
		return TopicTech
	case containsAny(lowered, "contact", "email", "hire", "reach"):
		return TopicContact
	default:
		return TopicGeneral
	}
}

func containsAny(s string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
