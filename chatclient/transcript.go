package chatclient

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog/log"
)

const defaultGreeting = "Hi! I'm the portfolio assistant. Ask me about projects, skills, or how to get in touch."

// TranscriptStore persists the transcript to a local JSON file. Reads and
// writes are best effort: failures are logged and the widget carries on,
// losing history at worst.
type TranscriptStore struct {
	path string
}

func NewTranscriptStore(path string) *TranscriptStore {
	return &TranscriptStore{path: path}
}

// Load rehydrates the stored transcript. A missing, unreadable, or corrupt
// file falls back to a single synthesized greeting.
func (s *TranscriptStore) Load() []Message {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", s.path).Msg("failed to read transcript")
		}
		return greetingTranscript()
	}

	var messages []Message
	if err := json.Unmarshal(raw, &messages); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("corrupt transcript, starting fresh")
		return greetingTranscript()
	}
	if len(messages) == 0 {
		return greetingTranscript()
	}
	return messages
}

// Save writes the transcript out. Errors are logged, never returned.
func (s *TranscriptStore) Save(messages []Message) {
	raw, err := json.Marshal(messages)
	if err != nil {
		log.Warn().Err(err).Msg("failed to encode transcript")
		return
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("failed to write transcript")
	}
}

func greetingTranscript() []Message {
	return []Message{newMessage(RoleAssistant, defaultGreeting, TopicGeneral)}
}
