package chatclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// States of the send cycle.
const (
	StateIdle      = "idle"
	StateSending   = "sending"
	StateStreaming = "streaming"
)

const apologyText = "Sorry, I ran into a problem answering that. Please try again."

// ErrBusy is returned when a send is attempted while another is in flight.
var ErrBusy = errors.New("a chat request is already in flight")

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatPayload struct {
	Messages []wireMessage `json:"messages"`
}

// Client drives the chat widget against the streaming gateway: one
// in-flight request at a time, incremental assistant output, apology
// fallback on failure, and transcript persistence after every change.
type Client struct {
	endpoint   string
	clientKey  string
	httpClient *http.Client
	store      *TranscriptStore
	delay      time.Duration
	onUpdate   func([]Message)
	logger     zerolog.Logger

	mu       sync.Mutex
	messages []Message
	state    string
	open     bool
	unread   int
}

type Option func(*Client)

// WithHTTPClient overrides the transport. The default has no timeout: a
// hung connection hangs the send, matching the widget's behavior.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTypingDelay enables typewriter playback at the given per-character
// delay. Zero applies streamed text immediately.
func WithTypingDelay(delay time.Duration) Option {
	return func(c *Client) {
		c.delay = delay
	}
}

// WithOnUpdate registers a render callback invoked after every transcript
// change.
func WithOnUpdate(onUpdate func([]Message)) Option {
	return func(c *Client) {
		c.onUpdate = onUpdate
	}
}

func New(endpoint, clientKey string, store *TranscriptStore, opts ...Option) *Client {
	client := &Client{
		endpoint:   endpoint,
		clientKey:  clientKey,
		httpClient: &http.Client{},
		store:      store,
		state:      StateIdle,
		logger:     log.With().Str("component", "chatclient").Logger(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.messages = store.Load()
	return client
}

// State returns the current send-cycle state.
func (c *Client) State() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Messages returns a copy of the transcript.
func (c *Client) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Unread returns the count of assistant replies finished while the widget
// was closed.
func (c *Client) Unread() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unread
}

// Open marks the widget visible and clears the unread badge. An in-flight
// stream keeps running either way.
func (c *Client) Open() {
	c.mu.Lock()
	c.open = true
	c.unread = 0
	c.mu.Unlock()
}

// Close hides the widget. It never aborts an in-flight stream; it only
// makes completed replies count as unread.
func (c *Client) Close() {
	c.mu.Lock()
	c.open = false
	c.mu.Unlock()
}

// Send appends a topic-tagged user message, streams the assistant reply,
// and blocks until the stream finishes. Only one send may be in flight;
// concurrent calls get ErrBusy. A transport or gateway failure replaces
// the pending reply with an apology and is not retried.
func (c *Client) Send(text string) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrBusy
	}
	c.state = StateSending
	c.messages = append(c.messages, newMessage(RoleUser, text, DetectTopic(text)))
	reply := newMessage(RoleAssistant, "", "")
	c.messages = append(c.messages, reply)
	payload := c.buildPayload()
	c.mu.Unlock()
	c.persist()

	err := c.stream(payload, reply.ID)

	c.mu.Lock()
	c.state = StateIdle
	if err != nil {
		c.setContentLocked(reply.ID, apologyText)
	} else if !c.open {
		c.unread++
	}
	c.mu.Unlock()
	c.persist()

	if err != nil {
		c.logger.Error().Err(err).Msg("chat request failed")
	}
	return err
}

// buildPayload snapshots the history for the wire, excluding the empty
// pending reply. Caller holds the lock.
func (c *Client) buildPayload() chatPayload {
	var payload chatPayload
	for _, msg := range c.messages {
		if msg.Content == "" {
			continue
		}
		payload.Messages = append(payload.Messages, wireMessage{Role: msg.Role, Content: msg.Content})
	}
	return payload
}

func (c *Client) stream(payload chatPayload, replyID uuid.UUID) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-Key", c.clientKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("chat gateway returned status %d", resp.StatusCode)
	}

	c.mu.Lock()
	c.state = StateStreaming
	c.mu.Unlock()

	typewriter := NewTypewriter(c.delay, func(text string) {
		c.mu.Lock()
		c.setContentLocked(replyID, text)
		c.mu.Unlock()
		c.notify()
	})
	defer typewriter.Close()

	var parser StreamParser
	buf := make([]byte, 4096)
	for !parser.Done() {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			for _, delta := range parser.Feed(buf[:n]) {
				typewriter.Write(delta)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return readErr
		}
	}
	typewriter.Flush()
	return nil
}

// setContentLocked updates one message's content in place. Caller holds
// the lock.
func (c *Client) setContentLocked(id uuid.UUID, content string) {
	for i := range c.messages {
		if c.messages[i].ID == id {
			c.messages[i].Content = content
			return
		}
	}
}

// React records an emoji reaction on a message.
func (c *Client) React(id uuid.UUID, reaction string) {
	c.mu.Lock()
	for i := range c.messages {
		if c.messages[i].ID == id {
			c.messages[i].Reaction = reaction
			break
		}
	}
	c.mu.Unlock()
	c.persist()
}

// Pin toggles a message's pinned flag.
func (c *Client) Pin(id uuid.UUID, pinned bool) {
	c.mu.Lock()
	for i := range c.messages {
		if c.messages[i].ID == id {
			c.messages[i].Pinned = pinned
			break
		}
	}
	c.mu.Unlock()
	c.persist()
}

// Clear resets the transcript back to the greeting.
func (c *Client) Clear() {
	c.mu.Lock()
	c.messages = greetingTranscript()
	c.mu.Unlock()
	c.persist()
}

func (c *Client) persist() {
	c.store.Save(c.Messages())
	c.notify()
}

func (c *Client) notify() {
	if c.onUpdate == nil {
		return
	}
	c.onUpdate(c.Messages())
}
