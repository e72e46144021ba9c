package chatclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGateway(t *testing.T, reply ...string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.Header.Get("X-Client-Key"))

		var payload chatPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.NotEmpty(t, payload.Messages)

		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, delta := range reply {
			fmt.Fprint(w, deltaLine(delta))
			flusher.Flush()
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
}

func newTestClient(t *testing.T, endpoint string, opts ...Option) *Client {
	t.Helper()
	store := NewTranscriptStore(filepath.Join(t.TempDir(), "chat.json"))
	return New(endpoint, "test-key", store, opts...)
}

func TestClientSend(t *testing.T) {
	t.Run("streams reply into transcript and persists", func(t *testing.T) {
		server := newGateway(t, "Hi", " there", "!")
		defer server.Close()

		store := NewTranscriptStore(filepath.Join(t.TempDir(), "chat.json"))
		client := New(server.URL, "test-key", store)

		require.NoError(t, client.Send("tell me about your projects"))

		messages := client.Messages()
		require.Len(t, messages, 3) // greeting, user, reply
		assert.Equal(t, RoleUser, messages[1].Role)
		assert.Equal(t, TopicProjects, messages[1].Topic)
		assert.Equal(t, RoleAssistant, messages[2].Role)
		assert.Equal(t, "Hi there!", messages[2].Content)
		assert.Equal(t, StateIdle, client.State())

		// Reload from disk: the finished transcript survived.
		reloaded := New(server.URL, "test-key", store)
		require.Len(t, reloaded.Messages(), 3)
		assert.Equal(t, "Hi there!", reloaded.Messages()[2].Content)
	})

	t.Run("gateway failure leaves apology not partial reply", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		require.Error(t, client.Send("hello"))

		messages := client.Messages()
		require.Len(t, messages, 3)
		assert.Equal(t, apologyText, messages[2].Content)
		assert.Equal(t, StateIdle, client.State())
	})

	t.Run("second send while in flight returns ErrBusy", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
			fmt.Fprint(w, "data: [DONE]\n\n")
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, client.Send("first"))
		}()

		require.Eventually(t, func() bool {
			return client.State() != StateIdle
		}, time.Second, time.Millisecond)

		assert.ErrorIs(t, client.Send("second"), ErrBusy)

		close(release)
		wg.Wait()
	})

	t.Run("reply while closed increments unread and open clears it", func(t *testing.T) {
		server := newGateway(t, "hello")
		defer server.Close()

		client := newTestClient(t, server.URL)
		client.Close()

		require.NoError(t, client.Send("hi"))
		assert.Equal(t, 1, client.Unread())

		client.Open()
		assert.Equal(t, 0, client.Unread())

		require.NoError(t, client.Send("hi again"))
		assert.Equal(t, 0, client.Unread())
	})

	t.Run("typing delay still yields full reply", func(t *testing.T) {
		server := newGateway(t, "slow", " reply")
		defer server.Close()

		client := newTestClient(t, server.URL, WithTypingDelay(time.Millisecond))

		require.NoError(t, client.Send("hi"))

		messages := client.Messages()
		assert.Equal(t, "slow reply", messages[len(messages)-1].Content)
	})

	t.Run("update callback sees every transcript change", func(t *testing.T) {
		server := newGateway(t, "ok")
		defer server.Close()

		var mu sync.Mutex
		var calls int
		client := newTestClient(t, server.URL, WithOnUpdate(func([]Message) {
			mu.Lock()
			calls++
			mu.Unlock()
		}))

		require.NoError(t, client.Send("hi"))

		mu.Lock()
		defer mu.Unlock()
		assert.GreaterOrEqual(t, calls, 2)
	})
}

func TestClientTranscriptOps(t *testing.T) {
	server := newGateway(t, "ok")
	defer server.Close()

	client := newTestClient(t, server.URL)
	require.NoError(t, client.Send("hi"))

	messages := client.Messages()
	userMsg := messages[1]

	client.React(userMsg.ID, "🔥")
	client.Pin(userMsg.ID, true)

	messages = client.Messages()
	assert.Equal(t, "🔥", messages[1].Reaction)
	assert.True(t, messages[1].Pinned)

	client.Clear()
	messages = client.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, defaultGreeting, messages[0].Content)
}
