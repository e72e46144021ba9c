package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeChatModel replays a scripted reply through the streaming callback.
type fakeChatModel struct {
	chunks   []string
	err      error
	received []llms.MessageContent
}

func (m *fakeChatModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.received = messages

	var callOpts llms.CallOptions
	for _, opt := range options {
		opt(&callOpts)
	}
	if callOpts.StreamingFunc == nil {
		return nil, errors.New("no streaming callback provided")
	}

	for _, chunk := range m.chunks {
		if err := callOpts.StreamingFunc(ctx, []byte(chunk)); err != nil {
			return nil, err
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{}, nil
}

func chatBody(contents ...string) map[string]any {
	messages := make([]map[string]string, 0, len(contents))
	for i, content := range contents {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		messages = append(messages, map[string]string{"role": role, "content": content})
	}
	return map[string]any{"messages": messages}
}

func postChat(t *testing.T, api testAPI, clientKey string, body map[string]any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, api.server.URL+"/chat", strings.NewReader(string(raw)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if clientKey != "" {
		req.Header.Set("X-Client-Key", clientKey)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestChatStream(t *testing.T) {
	t.Run("streams deltas and done sentinel", func(t *testing.T) {
		model := &fakeChatModel{chunks: []string{"Hel", "lo!"}}
		api := newTestAPI(t, func(cfg *handlerConfig) { cfg.model = model })

		resp := postChat(t, api, "widget-key", chatBody("hi there"))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		body := string(raw)

		assert.Contains(t, body, `data: {"choices":[{"delta":{"content":"Hel"}}]}`)
		assert.Contains(t, body, `data: {"choices":[{"delta":{"content":"lo!"}}]}`)
		assert.True(t, strings.HasSuffix(body, "data: [DONE]\n\n"))

		require.Len(t, model.received, 1)
		assert.Equal(t, llms.ChatMessageTypeHuman, model.received[0].Role)
	})

	t.Run("maps history roles", func(t *testing.T) {
		model := &fakeChatModel{chunks: []string{"ok"}}
		api := newTestAPI(t, func(cfg *handlerConfig) { cfg.model = model })

		resp := postChat(t, api, "widget-key", chatBody("question", "answer", "followup"))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		io.Copy(io.Discard, resp.Body)

		require.Len(t, model.received, 3)
		assert.Equal(t, llms.ChatMessageTypeHuman, model.received[0].Role)
		assert.Equal(t, llms.ChatMessageTypeAI, model.received[1].Role)
		assert.Equal(t, llms.ChatMessageTypeHuman, model.received[2].Role)
	})

	t.Run("wrong client key is 401", func(t *testing.T) {
		api := newTestAPI(t, func(cfg *handlerConfig) { cfg.model = &fakeChatModel{} })

		resp := postChat(t, api, "wrong-key", chatBody("hi"))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp = postChat(t, api, "", chatBody("hi"))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("empty history is 400", func(t *testing.T) {
		api := newTestAPI(t, func(cfg *handlerConfig) { cfg.model = &fakeChatModel{} })

		resp := postChat(t, api, "widget-key", map[string]any{"messages": []any{}})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unconfigured model is 503", func(t *testing.T) {
		api := newTestAPI(t)

		resp := postChat(t, api, "widget-key", chatBody("hi"))
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("mid-stream failure emits error event then done", func(t *testing.T) {
		model := &fakeChatModel{chunks: []string{"par"}, err: assert.AnError}
		api := newTestAPI(t, func(cfg *handlerConfig) { cfg.model = model })

		resp := postChat(t, api, "widget-key", chatBody("hi"))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		body := string(raw)

		assert.Contains(t, body, "event: error\n")
		assert.True(t, strings.HasSuffix(body, "data: [DONE]\n\n"))
	})

	t.Run("history longer than the cap is trimmed", func(t *testing.T) {
		model := &fakeChatModel{chunks: []string{"ok"}}
		api := newTestAPI(t, func(cfg *handlerConfig) { cfg.model = model })

		contents := make([]string, maxChatHistory+10)
		for i := range contents {
			contents[i] = "message"
		}
		resp := postChat(t, api, "widget-key", chatBody(contents...))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		io.Copy(io.Discard, resp.Body)

		assert.Len(t, model.received, maxChatHistory)
	})
}
