package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
)

// chatRequest carries the full message history from the widget.
type chatRequest struct {
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// deltaChunk is the OpenAI-style shape the widget's stream parser expects.
type deltaChunk struct {
	Choices []deltaChoice `json:"choices"`
}

type deltaChoice struct {
	Delta deltaContent `json:"delta"`
}

type deltaContent struct {
	Content string `json:"content"`
}

const maxChatHistory = 40

// ChatModel is the streaming LLM capability the handler depends on.
// langchaingo's openai client satisfies it in production; tests swap in a
// scripted fake.
type ChatModel interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

type chatHandler struct {
	responder Responder
	logger    zerolog.Logger
	model     ChatModel
	clientKey string
}

func newChatHandler(model ChatModel, clientKey string) chatHandler {
	logger := log.With().Str("handlerName", "chatHandler").Logger()

	return chatHandler{
		responder: NewResponder(logger),
		logger:    logger,
		model:     model,
		clientKey: clientKey,
	}
}

// streamChat proxies the chat history to the LLM and relays the reply as a
// server-sent-event stream of delta chunks terminated by a [DONE] sentinel.
// @Summary Stream a chat completion
// @Tags Chat
// @Accept json
// @Produce text/event-stream
// @Param messages body chatRequest true "Full message history"
// @Success 200 {string} string "SSE stream of delta chunks"
// @Failure 401 {object} ErrorResponse "Unauthorized - Missing or wrong client key"
// @Router /chat [post]
func (h chatHandler) streamChat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.clientKey == "" || r.Header.Get("X-Client-Key") != h.clientKey {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing or invalid client key"))
			return
		}
		if h.model == nil {
			h.responder.WriteError(w, errs.NewApiErr(http.StatusServiceUnavailable, "chat is not configured"))
			return
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("chat", err))
			return
		}
		if len(req.Messages) == 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("messages"))
			return
		}
		if len(req.Messages) > maxChatHistory {
			req.Messages = req.Messages[len(req.Messages)-maxChatHistory:]
		}

		history := make([]llms.MessageContent, 0, len(req.Messages))
		for _, msg := range req.Messages {
			if msg.Content == "" {
				continue
			}
			history = append(history, llms.TextParts(chatRole(msg.Role), msg.Content))
		}
		if len(history) == 0 {
			h.responder.WriteError(w, errs.NewInvalidFieldError("messages", "no non-empty messages"))
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			h.responder.WriteError(w, errs.NewInternalError("streaming unsupported"))
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		_, err := h.model.GenerateContent(r.Context(), history,
			llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
				return writeDelta(w, flusher, string(chunk))
			}),
		)
		if err != nil {
			// Streaming already started: relay the failure as an SSE error
			// event, never as a second response body.
			h.logger.Error().Err(err).Msg("chat completion failed")
			fmt.Fprintf(w, "event: error\ndata: %s\n\n", jsonError("upstream chat completion failed"))
			flusher.Flush()
		}

		fmt.Fprint(w, "data: [DONE]\n\n")
		flusher.Flush()
	}
}

func writeDelta(w http.ResponseWriter, flusher http.Flusher, content string) error {
	if content == "" {
		return nil
	}
	chunk := deltaChunk{Choices: []deltaChoice{{Delta: deltaContent{Content: content}}}}
	payload, err := json.Marshal(chunk)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

func jsonError(message string) string {
	payload, _ := json.Marshal(map[string]string{"error": message})
	return string(payload)
}

func chatRole(role string) llms.ChatMessageType {
	switch role {
	case "assistant":
		return llms.ChatMessageTypeAI
	case "system":
		return llms.ChatMessageTypeSystem
	default:
		return llms.ChatMessageTypeHuman
	}
}
