package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cannedReply struct {
	status int
	body   string
}

func replyServer(t *testing.T, reply cannedReply) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(reply.status)
		_, _ = w.Write([]byte(reply.body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestOpenAICompleter(t *testing.T) {
	server := replyServer(t, cannedReply{http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"final_score\": 0.7}"}}]
	}`})

	reply, err := NewOpenAICompleter("key", "gpt-4o", server.URL+"/v1", 5*time.Second).Complete(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, `{"final_score": 0.7}`, reply)
}

func TestOpenAICompleterFailures(t *testing.T) {
	tests := []struct {
		name  string
		reply cannedReply
	}{
		{"server error", cannedReply{http.StatusInternalServerError, `{"error": {"message": "boom", "type": "server_error"}}`}},
		{"no choices", cannedReply{http.StatusOK, `{"id": "chatcmpl-1", "choices": []}`}},
		{"empty content", cannedReply{http.StatusOK, `{"id": "chatcmpl-1", "choices": [{"index": 0, "message": {"role": "assistant", "content": ""}}]}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := replyServer(t, tt.reply)

			_, err := NewOpenAICompleter("key", "gpt-4o", server.URL+"/v1", 5*time.Second).Complete(context.Background(), "prompt")

			assert.ErrorIs(t, err, ErrLLMRequestFailed)
		})
	}
}

func TestClaudeCompleter(t *testing.T) {
	server := replyServer(t, cannedReply{http.StatusOK, `{
		"id": "msg_1",
		"type": "message",
		"role": "assistant",
		"model": "claude-3-7-sonnet-latest",
		"content": [{"type": "text", "text": "{\"final_score\": 0.6}"}],
		"stop_reason": "end_turn",
		"usage": {"input_tokens": 10, "output_tokens": 5}
	}`})

	reply, err := NewClaudeCompleter("key", "claude-3-7-sonnet-latest", server.URL, 5*time.Second, 1024).Complete(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, `{"final_score": 0.6}`, reply)
}

func TestClaudeCompleterFailures(t *testing.T) {
	tests := []struct {
		name  string
		reply cannedReply
	}{
		{"server error", cannedReply{http.StatusInternalServerError, `{"type": "error", "error": {"type": "api_error", "message": "boom"}}`}},
		{"no content", cannedReply{http.StatusOK, `{"id": "msg_1", "type": "message", "role": "assistant", "content": [], "usage": {"input_tokens": 1, "output_tokens": 0}}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := replyServer(t, tt.reply)

			_, err := NewClaudeCompleter("key", "claude-3-7-sonnet-latest", server.URL, 5*time.Second, 1024).Complete(context.Background(), "prompt")

			assert.ErrorIs(t, err, ErrLLMRequestFailed)
		})
	}
}

func TestGeminiCompleter(t *testing.T) {
	server := replyServer(t, cannedReply{http.StatusOK, `{
		"candidates": [{"content": {"role": "model", "parts": [{"text": "{\"final_score\": 0.5}"}]}}]
	}`})

	completer, err := NewGeminiCompleter(context.Background(), "key", "gemini-2.5-flash", server.URL, 5*time.Second, 1024)
	require.NoError(t, err)

	reply, err := completer.Complete(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, `{"final_score": 0.5}`, reply)
}

func TestGeminiCompleterFailures(t *testing.T) {
	tests := []struct {
		name  string
		reply cannedReply
	}{
		{"server error", cannedReply{http.StatusInternalServerError, `{"error": {"code": 500, "message": "boom", "status": "INTERNAL"}}`}},
		{"no candidates", cannedReply{http.StatusOK, `{"candidates": []}`}},
		{"empty parts", cannedReply{http.StatusOK, `{"candidates": [{"content": {"role": "model", "parts": []}}]}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := replyServer(t, tt.reply)

			completer, err := NewGeminiCompleter(context.Background(), "key", "gemini-2.5-flash", server.URL, 5*time.Second, 1024)
			require.NoError(t, err)

			_, err = completer.Complete(context.Background(), "prompt")

			assert.ErrorIs(t, err, ErrLLMRequestFailed)
		})
	}
}
