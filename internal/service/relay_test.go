package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// sseUpstream поднимает OpenAI-совместимый потоковый сервер, отдающий
// переданные SSE-кадры и закрывающий соединение.
func sseUpstream(t *testing.T, frames ...string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher, ok := w.(http.Flusher)
		require.True(t, ok)
		for _, frame := range frames {
			fmt.Fprint(w, frame)
			flusher.Flush()
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func contentFrame(chunk string) string {
	return fmt.Sprintf(`data: {"id":"chatcmpl-1","object":"chat.completion.chunk","created":1,"model":"test-model","choices":[{"index":0,"delta":{"content":%q}}]}`+"\n\n", chunk)
}

func reasoningFrame(chunk string) string {
	return fmt.Sprintf(`data: {"id":"chatcmpl-1","object":"chat.completion.chunk","created":1,"model":"test-model","choices":[{"index":0,"delta":{"reasoning_content":%q}}]}`+"\n\n", chunk)
}

const (
	doneFrame  = "data: [DONE]\n\n"
	errorFrame = `data: {"error":{"message":"boom","type":"server_error"}}` + "\n\n"
)

func collectEvents(t *testing.T, server *httptest.Server) []Event {
	t.Helper()
	relay := NewRelay(5*time.Second, zap.NewNop())
	creds := Credentials{APIURL: server.URL + "/v1", APIKey: "test-key", ModelName: "test-model"}
	messages := []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: "go"}}

	events := []Event{}
	for event := range relay.Stream(context.Background(), creds, messages) {
		events = append(events, event)
	}
	return events
}

func TestRelayStream(t *testing.T) {
	t.Run("ContentChunksInOrder", func(t *testing.T) {
		server := sseUpstream(t, contentFrame("Hel"), contentFrame("lo"), doneFrame)

		events := collectEvents(t, server)

		require.Len(t, events, 2)
		assert.Equal(t, Event{Type: EventContent, Chunk: "Hel"}, events[0])
		assert.Equal(t, Event{Type: EventContent, Chunk: "lo"}, events[1])
	})

	t.Run("ReasoningBeforeContent", func(t *testing.T) {
		server := sseUpstream(t, reasoningFrame("thinking"), contentFrame("answer"), doneFrame)

		events := collectEvents(t, server)

		require.Len(t, events, 2)
		assert.Equal(t, EventReasoning, events[0].Type)
		assert.Equal(t, "thinking", events[0].Chunk)
		assert.Equal(t, EventContent, events[1].Type)
		assert.Equal(t, "answer", events[1].Chunk)
	})

	t.Run("MidStreamErrorIsTerminal", func(t *testing.T) {
		server := sseUpstream(t, contentFrame("a"), contentFrame("b"), errorFrame)

		events := collectEvents(t, server)

		require.Len(t, events, 3)
		assert.Equal(t, EventContent, events[0].Type)
		assert.Equal(t, EventContent, events[1].Type)
		assert.Equal(t, EventError, events[2].Type)
		assert.Contains(t, events[2].Message, "boom")
	})

	t.Run("UpstreamUnavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"message":"no such model","type":"invalid_request_error"}}`, http.StatusNotFound)
		}))
		t.Cleanup(server.Close)

		events := collectEvents(t, server)

		require.Len(t, events, 1)
		assert.Equal(t, EventError, events[0].Type)
	})

	t.Run("CancellationStopsStream", func(t *testing.T) {
		blocked := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/event-stream")
			flusher := w.(http.Flusher)
			fmt.Fprint(w, contentFrame("first"))
			flusher.Flush()
			<-blocked
		}))
		t.Cleanup(func() {
			close(blocked)
			server.Close()
		})

		relay := NewRelay(5*time.Second, zap.NewNop())
		creds := Credentials{APIURL: server.URL + "/v1", APIKey: "test-key", ModelName: "test-model"}
		ctx, cancel := context.WithCancel(context.Background())

		events := relay.Stream(ctx, creds, []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "go"},
		})

		first, open := <-events
		require.True(t, open)
		assert.Equal(t, "first", first.Chunk)

		cancel()

		for range events {
			// дочитываем до закрытия
		}
	})
}

func TestRelayCollect(t *testing.T) {
	t.Run("ConcatenatesContent", func(t *testing.T) {
		server := sseUpstream(t, reasoningFrame("hm"), contentFrame("Hel"), contentFrame("lo"), doneFrame)

		relay := NewRelay(5*time.Second, zap.NewNop())
		creds := Credentials{APIURL: server.URL + "/v1", APIKey: "test-key", ModelName: "test-model"}

		result, err := relay.Collect(context.Background(), creds, []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "go"},
		})
		require.NoError(t, err)

		// Рассуждения не попадают в агрегированный результат
		assert.Equal(t, "Hello", result)
	})

	t.Run("ErrorDiscardsPartialResult", func(t *testing.T) {
		server := sseUpstream(t, contentFrame("part"), errorFrame)

		relay := NewRelay(5*time.Second, zap.NewNop())
		creds := Credentials{APIURL: server.URL + "/v1", APIKey: "test-key", ModelName: "test-model"}

		result, err := relay.Collect(context.Background(), creds, []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "go"},
		})
		require.ErrorIs(t, err, ErrGenerationFailed)
		assert.Empty(t, result)
	})
}

func TestRelayTestConnection(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"object":"list","data":[{"id":"test-model","object":"model"}]}`)
		}))
		t.Cleanup(server.Close)

		relay := NewRelay(5*time.Second, zap.NewNop())
		err := relay.TestConnection(context.Background(), Credentials{
			APIURL: server.URL + "/v1", APIKey: "test-key", ModelName: "test-model",
		})
		require.NoError(t, err)
	})

	t.Run("Failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"message":"unauthorized","type":"invalid_request_error"}}`, http.StatusUnauthorized)
		}))
		t.Cleanup(server.Close)

		relay := NewRelay(5*time.Second, zap.NewNop())
		err := relay.TestConnection(context.Background(), Credentials{
			APIURL: server.URL + "/v1", APIKey: "bad-key", ModelName: "test-model",
		})
		require.ErrorIs(t, err, ErrConnectionFailed)
	})
}
