package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// EventType определяет тип события потока генерации.
type EventType string

const (
	EventReasoning EventType = "reasoning"
	EventContent   EventType = "content"
	EventError     EventType = "error"
)

// Event - одно событие потока генерации. Для reasoning и content заполнен
// Chunk, для error - Message.
type Event struct {
	Type    EventType
	Chunk   string
	Message string
}

// Credentials - параметры подключения к внешней модели с уже
// расшифрованным ключом.
type Credentials struct {
	APIURL    string
	APIKey    string
	ModelName string
}

var (
	relayStreamsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "novelforge_ai_streams_total",
			Help: "Total number of AI completion streams.",
		},
		[]string{"model", "status"},
	)
	relayChunksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "novelforge_ai_chunks_total",
			Help: "Total number of chunks relayed from the AI API.",
		},
		[]string{"model", "type"},
	)
	relayStreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "novelforge_ai_stream_duration_seconds",
			Help:    "Histogram of AI completion stream durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)
)

// Relay транслирует потоковые ответы OpenAI-совместимого API в канал событий.
type Relay struct {
	timeout time.Duration
	logger  *zap.Logger
}

// NewRelay создает новый экземпляр Relay.
func NewRelay(timeout time.Duration, logger *zap.Logger) *Relay {
	return &Relay{timeout: timeout, logger: logger.Named("Relay")}
}

func (r *Relay) newClient(creds Credentials) *openai.Client {
	cfg := openai.DefaultConfig(creds.APIKey)
	if creds.APIURL != "" {
		cfg.BaseURL = creds.APIURL
	}
	cfg.HTTPClient = &http.Client{Timeout: r.timeout}
	return openai.NewClientWithConfig(cfg)
}

// Stream запускает потоковую генерацию и возвращает канал событий.
// Каждый непустой фрагмент рассуждений и контента дает ровно одно событие
// в порядке прихода. Штатное завершение закрывает канал без терминального
// события; любая ошибка дает ровно одно событие error, после чего канал
// закрывается. Отмена контекста останавливает чтение и закрывает
// соединение с провайдером.
func (r *Relay) Stream(ctx context.Context, creds Credentials, messages []openai.ChatCompletionMessage) <-chan Event {
	events := make(chan Event)

	go func() {
		defer close(events)
		startTime := time.Now()

		stream, err := r.newClient(creds).CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
			Model:    creds.ModelName,
			Messages: messages,
			Stream:   true,
		})
		if err != nil {
			r.logger.Warn("failed to open completion stream",
				zap.String("model", creds.ModelName), zap.Error(err))
			relayStreamsTotal.WithLabelValues(creds.ModelName, "error_init").Inc()
			emit(ctx, events, Event{Type: EventError, Message: err.Error()})
			return
		}
		defer stream.Close()

		for {
			response, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				relayStreamsTotal.WithLabelValues(creds.ModelName, "success").Inc()
				relayStreamDuration.WithLabelValues(creds.ModelName).Observe(time.Since(startTime).Seconds())
				return
			}
			if err != nil {
				if ctx.Err() != nil {
					relayStreamsTotal.WithLabelValues(creds.ModelName, "canceled").Inc()
					return
				}
				r.logger.Warn("failed to read completion stream",
					zap.String("model", creds.ModelName), zap.Error(err))
				relayStreamsTotal.WithLabelValues(creds.ModelName, "error_read").Inc()
				emit(ctx, events, Event{Type: EventError, Message: err.Error()})
				return
			}

			if len(response.Choices) == 0 {
				continue
			}
			delta := response.Choices[0].Delta
			if delta.ReasoningContent != "" {
				relayChunksTotal.WithLabelValues(creds.ModelName, string(EventReasoning)).Inc()
				if !emit(ctx, events, Event{Type: EventReasoning, Chunk: delta.ReasoningContent}) {
					return
				}
			}
			if delta.Content != "" {
				relayChunksTotal.WithLabelValues(creds.ModelName, string(EventContent)).Inc()
				if !emit(ctx, events, Event{Type: EventContent, Chunk: delta.Content}) {
					return
				}
			}
		}
	}()

	return events
}

// Collect выполняет потоковую генерацию и собирает контент в одну строку.
// Событие error прерывает сбор: частичный результат не возвращается.
func (r *Relay) Collect(ctx context.Context, creds Credentials, messages []openai.ChatCompletionMessage) (string, error) {
	var full []byte
	for event := range r.Stream(ctx, creds, messages) {
		switch event.Type {
		case EventContent:
			full = append(full, event.Chunk...)
		case EventError:
			return "", fmt.Errorf("%w: %s", ErrGenerationFailed, event.Message)
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return string(full), nil
}

// TestConnection проверяет учетные данные запросом списка моделей.
func (r *Relay) TestConnection(ctx context.Context, creds Credentials) error {
	if _, err := r.newClient(creds).ListModels(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	return nil
}

// emit отправляет событие, не зависая на отмененном контексте.
func emit(ctx context.Context, events chan<- Event, event Event) bool {
	select {
	case events <- event:
		return true
	case <-ctx.Done():
		return false
	}
}
