package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"novelforge-server/internal/service"
)

// sseWriter пишет события потока генерации в формате Server-Sent Events.
// Каждое событие отправляется как `event: <type>` и одна строка `data: <json>`
// и немедленно сбрасывается клиенту.
type sseWriter struct {
	w       io.Writer
	flusher http.Flusher
}

func newSSEWriter(w http.ResponseWriter) (*sseWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support flushing")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	return &sseWriter{w: w, flusher: flusher}, nil
}

// WriteEvent отправляет одно событие с JSON-телом и сбрасывает буфер.
func (w *sseWriter) WriteEvent(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode sse payload: %w", err)
	}
	if _, err := fmt.Fprintf(w.w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return fmt.Errorf("failed to write sse frame: %w", err)
	}
	w.flusher.Flush()
	return nil
}

// streamEvents транслирует канал событий генерации в SSE-ответ.
// Ошибка записи означает отключение клиента; трансляция прекращается,
// контекст запроса закрывает поток со стороны провайдера.
func (h *Handler) streamEvents(c *gin.Context, events <-chan service.Event) {
	writer, err := newSSEWriter(c.Writer)
	if err != nil {
		h.logger.Error("Failed to init SSE stream", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Streaming is not supported"})
		return
	}

	for event := range events {
		var payload any
		if event.Type == service.EventError {
			payload = gin.H{"error": event.Message}
		} else {
			payload = gin.H{"chunk": event.Chunk}
		}
		if err := writer.WriteEvent(string(event.Type), payload); err != nil {
			h.logger.Debug("SSE client disconnected", zap.Error(err))
			return
		}
	}
}
