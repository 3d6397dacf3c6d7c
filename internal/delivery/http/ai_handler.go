package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"novelforge-server/internal/service"
)

// AIGenerationRequest - параметры генерации плана.
type AIGenerationRequest struct {
	ProjectID       int64  `json:"project_id" binding:"required"`
	AIModelID       int64  `json:"ai_model_id" binding:"required"`
	WorldviewID     *int64 `json:"worldview_id"`
	WritingStyleID  *int64 `json:"writing_style_id"`
	TargetWordCount int    `json:"target_word_count" binding:"required"`
}

// AIGenerationStreamRequest - потоковая генерация по готовому промпту.
type AIGenerationStreamRequest struct {
	AIModelID int64  `json:"ai_model_id" binding:"required"`
	Prompt    string `json:"prompt" binding:"required"`
}

// AIChatRequest - потоковая генерация по истории диалога.
type AIChatRequest struct {
	AIModelID int64            `json:"ai_model_id" binding:"required"`
	Messages  []MessageRequest `json:"messages" binding:"required,min=1"`
}

func generationRequest(req AIGenerationRequest) service.GenerationRequest {
	return service.GenerationRequest{
		ProjectID:       req.ProjectID,
		AIModelID:       req.AIModelID,
		WorldviewID:     req.WorldviewID,
		WritingStyleID:  req.WritingStyleID,
		TargetWordCount: req.TargetWordCount,
	}
}

// getInitialPrompt компилирует и возвращает промпт без обращения к модели.
func (h *Handler) getInitialPrompt(c *gin.Context) {
	var req AIGenerationRequest
	if !bindJSON(c, &req) {
		return
	}

	prompt, err := h.deps.AI.GetInitialPrompt(c.Request.Context(), generationRequest(req))
	if err != nil {
		h.handleServiceError(c, err, "Project")
		return
	}
	c.JSON(http.StatusOK, prompt)
}

// generateOutlineStream транслирует потоковую генерацию плана клиенту.
func (h *Handler) generateOutlineStream(c *gin.Context) {
	var req AIGenerationStreamRequest
	if !bindJSON(c, &req) {
		return
	}

	events, err := h.deps.AI.GenerateOutlineStream(c.Request.Context(), req.AIModelID, req.Prompt)
	if err != nil {
		h.handleServiceError(c, err, "AI Model")
		return
	}
	h.streamEvents(c, events)
}

// generateOutline возвращает агрегированный результат генерации плана.
func (h *Handler) generateOutline(c *gin.Context) {
	var req AIGenerationRequest
	if !bindJSON(c, &req) {
		return
	}

	outline, err := h.deps.AI.GenerateOutline(c.Request.Context(), generationRequest(req))
	if err != nil {
		h.handleServiceError(c, err, "AI Model")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "outline": outline})
}

// chatStream транслирует потоковый ответ ассистента по истории диалога.
func (h *Handler) chatStream(c *gin.Context) {
	var req AIChatRequest
	if !bindJSON(c, &req) {
		return
	}

	history := make([]service.ChatMessage, 0, len(req.Messages))
	for _, message := range req.Messages {
		history = append(history, service.ChatMessage{Role: message.Role, Content: message.Content})
	}

	events, err := h.deps.AI.ChatStream(c.Request.Context(), req.AIModelID, history)
	if err != nil {
		h.handleServiceError(c, err, "AI Model")
		return
	}
	h.streamEvents(c, events)
}
