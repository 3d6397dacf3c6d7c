package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"novelforge-server/internal/repository"
)

// MessageRequest - одно сообщение во входящем теле диалога.
type MessageRequest struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// ConversationCreateRequest - тело создания диалога с вложенными сообщениями.
type ConversationCreateRequest struct {
	Title     string           `json:"title"`
	ProjectID int64            `json:"project_id" binding:"required"`
	Messages  []MessageRequest `json:"messages"`
}

// ConversationUpdateRequest - тело обновления диалога. Непустой список
// messages заменяет сохраненные сообщения целиком.
type ConversationUpdateRequest struct {
	Title    *string          `json:"title"`
	Messages []MessageRequest `json:"messages"`
}

func toNewMessages(requests []MessageRequest) []repository.NewMessage {
	if requests == nil {
		return nil
	}
	messages := make([]repository.NewMessage, 0, len(requests))
	for _, req := range requests {
		messages = append(messages, repository.NewMessage{Role: req.Role, Content: req.Content})
	}
	return messages
}

func (h *Handler) createConversation(c *gin.Context) {
	var req ConversationCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	conversation, err := h.deps.Conversations.Create(
		c.Request.Context(), req.Title, req.ProjectID, toNewMessages(req.Messages))
	if err != nil {
		h.handleServiceError(c, err, "Conversation")
		return
	}
	c.JSON(http.StatusOK, conversation)
}

func (h *Handler) listConversations(c *gin.Context) {
	skip, limit := parsePage(c)

	var projectID *int64
	if raw := c.Query("project_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project_id"})
			return
		}
		projectID = &id
	}

	conversations, err := h.deps.Conversations.List(c.Request.Context(), projectID, skip, limit)
	if err != nil {
		h.handleServiceError(c, err, "Conversation")
		return
	}
	c.JSON(http.StatusOK, conversations)
}

func (h *Handler) getConversation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	conversation, err := h.deps.Conversations.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Conversation")
		return
	}
	c.JSON(http.StatusOK, conversation)
}

func (h *Handler) updateConversation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req ConversationUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	conversation, err := h.deps.Conversations.Update(
		c.Request.Context(), id, req.Title, toNewMessages(req.Messages))
	if err != nil {
		h.handleServiceError(c, err, "Conversation")
		return
	}
	c.JSON(http.StatusOK, conversation)
}

func (h *Handler) deleteConversation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	conversation, err := h.deps.Conversations.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Conversation")
		return
	}
	c.JSON(http.StatusOK, conversation)
}
