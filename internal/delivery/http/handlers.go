package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"novelforge-server/internal/models"
	"novelforge-server/internal/repository"
	"novelforge-server/internal/service"
)

// Store - общий контракт хранилища сущности, его реализует repository.CRUD.
type Store[T any] interface {
	Get(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context, skip, limit int) ([]T, error)
	Create(ctx context.Context, fields repository.Fields) (*T, error)
	Update(ctx context.Context, id int64, fields repository.Fields) (*T, error)
	Delete(ctx context.Context, id int64) (*T, error)
}

// OutlineStore расширяет общий контракт выдачей леса узлов проекта.
type OutlineStore interface {
	Store[models.OutlineNode]
	GetForestByProject(ctx context.Context, projectID int64) ([]*models.OutlineNode, error)
}

// GeneratedOutlineStore расширяет общий контракт выборкой версий проекта.
type GeneratedOutlineStore interface {
	Store[models.GeneratedOutline]
	ListByProject(ctx context.Context, projectID int64, skip, limit int) ([]models.GeneratedOutline, error)
}

// ConversationStore - контракт хранилища диалогов.
type ConversationStore interface {
	Create(ctx context.Context, title string, projectID int64, messages []repository.NewMessage) (*models.Conversation, error)
	Get(ctx context.Context, id int64) (*models.Conversation, error)
	List(ctx context.Context, projectID *int64, skip, limit int) ([]models.Conversation, error)
	Update(ctx context.Context, id int64, title *string, messages []repository.NewMessage) (*models.Conversation, error)
	Delete(ctx context.Context, id int64) (*models.Conversation, error)
}

// AIProvider - контракт сервиса генерации.
type AIProvider interface {
	GetInitialPrompt(ctx context.Context, req service.GenerationRequest) (*service.InitialPrompt, error)
	GenerateOutlineStream(ctx context.Context, modelID int64, prompt string) (<-chan service.Event, error)
	GenerateOutline(ctx context.Context, req service.GenerationRequest) (string, error)
	ChatStream(ctx context.Context, modelID int64, history []service.ChatMessage) (<-chan service.Event, error)
	TestConnection(ctx context.Context, modelID int64) error
}

// Deps - зависимости HTTP-слоя.
type Deps struct {
	Projects          Store[models.Project]
	Outlines          OutlineStore
	Characters        Store[models.Character]
	Conversations     ConversationStore
	Worldviews        Store[models.Worldview]
	WritingStyles     Store[models.WritingStyle]
	PromptTemplates   Store[models.PromptTemplate]
	GeneratedOutlines GeneratedOutlineStore
	AIModels          Store[models.AIModel]
	PromptPresets     Store[models.PromptPreset]
	AI                AIProvider
	Logger            *zap.Logger
}

// Handler обрабатывает HTTP-запросы сервера.
type Handler struct {
	deps   Deps
	logger *zap.Logger
}

// NewHandler создает новый экземпляр Handler.
func NewHandler(deps Deps) *Handler {
	return &Handler{deps: deps, logger: deps.Logger.Named("HTTPHandler")}
}

// parseID извлекает числовой параметр пути.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// parsePage извлекает параметры пагинации skip/limit.
func parsePage(c *gin.Context) (int, int) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	return skip, limit
}

// handleServiceError транслирует доменные ошибки в HTTP-ответы.
// entity попадает в текст 404, чтобы клиент видел, чего именно нет.
func (h *Handler) handleServiceError(c *gin.Context, err error, entity string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": entity + " not found"})
	case errors.Is(err, models.ErrBadRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConnectionFailed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrGenerationFailed):
		h.logger.Error("Generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Unhandled service error", zap.String("entity", entity), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// bindJSON разбирает тело запроса, отвечая 400 при невалидном JSON.
func bindJSON(c *gin.Context, target any) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return false
	}
	return true
}
