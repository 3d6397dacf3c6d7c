package service

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"novelforge-server/internal/models"
	"novelforge-server/internal/repository"
)

// GenerationRequest - параметры генерации плана. Сеттинг и стиль опциональны.
type GenerationRequest struct {
	ProjectID       int64
	AIModelID       int64
	WorldviewID     *int64
	WritingStyleID  *int64
	TargetWordCount int
}

// ChatMessage - одно сообщение диалога для потоковой генерации.
type ChatMessage struct {
	Role    string
	Content string
}

// InitialPrompt - скомпилированный промпт вместе с оценкой его размера.
type InitialPrompt struct {
	Prompt          string `json:"prompt"`
	EstimatedTokens int    `json:"estimated_tokens"`
}

// AIService управляет генерацией: компилирует промпты из настроек проекта
// и ведет потоковые и агрегированные запросы к внешним моделям.
type AIService struct {
	projects      *repository.ProjectRepository
	worldviews    *repository.WorldviewRepository
	writingStyles *repository.WritingStyleRepository
	aiModels      *repository.AIModelRepository
	relay         *Relay
	logger        *zap.Logger
}

// NewAIService создает новый экземпляр AIService.
func NewAIService(
	projects *repository.ProjectRepository,
	worldviews *repository.WorldviewRepository,
	writingStyles *repository.WritingStyleRepository,
	aiModels *repository.AIModelRepository,
	relay *Relay,
	logger *zap.Logger,
) *AIService {
	return &AIService{
		projects:      projects,
		worldviews:    worldviews,
		writingStyles: writingStyles,
		aiModels:      aiModels,
		relay:         relay,
		logger:        logger.Named("AIService"),
	}
}

// GetInitialPrompt компилирует промпт генерации плана по настройкам проекта.
func (s *AIService) GetInitialPrompt(ctx context.Context, req GenerationRequest) (*InitialPrompt, error) {
	prompt, err := s.buildPrompt(ctx, req)
	if err != nil {
		return nil, err
	}

	tokens := EstimateTokens(prompt)
	s.logger.Debug("compiled outline prompt",
		zap.Int64("project_id", req.ProjectID),
		zap.Int("estimated_tokens", tokens),
	)
	return &InitialPrompt{Prompt: prompt, EstimatedTokens: tokens}, nil
}

// GenerateOutlineStream запускает потоковую генерацию плана по готовому промпту.
func (s *AIService) GenerateOutlineStream(ctx context.Context, modelID int64, prompt string) (<-chan Event, error) {
	creds, err := s.credentials(ctx, modelID)
	if err != nil {
		return nil, err
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}
	return s.relay.Stream(ctx, creds, messages), nil
}

// GenerateOutline компилирует промпт и возвращает агрегированный результат
// генерации. Ошибка потока прерывает вызов без частичного результата.
func (s *AIService) GenerateOutline(ctx context.Context, req GenerationRequest) (string, error) {
	prompt, err := s.buildPrompt(ctx, req)
	if err != nil {
		return "", err
	}

	creds, err := s.credentials(ctx, req.AIModelID)
	if err != nil {
		return "", err
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}
	return s.relay.Collect(ctx, creds, messages)
}

// ChatStream запускает потоковую генерацию по истории диалога.
func (s *AIService) ChatStream(ctx context.Context, modelID int64, history []ChatMessage) (<-chan Event, error) {
	creds, err := s.credentials(ctx, modelID)
	if err != nil {
		return nil, err
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, message := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    message.Role,
			Content: message.Content,
		})
	}
	return s.relay.Stream(ctx, creds, messages), nil
}

// TestConnection проверяет сохраненные учетные данные подключения.
func (s *AIService) TestConnection(ctx context.Context, modelID int64) error {
	creds, err := s.credentials(ctx, modelID)
	if err != nil {
		return err
	}
	return s.relay.TestConnection(ctx, creds)
}

// buildPrompt загружает проект и опциональные настройки и компилирует промпт.
// Отсутствующий по переданному id сеттинг трактуется как пустой, отсутствие
// самого проекта - как models.ErrNotFound.
func (s *AIService) buildPrompt(ctx context.Context, req GenerationRequest) (string, error) {
	project, err := s.projects.Get(ctx, req.ProjectID)
	if err != nil {
		return "", err
	}

	worldview := models.JSONMap{}
	if req.WorldviewID != nil {
		entity, err := s.worldviews.Get(ctx, *req.WorldviewID)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return "", err
		}
		if entity != nil {
			worldview = worldviewMap(entity)
		}
	}

	writingStyle := models.JSONMap{}
	if req.WritingStyleID != nil {
		entity, err := s.writingStyles.Get(ctx, *req.WritingStyleID)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return "", err
		}
		if entity != nil {
			writingStyle = writingStyleMap(entity)
		}
	}

	return BuildOutlinePrompt(project.CoreConcept, worldview, writingStyle, req.TargetWordCount), nil
}

// credentials возвращает параметры подключения с расшифрованным ключом.
func (s *AIService) credentials(ctx context.Context, modelID int64) (Credentials, error) {
	model, err := s.aiModels.Get(ctx, modelID)
	if err != nil {
		return Credentials{}, err
	}

	apiKey, err := s.aiModels.DecryptedKey(ctx, modelID)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to prepare credentials: %w", err)
	}
	return Credentials{
		APIURL:    model.APIURL,
		APIKey:    apiKey,
		ModelName: model.ModelName,
	}, nil
}

func worldviewMap(w *models.Worldview) models.JSONMap {
	return models.JSONMap{
		"name":               w.Name,
		"description":        w.Description,
		"genre":              w.Genre,
		"time_period":        w.TimePeriod,
		"technology_level":   w.TechnologyLevel,
		"magic_system":       w.MagicSystem,
		"additional_details": w.AdditionalDetails,
	}
}

func writingStyleMap(ws *models.WritingStyle) models.JSONMap {
	return models.JSONMap{
		"name":            ws.Name,
		"description":     ws.Description,
		"tone":            ws.Tone,
		"point_of_view":   ws.PointOfView,
		"reference_works": ws.ReferenceWorks,
		"guidelines":      ws.Guidelines,
	}
}
