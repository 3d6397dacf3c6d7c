package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"novelforge-server/internal/models"
	"novelforge-server/internal/repository"
	"novelforge-server/internal/service"
)

// fakeStore - настраиваемая заглушка Store[T] для тестов обработчиков.
type fakeStore[T any] struct {
	entity    *T
	list      []T
	err       error
	gotFields repository.Fields
	gotID     int64
	gotSkip   int
	gotLimit  int
}

func (f *fakeStore[T]) Get(_ context.Context, id int64) (*T, error) {
	f.gotID = id
	return f.entity, f.err
}

func (f *fakeStore[T]) List(_ context.Context, skip, limit int) ([]T, error) {
	f.gotSkip, f.gotLimit = skip, limit
	return f.list, f.err
}

func (f *fakeStore[T]) Create(_ context.Context, fields repository.Fields) (*T, error) {
	f.gotFields = fields
	return f.entity, f.err
}

func (f *fakeStore[T]) Update(_ context.Context, id int64, fields repository.Fields) (*T, error) {
	f.gotID, f.gotFields = id, fields
	return f.entity, f.err
}

func (f *fakeStore[T]) Delete(_ context.Context, id int64) (*T, error) {
	f.gotID = id
	return f.entity, f.err
}

type fakeOutlineStore struct {
	fakeStore[models.OutlineNode]
	forest []*models.OutlineNode
}

func (f *fakeOutlineStore) GetForestByProject(_ context.Context, projectID int64) ([]*models.OutlineNode, error) {
	f.gotID = projectID
	return f.forest, f.err
}

type fakeAI struct {
	events        []service.Event
	connectionErr error
	generateErr   error
	gotModelID    int64
	gotPrompt     string
}

func (f *fakeAI) GetInitialPrompt(_ context.Context, req service.GenerationRequest) (*service.InitialPrompt, error) {
	return &service.InitialPrompt{Prompt: "compiled", EstimatedTokens: 3}, nil
}

func (f *fakeAI) GenerateOutlineStream(_ context.Context, modelID int64, prompt string) (<-chan service.Event, error) {
	f.gotModelID, f.gotPrompt = modelID, prompt
	return f.eventChannel(), nil
}

func (f *fakeAI) GenerateOutline(_ context.Context, req service.GenerationRequest) (string, error) {
	if f.generateErr != nil {
		return "", f.generateErr
	}
	return "aggregated", nil
}

func (f *fakeAI) ChatStream(_ context.Context, modelID int64, history []service.ChatMessage) (<-chan service.Event, error) {
	f.gotModelID = modelID
	return f.eventChannel(), nil
}

func (f *fakeAI) TestConnection(_ context.Context, modelID int64) error {
	f.gotModelID = modelID
	return f.connectionErr
}

func (f *fakeAI) eventChannel() <-chan service.Event {
	events := make(chan service.Event, len(f.events))
	for _, event := range f.events {
		events <- event
	}
	close(events)
	return events
}

func newTestRouter(deps Deps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	router := gin.New()
	NewHandler(deps).RegisterRoutes(router.Group("/api"))
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestNotFoundMapping(t *testing.T) {
	projects := &fakeStore[models.Project]{err: models.ErrNotFound}
	router := newTestRouter(Deps{Projects: projects})

	recorder := doRequest(t, router, http.MethodGet, "/api/projects/42", nil)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.JSONEq(t, `{"error":"Project not found"}`, recorder.Body.String())
	assert.Equal(t, int64(42), projects.gotID)
}

func TestCreateReturns200(t *testing.T) {
	projects := &fakeStore[models.Project]{entity: &models.Project{ID: 1, Name: "Новый роман"}}
	characters := &fakeStore[models.Character]{entity: &models.Character{ID: 2, Name: "Герой"}}
	router := newTestRouter(Deps{Projects: projects, Characters: characters})

	t.Run("Project", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPost, "/api/projects",
			gin.H{"name": "Новый роман"})

		assert.Equal(t, http.StatusOK, recorder.Code)

		var got models.Project
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
		assert.Equal(t, int64(1), got.ID)
	})

	t.Run("Character", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPost, "/api/characters",
			gin.H{"name": "Герой"})

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

func TestInvalidIDRejected(t *testing.T) {
	router := newTestRouter(Deps{Projects: &fakeStore[models.Project]{}})

	recorder := doRequest(t, router, http.MethodGet, "/api/projects/abc", nil)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestPartialUpdateForwardsOnlyPresentFields(t *testing.T) {
	projects := &fakeStore[models.Project]{entity: &models.Project{ID: 1, Name: "New"}}
	router := newTestRouter(Deps{Projects: projects})

	recorder := doRequest(t, router, http.MethodPut, "/api/projects/1",
		gin.H{"name": "New"})

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.Len(t, projects.gotFields, 1)
	assert.Equal(t, "name", projects.gotFields[0].Column)
	assert.Equal(t, "New", projects.gotFields[0].Value)
}

func TestCharacterUpdateForwardsJSONMaps(t *testing.T) {
	characters := &fakeStore[models.Character]{entity: &models.Character{ID: 7}}
	router := newTestRouter(Deps{Characters: characters})

	recorder := doRequest(t, router, http.MethodPut, "/api/characters/7",
		gin.H{"custom_fields": gin.H{"eye_color": "green"}})

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.Len(t, characters.gotFields, 1)
	assert.Equal(t, "custom_fields", characters.gotFields[0].Column)
}

func TestAIModelResponsesMasked(t *testing.T) {
	model := models.AIModel{ID: 1, Name: "gpt", APIKey: "encrypted-blob", ModelName: "gpt-4o"}
	aiModels := &fakeStore[models.AIModel]{entity: &model, list: []models.AIModel{model}}
	router := newTestRouter(Deps{AIModels: aiModels})

	t.Run("Get", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodGet, "/api/settings/ai-models/1", nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var got models.AIModel
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
		assert.Equal(t, repository.APIKeyMask, got.APIKey)
	})

	t.Run("List", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodGet, "/api/settings/ai-models", nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var got []models.AIModel
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, repository.APIKeyMask, got[0].APIKey)
	})
}

func TestTestConnectionFailureIs400(t *testing.T) {
	ai := &fakeAI{connectionErr: service.ErrConnectionFailed}
	router := newTestRouter(Deps{AIModels: &fakeStore[models.AIModel]{}, AI: ai})

	recorder := doRequest(t, router, http.MethodPost, "/api/settings/ai-models/5/test-connection", nil)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, int64(5), ai.gotModelID)
}

func TestOutlineTreeEndpoint(t *testing.T) {
	child := &models.OutlineNode{ID: 2, ProjectID: 3, NodeOrder: 0, Children: []*models.OutlineNode{}}
	root := &models.OutlineNode{ID: 1, ProjectID: 3, NodeOrder: 0, Children: []*models.OutlineNode{child}}
	outlines := &fakeOutlineStore{forest: []*models.OutlineNode{root}}
	router := newTestRouter(Deps{Outlines: outlines})

	recorder := doRequest(t, router, http.MethodGet, "/api/outline-nodes/project/3", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, int64(3), outlines.gotID)

	var forest []models.OutlineNode
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &forest))
	require.Len(t, forest, 1)
	require.Len(t, forest[0].Children, 1)
	assert.Equal(t, int64(2), forest[0].Children[0].ID)
}

func TestSSEFraming(t *testing.T) {
	ai := &fakeAI{events: []service.Event{
		{Type: service.EventReasoning, Chunk: "think"},
		{Type: service.EventContent, Chunk: "Hi"},
		{Type: service.EventError, Message: "boom"},
	}}
	router := newTestRouter(Deps{AI: ai})

	recorder := doRequest(t, router, http.MethodPost, "/api/ai/generate-outline-stream",
		gin.H{"ai_model_id": 1, "prompt": "go"})

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "text/event-stream", recorder.Header().Get("Content-Type"))

	expected := "event: reasoning\ndata: {\"chunk\":\"think\"}\n\n" +
		"event: content\ndata: {\"chunk\":\"Hi\"}\n\n" +
		"event: error\ndata: {\"error\":\"boom\"}\n\n"
	assert.Equal(t, expected, recorder.Body.String())
	assert.Equal(t, "go", ai.gotPrompt)
}

func TestGenerateOutlineAggregated(t *testing.T) {
	router := newTestRouter(Deps{AI: &fakeAI{}})

	recorder := doRequest(t, router, http.MethodPost, "/api/ai/generate-outline",
		gin.H{"project_id": 1, "ai_model_id": 2, "target_word_count": 500})

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"success","outline":"aggregated"}`, recorder.Body.String())
}

func TestGenerationFailureSurfacesDetail(t *testing.T) {
	ai := &fakeAI{generateErr: fmt.Errorf("%w: upstream rejected the request", service.ErrGenerationFailed)}
	router := newTestRouter(Deps{AI: ai})

	recorder := doRequest(t, router, http.MethodPost, "/api/ai/generate-outline",
		gin.H{"project_id": 1, "ai_model_id": 2, "target_word_count": 500})

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.JSONEq(t, `{"error":"ai generation failed: upstream rejected the request"}`, recorder.Body.String())
}

func TestOutlineNodeStatusValidated(t *testing.T) {
	router := newTestRouter(Deps{Outlines: &fakeOutlineStore{}})

	recorder := doRequest(t, router, http.MethodPost, "/api/outline-nodes",
		gin.H{"project_id": 1, "status": "half-done"})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
