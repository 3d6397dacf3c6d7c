package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"novelforge-server/internal/models"
	"novelforge-server/internal/repository"
)

// AIModelCreateRequest - тело создания подключения к внешней модели.
type AIModelCreateRequest struct {
	Name      string  `json:"name" binding:"required"`
	APIURL    string  `json:"api_url" binding:"required"`
	APIKey    string  `json:"api_key"`
	ModelName string  `json:"model_name" binding:"required"`
	ModelType *string `json:"model_type"`
}

// AIModelUpdateRequest - тело частичного обновления подключения.
// Приход маски в api_key оставляет сохраненный ключ без изменений.
type AIModelUpdateRequest struct {
	Name      *string `json:"name"`
	APIURL    *string `json:"api_url"`
	APIKey    *string `json:"api_key"`
	ModelName *string `json:"model_name"`
	ModelType *string `json:"model_type"`
}

// maskAIModel подменяет ключ маской перед отдачей клиенту.
// Ни зашифрованный, ни открытый ключ наружу не выходят.
func maskAIModel(model *models.AIModel) *models.AIModel {
	masked := *model
	masked.APIKey = repository.APIKeyMask
	return &masked
}

func validModelType(c *gin.Context, modelType *string) bool {
	if modelType != nil && !models.ValidModelType(models.ModelType(*modelType)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid model_type: " + *modelType})
		return false
	}
	return true
}

func (h *Handler) createAIModel(c *gin.Context) {
	var req AIModelCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	if !validModelType(c, req.ModelType) {
		return
	}

	fields := repository.Fields{}.
		Set("name", req.Name).
		Set("api_url", req.APIURL).
		Set("api_key", req.APIKey).
		Set("model_name", req.ModelName)
	fields = setString(fields, "model_type", req.ModelType)

	model, err := h.deps.AIModels.Create(c.Request.Context(), fields)
	if err != nil {
		h.handleServiceError(c, err, "AI Model")
		return
	}
	c.JSON(http.StatusOK, maskAIModel(model))
}

func (h *Handler) listAIModels(c *gin.Context) {
	skip, limit := parsePage(c)
	list, err := h.deps.AIModels.List(c.Request.Context(), skip, limit)
	if err != nil {
		h.handleServiceError(c, err, "AI Model")
		return
	}

	masked := make([]*models.AIModel, 0, len(list))
	for i := range list {
		masked = append(masked, maskAIModel(&list[i]))
	}
	c.JSON(http.StatusOK, masked)
}

func (h *Handler) getAIModel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	model, err := h.deps.AIModels.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "AI Model")
		return
	}
	c.JSON(http.StatusOK, maskAIModel(model))
}

func (h *Handler) updateAIModel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req AIModelUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	if !validModelType(c, req.ModelType) {
		return
	}

	fields := repository.Fields{}
	fields = setString(fields, "name", req.Name)
	fields = setString(fields, "api_url", req.APIURL)
	fields = setString(fields, "api_key", req.APIKey)
	fields = setString(fields, "model_name", req.ModelName)
	fields = setString(fields, "model_type", req.ModelType)

	model, err := h.deps.AIModels.Update(c.Request.Context(), id, fields)
	if err != nil {
		h.handleServiceError(c, err, "AI Model")
		return
	}
	c.JSON(http.StatusOK, maskAIModel(model))
}

func (h *Handler) deleteAIModel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	model, err := h.deps.AIModels.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "AI Model")
		return
	}
	c.JSON(http.StatusOK, maskAIModel(model))
}

// testAIModelConnection проверяет сохраненные учетные данные подключения.
func (h *Handler) testAIModelConnection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.deps.AI.TestConnection(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err, "AI Model")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Connection successful"})
}
