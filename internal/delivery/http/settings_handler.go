package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"novelforge-server/internal/models"
	"novelforge-server/internal/repository"
)

// --- Worldviews ---

// WorldviewCreateRequest - тело создания сеттинга мира.
type WorldviewCreateRequest struct {
	Name              string         `json:"name" binding:"required"`
	Description       *string        `json:"description"`
	Genre             *string        `json:"genre"`
	TimePeriod        *string        `json:"time_period"`
	TechnologyLevel   *string        `json:"technology_level"`
	MagicSystem       *string        `json:"magic_system"`
	AdditionalDetails models.JSONMap `json:"additional_details"`
}

// WorldviewUpdateRequest - тело частичного обновления сеттинга мира.
type WorldviewUpdateRequest struct {
	Name              *string        `json:"name"`
	Description       *string        `json:"description"`
	Genre             *string        `json:"genre"`
	TimePeriod        *string        `json:"time_period"`
	TechnologyLevel   *string        `json:"technology_level"`
	MagicSystem       *string        `json:"magic_system"`
	AdditionalDetails models.JSONMap `json:"additional_details"`
}

func (h *Handler) createWorldview(c *gin.Context) {
	var req WorldviewCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := repository.Fields{}.Set("name", req.Name)
	fields = setString(fields, "description", req.Description)
	fields = setString(fields, "genre", req.Genre)
	fields = setString(fields, "time_period", req.TimePeriod)
	fields = setString(fields, "technology_level", req.TechnologyLevel)
	fields = setString(fields, "magic_system", req.MagicSystem)
	fields = setJSON(fields, "additional_details", req.AdditionalDetails)

	worldview, err := h.deps.Worldviews.Create(c.Request.Context(), fields)
	if err != nil {
		h.handleServiceError(c, err, "Worldview")
		return
	}
	c.JSON(http.StatusOK, worldview)
}

func (h *Handler) listWorldviews(c *gin.Context) {
	skip, limit := parsePage(c)
	worldviews, err := h.deps.Worldviews.List(c.Request.Context(), skip, limit)
	if err != nil {
		h.handleServiceError(c, err, "Worldview")
		return
	}
	c.JSON(http.StatusOK, worldviews)
}

func (h *Handler) getWorldview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	worldview, err := h.deps.Worldviews.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Worldview")
		return
	}
	c.JSON(http.StatusOK, worldview)
}

func (h *Handler) updateWorldview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req WorldviewUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := repository.Fields{}
	fields = setString(fields, "name", req.Name)
	fields = setString(fields, "description", req.Description)
	fields = setString(fields, "genre", req.Genre)
	fields = setString(fields, "time_period", req.TimePeriod)
	fields = setString(fields, "technology_level", req.TechnologyLevel)
	fields = setString(fields, "magic_system", req.MagicSystem)
	fields = setJSON(fields, "additional_details", req.AdditionalDetails)

	worldview, err := h.deps.Worldviews.Update(c.Request.Context(), id, fields)
	if err != nil {
		h.handleServiceError(c, err, "Worldview")
		return
	}
	c.JSON(http.StatusOK, worldview)
}

func (h *Handler) deleteWorldview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	worldview, err := h.deps.Worldviews.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Worldview")
		return
	}
	c.JSON(http.StatusOK, worldview)
}

// --- Writing styles ---

// WritingStyleCreateRequest - тело создания стиля письма.
type WritingStyleCreateRequest struct {
	Name           string         `json:"name" binding:"required"`
	Description    *string        `json:"description"`
	Tone           []string       `json:"tone"`
	PointOfView    *string        `json:"point_of_view"`
	ReferenceWorks *string        `json:"reference_works"`
	Guidelines     models.JSONMap `json:"guidelines"`
}

// WritingStyleUpdateRequest - тело частичного обновления стиля письма.
type WritingStyleUpdateRequest struct {
	Name           *string        `json:"name"`
	Description    *string        `json:"description"`
	Tone           []string       `json:"tone"`
	PointOfView    *string        `json:"point_of_view"`
	ReferenceWorks *string        `json:"reference_works"`
	Guidelines     models.JSONMap `json:"guidelines"`
}

func (h *Handler) createWritingStyle(c *gin.Context) {
	var req WritingStyleCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := repository.Fields{}.Set("name", req.Name)
	fields = setString(fields, "description", req.Description)
	fields = setStrings(fields, "tone", req.Tone)
	fields = setString(fields, "point_of_view", req.PointOfView)
	fields = setString(fields, "reference_works", req.ReferenceWorks)
	fields = setJSON(fields, "guidelines", req.Guidelines)

	style, err := h.deps.WritingStyles.Create(c.Request.Context(), fields)
	if err != nil {
		h.handleServiceError(c, err, "Writing style")
		return
	}
	c.JSON(http.StatusOK, style)
}

func (h *Handler) listWritingStyles(c *gin.Context) {
	skip, limit := parsePage(c)
	styles, err := h.deps.WritingStyles.List(c.Request.Context(), skip, limit)
	if err != nil {
		h.handleServiceError(c, err, "Writing style")
		return
	}
	c.JSON(http.StatusOK, styles)
}

func (h *Handler) getWritingStyle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	style, err := h.deps.WritingStyles.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Writing style")
		return
	}
	c.JSON(http.StatusOK, style)
}

func (h *Handler) updateWritingStyle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req WritingStyleUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := repository.Fields{}
	fields = setString(fields, "name", req.Name)
	fields = setString(fields, "description", req.Description)
	fields = setStrings(fields, "tone", req.Tone)
	fields = setString(fields, "point_of_view", req.PointOfView)
	fields = setString(fields, "reference_works", req.ReferenceWorks)
	fields = setJSON(fields, "guidelines", req.Guidelines)

	style, err := h.deps.WritingStyles.Update(c.Request.Context(), id, fields)
	if err != nil {
		h.handleServiceError(c, err, "Writing style")
		return
	}
	c.JSON(http.StatusOK, style)
}

func (h *Handler) deleteWritingStyle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	style, err := h.deps.WritingStyles.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Writing style")
		return
	}
	c.JSON(http.StatusOK, style)
}

// --- Prompt templates ---

// PromptTemplateCreateRequest - тело создания шаблона промпта.
type PromptTemplateCreateRequest struct {
	Name         string         `json:"name" binding:"required"`
	Description  *string        `json:"description"`
	Category     *string        `json:"category"`
	TemplateText string         `json:"template_text" binding:"required"`
	Variables    models.JSONMap `json:"variables"`
}

// PromptTemplateUpdateRequest - тело частичного обновления шаблона промпта.
type PromptTemplateUpdateRequest struct {
	Name         *string        `json:"name"`
	Description  *string        `json:"description"`
	Category     *string        `json:"category"`
	TemplateText *string        `json:"template_text"`
	Variables    models.JSONMap `json:"variables"`
}

func validCategory(c *gin.Context, category *string) bool {
	if category != nil && !models.ValidTemplateCategory(models.TemplateCategory(*category)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category: " + *category})
		return false
	}
	return true
}

func (h *Handler) createPromptTemplate(c *gin.Context) {
	var req PromptTemplateCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	if !validCategory(c, req.Category) {
		return
	}

	fields := repository.Fields{}.Set("name", req.Name).Set("template_text", req.TemplateText)
	fields = setString(fields, "description", req.Description)
	fields = setString(fields, "category", req.Category)
	fields = setJSON(fields, "variables", req.Variables)

	template, err := h.deps.PromptTemplates.Create(c.Request.Context(), fields)
	if err != nil {
		h.handleServiceError(c, err, "Prompt template")
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *Handler) listPromptTemplates(c *gin.Context) {
	skip, limit := parsePage(c)
	templates, err := h.deps.PromptTemplates.List(c.Request.Context(), skip, limit)
	if err != nil {
		h.handleServiceError(c, err, "Prompt template")
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (h *Handler) getPromptTemplate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	template, err := h.deps.PromptTemplates.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Prompt template")
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *Handler) updatePromptTemplate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req PromptTemplateUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	if !validCategory(c, req.Category) {
		return
	}

	fields := repository.Fields{}
	fields = setString(fields, "name", req.Name)
	fields = setString(fields, "description", req.Description)
	fields = setString(fields, "category", req.Category)
	fields = setString(fields, "template_text", req.TemplateText)
	fields = setJSON(fields, "variables", req.Variables)

	template, err := h.deps.PromptTemplates.Update(c.Request.Context(), id, fields)
	if err != nil {
		h.handleServiceError(c, err, "Prompt template")
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *Handler) deletePromptTemplate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	template, err := h.deps.PromptTemplates.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Prompt template")
		return
	}
	c.JSON(http.StatusOK, template)
}

// --- Prompt presets ---

// PromptPresetCreateRequest - тело создания пресета промпта.
type PromptPresetCreateRequest struct {
	Name              string  `json:"name" binding:"required"`
	SystemPrompt      *string `json:"system_prompt"`
	CotGuidance       *string `json:"cot_guidance"`
	OtherInstructions *string `json:"other_instructions"`
}

// PromptPresetUpdateRequest - тело частичного обновления пресета промпта.
type PromptPresetUpdateRequest struct {
	Name              *string `json:"name"`
	SystemPrompt      *string `json:"system_prompt"`
	CotGuidance       *string `json:"cot_guidance"`
	OtherInstructions *string `json:"other_instructions"`
}

func (h *Handler) createPromptPreset(c *gin.Context) {
	var req PromptPresetCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := repository.Fields{}.Set("name", req.Name)
	fields = setString(fields, "system_prompt", req.SystemPrompt)
	fields = setString(fields, "cot_guidance", req.CotGuidance)
	fields = setString(fields, "other_instructions", req.OtherInstructions)

	preset, err := h.deps.PromptPresets.Create(c.Request.Context(), fields)
	if err != nil {
		h.handleServiceError(c, err, "Prompt preset")
		return
	}
	c.JSON(http.StatusOK, preset)
}

func (h *Handler) listPromptPresets(c *gin.Context) {
	skip, limit := parsePage(c)
	presets, err := h.deps.PromptPresets.List(c.Request.Context(), skip, limit)
	if err != nil {
		h.handleServiceError(c, err, "Prompt preset")
		return
	}
	c.JSON(http.StatusOK, presets)
}

func (h *Handler) getPromptPreset(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	preset, err := h.deps.PromptPresets.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Prompt preset")
		return
	}
	c.JSON(http.StatusOK, preset)
}

func (h *Handler) updatePromptPreset(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req PromptPresetUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := repository.Fields{}
	fields = setString(fields, "name", req.Name)
	fields = setString(fields, "system_prompt", req.SystemPrompt)
	fields = setString(fields, "cot_guidance", req.CotGuidance)
	fields = setString(fields, "other_instructions", req.OtherInstructions)

	preset, err := h.deps.PromptPresets.Update(c.Request.Context(), id, fields)
	if err != nil {
		h.handleServiceError(c, err, "Prompt preset")
		return
	}
	c.JSON(http.StatusOK, preset)
}

func (h *Handler) deletePromptPreset(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	preset, err := h.deps.PromptPresets.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Prompt preset")
		return
	}
	c.JSON(http.StatusOK, preset)
}
