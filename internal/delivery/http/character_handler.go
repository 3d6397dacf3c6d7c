package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"novelforge-server/internal/models"
	"novelforge-server/internal/repository"
)

// CharacterCreateRequest - тело создания персонажа.
type CharacterCreateRequest struct {
	Name               string         `json:"name" binding:"required"`
	Gender             *string        `json:"gender"`
	Age                *int           `json:"age"`
	Occupation         *string        `json:"occupation"`
	BriefIntroduction  *string        `json:"brief_introduction"`
	PhysicalAttributes models.JSONMap `json:"physical_attributes"`
	PersonalityTraits  models.JSONMap `json:"personality_traits"`
	BackgroundStory    models.JSONMap `json:"background_story"`
	CustomFields       models.JSONMap `json:"custom_fields"`
	Relationships      models.JSONMap `json:"relationships"`
	CharacterArc       models.JSONMap `json:"character_arc"`
}

// CharacterUpdateRequest - тело частичного обновления персонажа.
// Пришедшие JSONB-карты объединяются с сохраненными по ключам.
type CharacterUpdateRequest struct {
	Name               *string        `json:"name"`
	Gender             *string        `json:"gender"`
	Age                *int           `json:"age"`
	Occupation         *string        `json:"occupation"`
	BriefIntroduction  *string        `json:"brief_introduction"`
	PhysicalAttributes models.JSONMap `json:"physical_attributes"`
	PersonalityTraits  models.JSONMap `json:"personality_traits"`
	BackgroundStory    models.JSONMap `json:"background_story"`
	CustomFields       models.JSONMap `json:"custom_fields"`
	Relationships      models.JSONMap `json:"relationships"`
	CharacterArc       models.JSONMap `json:"character_arc"`
}

func characterJSONFields(fields repository.Fields, physical, personality, background, custom, relationships, arc models.JSONMap) repository.Fields {
	fields = setJSON(fields, "physical_attributes", physical)
	fields = setJSON(fields, "personality_traits", personality)
	fields = setJSON(fields, "background_story", background)
	fields = setJSON(fields, "custom_fields", custom)
	fields = setJSON(fields, "relationships", relationships)
	fields = setJSON(fields, "character_arc", arc)
	return fields
}

func (h *Handler) createCharacter(c *gin.Context) {
	var req CharacterCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := repository.Fields{}.Set("name", req.Name)
	fields = setString(fields, "gender", req.Gender)
	fields = setInt(fields, "age", req.Age)
	fields = setString(fields, "occupation", req.Occupation)
	fields = setString(fields, "brief_introduction", req.BriefIntroduction)
	fields = characterJSONFields(fields,
		req.PhysicalAttributes, req.PersonalityTraits, req.BackgroundStory,
		req.CustomFields, req.Relationships, req.CharacterArc)

	character, err := h.deps.Characters.Create(c.Request.Context(), fields)
	if err != nil {
		h.handleServiceError(c, err, "Character")
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *Handler) listCharacters(c *gin.Context) {
	skip, limit := parsePage(c)
	characters, err := h.deps.Characters.List(c.Request.Context(), skip, limit)
	if err != nil {
		h.handleServiceError(c, err, "Character")
		return
	}
	c.JSON(http.StatusOK, characters)
}

func (h *Handler) getCharacter(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	character, err := h.deps.Characters.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Character")
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *Handler) updateCharacter(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req CharacterUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := repository.Fields{}
	fields = setString(fields, "name", req.Name)
	fields = setString(fields, "gender", req.Gender)
	fields = setInt(fields, "age", req.Age)
	fields = setString(fields, "occupation", req.Occupation)
	fields = setString(fields, "brief_introduction", req.BriefIntroduction)
	fields = characterJSONFields(fields,
		req.PhysicalAttributes, req.PersonalityTraits, req.BackgroundStory,
		req.CustomFields, req.Relationships, req.CharacterArc)

	character, err := h.deps.Characters.Update(c.Request.Context(), id, fields)
	if err != nil {
		h.handleServiceError(c, err, "Character")
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *Handler) deleteCharacter(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	character, err := h.deps.Characters.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Character")
		return
	}
	c.JSON(http.StatusOK, character)
}
