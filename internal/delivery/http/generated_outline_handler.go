package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"novelforge-server/internal/models"
	"novelforge-server/internal/repository"
)

// GeneratedOutlineCreateRequest - тело сохранения версии плана.
type GeneratedOutlineCreateRequest struct {
	ProjectID        int64          `json:"project_id" binding:"required"`
	VersionName      *string        `json:"version_name"`
	TargetWordCount  *int           `json:"target_word_count"`
	WorldviewID      *int64         `json:"worldview_id"`
	WritingStyleID   *int64         `json:"writing_style_id"`
	SettingsSnapshot models.JSONMap `json:"settings_snapshot"`
	OutlineData      models.JSONMap `json:"outline_data" binding:"required"`
}

func (h *Handler) createGeneratedOutline(c *gin.Context) {
	var req GeneratedOutlineCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := repository.Fields{}.
		Set("project_id", req.ProjectID).
		Set("outline_data", req.OutlineData)
	fields = setString(fields, "version_name", req.VersionName)
	fields = setInt(fields, "target_word_count", req.TargetWordCount)
	fields = setInt64(fields, "worldview_id", req.WorldviewID)
	fields = setInt64(fields, "writing_style_id", req.WritingStyleID)
	fields = setJSON(fields, "settings_snapshot", req.SettingsSnapshot)

	outline, err := h.deps.GeneratedOutlines.Create(c.Request.Context(), fields)
	if err != nil {
		h.handleServiceError(c, err, "Generated outline")
		return
	}
	c.JSON(http.StatusOK, outline)
}

// listGeneratedOutlines возвращает версии плана проекта от новых к старым.
func (h *Handler) listGeneratedOutlines(c *gin.Context) {
	projectID, ok := parseID(c, "project_id")
	if !ok {
		return
	}
	skip, limit := parsePage(c)

	outlines, err := h.deps.GeneratedOutlines.ListByProject(c.Request.Context(), projectID, skip, limit)
	if err != nil {
		h.handleServiceError(c, err, "Generated outline")
		return
	}
	c.JSON(http.StatusOK, outlines)
}

func (h *Handler) getGeneratedOutline(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	outline, err := h.deps.GeneratedOutlines.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Generated outline")
		return
	}
	c.JSON(http.StatusOK, outline)
}

func (h *Handler) deleteGeneratedOutline(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	outline, err := h.deps.GeneratedOutlines.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Generated outline")
		return
	}
	c.JSON(http.StatusOK, outline)
}
