package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"novelforge-server/internal/models"
	"novelforge-server/internal/repository"
)

// OutlineNodeCreateRequest - тело создания узла плана.
type OutlineNodeCreateRequest struct {
	Title            *string `json:"title"`
	ContentBrief     *string `json:"content_brief"`
	GeneratedContent *string `json:"generated_content"`
	WordCountTarget  *int    `json:"word_count_target"`
	Status           *string `json:"status"`
	ProjectID        int64   `json:"project_id" binding:"required"`
	ParentID         *int64  `json:"parent_id"`
	NodeOrder        *int    `json:"node_order"`
}

// OutlineNodeUpdateRequest - тело частичного обновления узла плана.
type OutlineNodeUpdateRequest struct {
	Title            *string `json:"title"`
	ContentBrief     *string `json:"content_brief"`
	GeneratedContent *string `json:"generated_content"`
	WordCountTarget  *int    `json:"word_count_target"`
	Status           *string `json:"status"`
	ParentID         *int64  `json:"parent_id"`
	NodeOrder        *int    `json:"node_order"`
}

func validStatus(c *gin.Context, status *string) bool {
	if status != nil && !models.ValidNodeStatus(models.NodeStatus(*status)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status: " + *status})
		return false
	}
	return true
}

func (h *Handler) createOutlineNode(c *gin.Context) {
	var req OutlineNodeCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	if !validStatus(c, req.Status) {
		return
	}

	fields := repository.Fields{}.Set("project_id", req.ProjectID)
	fields = setString(fields, "title", req.Title)
	fields = setString(fields, "content_brief", req.ContentBrief)
	fields = setString(fields, "generated_content", req.GeneratedContent)
	fields = setInt(fields, "word_count_target", req.WordCountTarget)
	fields = setString(fields, "status", req.Status)
	fields = setInt64(fields, "parent_id", req.ParentID)
	fields = setInt(fields, "node_order", req.NodeOrder)

	node, err := h.deps.Outlines.Create(c.Request.Context(), fields)
	if err != nil {
		h.handleServiceError(c, err, "Outline node")
		return
	}
	c.JSON(http.StatusOK, node)
}

func (h *Handler) listOutlineNodes(c *gin.Context) {
	skip, limit := parsePage(c)
	nodes, err := h.deps.Outlines.List(c.Request.Context(), skip, limit)
	if err != nil {
		h.handleServiceError(c, err, "Outline node")
		return
	}
	c.JSON(http.StatusOK, nodes)
}

func (h *Handler) getOutlineNode(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	node, err := h.deps.Outlines.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Outline node")
		return
	}
	c.JSON(http.StatusOK, node)
}

// getOutlineTree возвращает узлы проекта как лес, упорядоченный по node_order.
func (h *Handler) getOutlineTree(c *gin.Context) {
	projectID, ok := parseID(c, "project_id")
	if !ok {
		return
	}

	forest, err := h.deps.Outlines.GetForestByProject(c.Request.Context(), projectID)
	if err != nil {
		h.handleServiceError(c, err, "Outline node")
		return
	}
	c.JSON(http.StatusOK, forest)
}

func (h *Handler) updateOutlineNode(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req OutlineNodeUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	if !validStatus(c, req.Status) {
		return
	}

	fields := repository.Fields{}
	fields = setString(fields, "title", req.Title)
	fields = setString(fields, "content_brief", req.ContentBrief)
	fields = setString(fields, "generated_content", req.GeneratedContent)
	fields = setInt(fields, "word_count_target", req.WordCountTarget)
	fields = setString(fields, "status", req.Status)
	fields = setInt64(fields, "parent_id", req.ParentID)
	fields = setInt(fields, "node_order", req.NodeOrder)

	node, err := h.deps.Outlines.Update(c.Request.Context(), id, fields)
	if err != nil {
		h.handleServiceError(c, err, "Outline node")
		return
	}
	c.JSON(http.StatusOK, node)
}

func (h *Handler) deleteOutlineNode(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	node, err := h.deps.Outlines.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Outline node")
		return
	}
	c.JSON(http.StatusOK, node)
}
