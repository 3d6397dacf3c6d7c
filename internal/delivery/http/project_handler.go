package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"novelforge-server/internal/repository"
)

// ProjectCreateRequest - тело создания проекта.
type ProjectCreateRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	BookTitle   *string `json:"book_title"`
	CoreConcept *string `json:"core_concept"`
}

// ProjectUpdateRequest - тело частичного обновления проекта.
// Поля-указатели: отсутствующее поле не затрагивается.
type ProjectUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	BookTitle   *string `json:"book_title"`
	CoreConcept *string `json:"core_concept"`
}

func (h *Handler) createProject(c *gin.Context) {
	var req ProjectCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := repository.Fields{}.Set("name", req.Name)
	fields = setString(fields, "description", req.Description)
	fields = setString(fields, "book_title", req.BookTitle)
	fields = setString(fields, "core_concept", req.CoreConcept)

	project, err := h.deps.Projects.Create(c.Request.Context(), fields)
	if err != nil {
		h.handleServiceError(c, err, "Project")
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) listProjects(c *gin.Context) {
	skip, limit := parsePage(c)
	projects, err := h.deps.Projects.List(c.Request.Context(), skip, limit)
	if err != nil {
		h.handleServiceError(c, err, "Project")
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *Handler) getProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	project, err := h.deps.Projects.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Project")
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) updateProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req ProjectUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := repository.Fields{}
	fields = setString(fields, "name", req.Name)
	fields = setString(fields, "description", req.Description)
	fields = setString(fields, "book_title", req.BookTitle)
	fields = setString(fields, "core_concept", req.CoreConcept)

	project, err := h.deps.Projects.Update(c.Request.Context(), id, fields)
	if err != nil {
		h.handleServiceError(c, err, "Project")
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) deleteProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	project, err := h.deps.Projects.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Project")
		return
	}
	c.JSON(http.StatusOK, project)
}
