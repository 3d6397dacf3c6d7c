package repository

import (
	"go.uber.org/zap"

	"novelforge-server/internal/models"
)

var projectSchema = Schema{
	Table:   "projects",
	Columns: []string{"id", "name", "description", "book_title", "core_concept"},
}

// ProjectRepository - хранилище проектов. Полностью покрывается общим движком.
type ProjectRepository struct {
	*CRUD[models.Project]
}

// NewProjectRepository создает новый экземпляр ProjectRepository.
func NewProjectRepository(db DBTX, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{
		CRUD: NewCRUD[models.Project](db, projectSchema, logger.Named("ProjectRepo")),
	}
}
