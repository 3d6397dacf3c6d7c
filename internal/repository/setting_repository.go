package repository

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"go.uber.org/zap"

	"novelforge-server/internal/models"
)

var worldviewSchema = Schema{
	Table: "worldviews",
	Columns: []string{
		"id", "name", "description", "genre", "time_period",
		"technology_level", "magic_system", "additional_details",
	},
	Mergeable: map[string]bool{"additional_details": true},
}

// WorldviewRepository - хранилище сеттингов мира.
type WorldviewRepository struct {
	*CRUD[models.Worldview]
}

// NewWorldviewRepository создает новый экземпляр WorldviewRepository.
func NewWorldviewRepository(db DBTX, logger *zap.Logger) *WorldviewRepository {
	return &WorldviewRepository{
		CRUD: NewCRUD[models.Worldview](db, worldviewSchema, logger.Named("WorldviewRepo")),
	}
}

var writingStyleSchema = Schema{
	Table: "writing_styles",
	Columns: []string{
		"id", "name", "description", "tone", "point_of_view",
		"reference_works", "guidelines",
	},
	Mergeable: map[string]bool{"guidelines": true},
}

// WritingStyleRepository - хранилище стилей письма.
type WritingStyleRepository struct {
	*CRUD[models.WritingStyle]
}

// NewWritingStyleRepository создает новый экземпляр WritingStyleRepository.
func NewWritingStyleRepository(db DBTX, logger *zap.Logger) *WritingStyleRepository {
	return &WritingStyleRepository{
		CRUD: NewCRUD[models.WritingStyle](db, writingStyleSchema, logger.Named("WritingStyleRepo")),
	}
}

var promptTemplateSchema = Schema{
	Table: "prompt_templates",
	Columns: []string{
		"id", "name", "description", "category", "template_text", "variables",
	},
	Mergeable: map[string]bool{"variables": true},
}

// PromptTemplateRepository - хранилище шаблонов промптов.
type PromptTemplateRepository struct {
	*CRUD[models.PromptTemplate]
}

// NewPromptTemplateRepository создает новый экземпляр PromptTemplateRepository.
func NewPromptTemplateRepository(db DBTX, logger *zap.Logger) *PromptTemplateRepository {
	return &PromptTemplateRepository{
		CRUD: NewCRUD[models.PromptTemplate](db, promptTemplateSchema, logger.Named("PromptTemplateRepo")),
	}
}

var generatedOutlineSchema = Schema{
	Table: "generated_outlines",
	Columns: []string{
		"id", "project_id", "version_name", "target_word_count",
		"worldview_id", "writing_style_id", "settings_snapshot",
		"outline_data", "created_at",
	},
}

// GeneratedOutlineRepository - хранилище сохраненных версий плана.
// Версии неизменяемы: их создают, читают и удаляют, но не редактируют.
type GeneratedOutlineRepository struct {
	*CRUD[models.GeneratedOutline]
	db DBTX
}

// NewGeneratedOutlineRepository создает новый экземпляр GeneratedOutlineRepository.
func NewGeneratedOutlineRepository(db DBTX, logger *zap.Logger) *GeneratedOutlineRepository {
	return &GeneratedOutlineRepository{
		CRUD: NewCRUD[models.GeneratedOutline](db, generatedOutlineSchema, logger.Named("GeneratedOutlineRepo")),
		db:   db,
	}
}

// ListByProject возвращает версии плана проекта от новых к старым.
func (r *GeneratedOutlineRepository) ListByProject(ctx context.Context, projectID int64, skip, limit int) ([]models.GeneratedOutline, error) {
	skip, limit = clampPage(skip, limit)
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE project_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3",
		generatedOutlineSchema.selectList(), generatedOutlineSchema.Table,
	)

	outlines := []models.GeneratedOutline{}
	if err := pgxscan.Select(ctx, r.db, &outlines, query, projectID, limit, skip); err != nil {
		return nil, fmt.Errorf("failed to list generated outlines: %w", err)
	}
	return outlines, nil
}

var promptPresetSchema = Schema{
	Table: "prompt_presets",
	Columns: []string{
		"id", "name", "system_prompt", "cot_guidance", "other_instructions",
	},
}

// PromptPresetRepository - хранилище именованных пресетов промптов.
type PromptPresetRepository struct {
	*CRUD[models.PromptPreset]
}

// NewPromptPresetRepository создает новый экземпляр PromptPresetRepository.
func NewPromptPresetRepository(db DBTX, logger *zap.Logger) *PromptPresetRepository {
	return &PromptPresetRepository{
		CRUD: NewCRUD[models.PromptPreset](db, promptPresetSchema, logger.Named("PromptPresetRepo")),
	}
}
