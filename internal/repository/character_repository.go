package repository

import (
	"go.uber.org/zap"

	"novelforge-server/internal/models"
)

var characterSchema = Schema{
	Table: "characters",
	Columns: []string{
		"id", "name", "gender", "age", "occupation", "brief_introduction",
		"physical_attributes", "personality_traits", "background_story",
		"custom_fields", "relationships", "character_arc",
	},
	Mergeable: map[string]bool{
		"physical_attributes": true,
		"personality_traits":  true,
		"background_story":    true,
		"custom_fields":       true,
		"relationships":       true,
		"character_arc":       true,
	},
}

// CharacterRepository - хранилище персонажей. Все JSONB-поля анкеты
// объявлены мергируемыми: частичное обновление дополняет карту ключей,
// а не затирает ее целиком.
type CharacterRepository struct {
	*CRUD[models.Character]
}

// NewCharacterRepository создает новый экземпляр CharacterRepository.
func NewCharacterRepository(db DBTX, logger *zap.Logger) *CharacterRepository {
	return &CharacterRepository{
		CRUD: NewCRUD[models.Character](db, characterSchema, logger.Named("CharacterRepo")),
	}
}
