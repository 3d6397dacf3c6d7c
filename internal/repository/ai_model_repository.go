package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"novelforge-server/internal/models"
	"novelforge-server/internal/security"
)

// APIKeyMask - значение, которым ключ подменяется в ответах API. Приход
// маски на запись означает "оставить ключ без изменений".
const APIKeyMask = "********"

var aiModelSchema = Schema{
	Table:   "ai_models",
	Columns: []string{"id", "name", "api_url", "api_key", "model_name", "model_type"},
}

// AIModelRepository - хранилище подключений к внешним моделям. Ключи API
// шифруются перед записью и расшифровываются только по явному запросу.
type AIModelRepository struct {
	*CRUD[models.AIModel]
	guard *security.Guard
}

// NewAIModelRepository создает новый экземпляр AIModelRepository.
func NewAIModelRepository(db DBTX, guard *security.Guard, logger *zap.Logger) *AIModelRepository {
	return &AIModelRepository{
		CRUD:  NewCRUD[models.AIModel](db, aiModelSchema, logger.Named("AIModelRepo")),
		guard: guard,
	}
}

// Create вставляет подключение, шифруя переданный ключ API.
func (r *AIModelRepository) Create(ctx context.Context, fields Fields) (*models.AIModel, error) {
	fields, err := r.encryptKeyField(fields, false)
	if err != nil {
		return nil, err
	}
	return r.CRUD.Create(ctx, fields)
}

// Update применяет частичное обновление. Новый ключ шифруется; маска
// и отсутствие поля оставляют сохраненный ключ как есть.
func (r *AIModelRepository) Update(ctx context.Context, id int64, fields Fields) (*models.AIModel, error) {
	fields, err := r.encryptKeyField(fields, true)
	if err != nil {
		return nil, err
	}
	return r.CRUD.Update(ctx, id, fields)
}

// DecryptedKey возвращает расшифрованный ключ API подключения.
func (r *AIModelRepository) DecryptedKey(ctx context.Context, id int64) (string, error) {
	model, err := r.Get(ctx, id)
	if err != nil {
		return "", err
	}

	plaintext, err := r.guard.Decrypt(model.APIKey)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt api key for model %d: %w", id, err)
	}
	return plaintext, nil
}

// encryptKeyField шифрует поле api_key в наборе полей. При dropMask
// значение-маска исключается из набора, не затрагивая сохраненный ключ.
func (r *AIModelRepository) encryptKeyField(fields Fields, dropMask bool) (Fields, error) {
	result := make(Fields, 0, len(fields))
	for _, field := range fields {
		if field.Column != "api_key" {
			result = append(result, field)
			continue
		}

		plaintext, _ := field.Value.(string)
		if dropMask && plaintext == APIKeyMask {
			continue
		}
		encrypted, err := r.guard.Encrypt(plaintext)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt api key: %w", err)
		}
		result = append(result, Field{Column: "api_key", Value: encrypted})
	}
	return result, nil
}
