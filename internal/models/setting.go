package models

import "time"

// Worldview представляет сеттинг мира (жанр, эпоха, магическая система и т.д.).
type Worldview struct {
	ID                int64   `json:"id" db:"id"`
	Name              string  `json:"name" db:"name"`
	Description       string  `json:"description" db:"description"`
	Genre             string  `json:"genre" db:"genre"`
	TimePeriod        string  `json:"time_period" db:"time_period"`
	TechnologyLevel   string  `json:"technology_level" db:"technology_level"`
	MagicSystem       string  `json:"magic_system" db:"magic_system"`
	AdditionalDetails JSONMap `json:"additional_details" db:"additional_details"`
}

// WritingStyle представляет стиль письма: тон, фокализация, ориентиры.
type WritingStyle struct {
	ID             int64    `json:"id" db:"id"`
	Name           string   `json:"name" db:"name"`
	Description    string   `json:"description" db:"description"`
	Tone           []string `json:"tone" db:"tone"`
	PointOfView    string   `json:"point_of_view" db:"point_of_view"`
	ReferenceWorks string   `json:"reference_works" db:"reference_works"`
	Guidelines     JSONMap  `json:"guidelines" db:"guidelines"`
}

// TemplateCategory определяет категорию шаблона промпта.
type TemplateCategory string

const (
	TemplateCategorySystem    TemplateCategory = "system_prompt"
	TemplateCategoryCharacter TemplateCategory = "character_prompt"
	TemplateCategoryProject   TemplateCategory = "project_prompt"
)

// ValidTemplateCategory проверяет, что значение принадлежит перечислению.
func ValidTemplateCategory(c TemplateCategory) bool {
	switch c {
	case TemplateCategorySystem, TemplateCategoryCharacter, TemplateCategoryProject:
		return true
	}
	return false
}

// PromptTemplate представляет переиспользуемый шаблон промпта.
type PromptTemplate struct {
	ID           int64            `json:"id" db:"id"`
	Name         string           `json:"name" db:"name"`
	Description  string           `json:"description" db:"description"`
	Category     TemplateCategory `json:"category" db:"category"`
	TemplateText string           `json:"template_text" db:"template_text"`
	Variables    JSONMap          `json:"variables" db:"variables"`
}

// GeneratedOutline представляет сохраненный результат генерации плана вместе
// со снимком настроек, с которыми он был получен.
type GeneratedOutline struct {
	ID               int64     `json:"id" db:"id"`
	ProjectID        int64     `json:"project_id" db:"project_id"`
	VersionName      string    `json:"version_name" db:"version_name"`
	TargetWordCount  int       `json:"target_word_count" db:"target_word_count"`
	WorldviewID      *int64    `json:"worldview_id" db:"worldview_id"`
	WritingStyleID   *int64    `json:"writing_style_id" db:"writing_style_id"`
	SettingsSnapshot JSONMap   `json:"settings_snapshot" db:"settings_snapshot"`
	OutlineData      JSONMap   `json:"outline_data" db:"outline_data"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// ModelType определяет тип внешней модели.
type ModelType string

const (
	ModelTypeImageGeneration ModelType = "image_generation"
	ModelTypeLanguageModel   ModelType = "language_model"
	ModelTypeMultiModal      ModelType = "multi_modal"
	ModelTypeOther           ModelType = "other"
)

// ValidModelType проверяет, что значение принадлежит перечислению.
func ValidModelType(t ModelType) bool {
	switch t {
	case ModelTypeImageGeneration, ModelTypeLanguageModel, ModelTypeMultiModal, ModelTypeOther:
		return true
	}
	return false
}

// AIModel представляет подключение к внешней модели. APIKey хранится только
// в зашифрованном виде; наружу поле всегда отдается маской (см. HTTP-слой).
type AIModel struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	APIURL    string    `json:"api_url" db:"api_url"`
	APIKey    string    `json:"api_key" db:"api_key"`
	ModelName string    `json:"model_name" db:"model_name"`
	ModelType ModelType `json:"model_type" db:"model_type"`
}

// PromptPreset представляет именованный пресет промпта для генерации.
type PromptPreset struct {
	ID                int64  `json:"id" db:"id"`
	Name              string `json:"name" db:"name"`
	SystemPrompt      string `json:"system_prompt" db:"system_prompt"`
	CotGuidance       string `json:"cot_guidance" db:"cot_guidance"`
	OtherInstructions string `json:"other_instructions" db:"other_instructions"`
}
