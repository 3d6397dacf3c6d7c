package models

// JSONMap - произвольный набор пар ключ/значение, хранится в колонке JSONB.
// Используется для "открытых" полей, схема которых не фиксирована.
type JSONMap map[string]any

// Project представляет проект романа - корневую сущность, которой принадлежат
// узлы плана, диалоги и сгенерированные версии плана.
type Project struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	BookTitle   string `json:"book_title" db:"book_title"`
	CoreConcept string `json:"core_concept" db:"core_concept"`
}
