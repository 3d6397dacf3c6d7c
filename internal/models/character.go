package models

// Character представляет персонажа. Помимо фиксированных полей несет набор
// открытых JSONB-полей для гибких атрибутов (внешность, характер и т.д.).
type Character struct {
	ID                 int64   `json:"id" db:"id"`
	Name               string  `json:"name" db:"name"`
	Gender             string  `json:"gender" db:"gender"`
	Age                *int    `json:"age" db:"age"`
	Occupation         string  `json:"occupation" db:"occupation"`
	BriefIntroduction  string  `json:"brief_introduction" db:"brief_introduction"`
	PhysicalAttributes JSONMap `json:"physical_attributes" db:"physical_attributes"`
	PersonalityTraits  JSONMap `json:"personality_traits" db:"personality_traits"`
	BackgroundStory    JSONMap `json:"background_story" db:"background_story"`
	CustomFields       JSONMap `json:"custom_fields" db:"custom_fields"`
	Relationships      JSONMap `json:"relationships" db:"relationships"`
	CharacterArc       JSONMap `json:"character_arc" db:"character_arc"`
}
