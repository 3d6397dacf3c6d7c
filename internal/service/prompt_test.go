package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novelforge-server/internal/models"
)

func TestBuildOutlinePromptDeterministic(t *testing.T) {
	worldview := models.JSONMap{
		"name":        "Догорающие королевства",
		"description": "Мир после магической катастрофы",
		"genre":       "dark fantasy",
		"additional_details": map[string]any{
			"magic":   "fading",
			"dragons": true,
		},
	}
	writingStyle := models.JSONMap{
		"name":          "Мрачный реализм",
		"tone":          []string{"grim", "melancholic"},
		"point_of_view": "third person limited",
	}

	first := BuildOutlinePrompt("Кузнец против дракона", worldview, writingStyle, 80000)
	second := BuildOutlinePrompt("Кузнец против дракона", worldview, writingStyle, 80000)
	assert.Equal(t, first, second)

	assert.Contains(t, first, "Кузнец против дракона")
	assert.Contains(t, first, "Approximately 80000 words")
	assert.Contains(t, first, "Genre: dark fantasy")
	assert.Contains(t, first, "Tone: grim, melancholic")
	assert.Contains(t, first, `"dragons":true`)
}

func TestBuildOutlinePromptPlaceholders(t *testing.T) {
	prompt := BuildOutlinePrompt("seed", models.JSONMap{}, models.JSONMap{}, 1000)

	assert.Contains(t, prompt, "Name: Not specified")
	assert.Contains(t, prompt, "Description: Not specified")
	assert.Contains(t, prompt, "Genre: Not specified")
	assert.Contains(t, prompt, "Tone: Not specified")
	assert.Contains(t, prompt, "Point of View: Not specified")
	assert.Contains(t, prompt, "Additional Details: None")
	assert.Contains(t, prompt, "Guidelines: None")

	// Пустые значения трактуются так же, как отсутствующие
	withEmpty := BuildOutlinePrompt("seed", models.JSONMap{
		"genre":              "",
		"additional_details": map[string]any{},
	}, models.JSONMap{"tone": []string{}}, 1000)
	assert.Contains(t, withEmpty, "Genre: Not specified")
	assert.Contains(t, withEmpty, "Additional Details: None")
	assert.Contains(t, withEmpty, "Tone: Not specified")
}

func TestBuildOutlinePromptContract(t *testing.T) {
	prompt := BuildOutlinePrompt("seed", nil, nil, 500)

	for _, key := range []string{
		"main_conflict", "protagonist_mission", "story_arc", "key_characters", "themes",
	} {
		assert.Contains(t, prompt, `"`+key+`"`)
	}
	assert.Contains(t, prompt, "Chain of Thought")
	assert.True(t, strings.Contains(prompt, "JSON"))
}

func TestEstimateTokens(t *testing.T) {
	short := EstimateTokens("hello world")
	long := EstimateTokens(strings.Repeat("hello world ", 100))

	require.Greater(t, short, 0)
	assert.Greater(t, long, short)
}
