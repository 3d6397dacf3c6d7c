package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"novelforge-server/internal/models"
)

const (
	promptValueMissing = "Not specified"
	promptMapMissing   = "None"

	promptEncoding = "cl100k_base"
)

// BuildOutlinePrompt собирает промпт генерации плана романа. Функция чистая:
// результат полностью определяется аргументами. Отсутствующие поля сеттинга
// рендерятся как "Not specified", отсутствующие карты деталей - как "None".
func BuildOutlinePrompt(coreConcept string, worldview, writingStyle models.JSONMap, targetWordCount int) string {
	var b strings.Builder

	b.WriteString("You are a world-class novelist and story architect. ")
	b.WriteString("Your task is to generate a preliminary outline blueprint for a new novel ")
	b.WriteString("based on the provided core concept and settings.\n\n")

	b.WriteString("**Chain of Thought instructions:**\n")
	b.WriteString("Before producing the final JSON output, reason through these steps:\n")
	b.WriteString("1. Deconstruct the core concept: who is the protagonist, what do they want, what stands in their way, what kind of world could this story inhabit?\n")
	b.WriteString("2. Define the main conflict that drives the whole story.\n")
	b.WriteString("3. Establish the protagonist's mission, concrete and tied to the main conflict.\n")
	b.WriteString("4. Shape the story arc, for example a classic three-act structure, with a key turning point for each part.\n")
	b.WriteString("5. Sketch the key characters the story needs and the themes it explores.\n")
	b.WriteString("6. Organize the result into the JSON format below.\n\n")

	b.WriteString("**Input settings:**\n\n")
	b.WriteString("**Core Concept (Seed):**\n")
	b.WriteString(coreConcept)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "**Target Word Count:** Approximately %d words.\n\n", targetWordCount)

	b.WriteString("**Worldview / Genre:**\n")
	fmt.Fprintf(&b, "Name: %s\n", promptValue(worldview, "name"))
	fmt.Fprintf(&b, "Description: %s\n", promptValue(worldview, "description"))
	fmt.Fprintf(&b, "Genre: %s\n", promptValue(worldview, "genre"))
	fmt.Fprintf(&b, "Additional Details: %s\n\n", promptDetails(worldview, "additional_details"))

	b.WriteString("**Writing Style:**\n")
	fmt.Fprintf(&b, "Name: %s\n", promptValue(writingStyle, "name"))
	fmt.Fprintf(&b, "Tone: %s\n", promptValue(writingStyle, "tone"))
	fmt.Fprintf(&b, "Point of View: %s\n", promptValue(writingStyle, "point_of_view"))
	fmt.Fprintf(&b, "Guidelines: %s\n\n", promptDetails(writingStyle, "guidelines"))

	b.WriteString("**Output requirements:**\n")
	b.WriteString("Respond strictly in the following JSON format, with no extra commentary. ")
	b.WriteString("This is a preliminary high-level blueprint, not a chapter breakdown.\n\n")
	b.WriteString(`{
  "main_conflict": "The central conflict driving the story.",
  "protagonist_mission": "The protagonist's concrete mission, tied to the main conflict.",
  "story_arc": {
    "act_1_beginning": "Setup, inciting incident, the protagonist accepts the mission.",
    "act_2_middle": "Escalation, first clash with the antagonist, the larger scheme revealed.",
    "act_3_end": "Climax, final confrontation, sacrifice, resolution."
  },
  "key_characters": [
    {
      "role": "Protagonist",
      "name": "Character name",
      "description": "One or two sentences."
    }
  ],
  "themes": ["Theme one", "Theme two"]
}`)
	b.WriteString("\n")

	return b.String()
}

// EstimateTokens оценивает размер текста в токенах. При недоступном словаре
// кодировки возвращается грубая оценка по длине.
func EstimateTokens(text string) int {
	tke, err := tiktoken.GetEncoding(promptEncoding)
	if err != nil {
		return len(text) / 4
	}
	return len(tke.Encode(text, nil, nil))
}

// promptValue возвращает строковое представление поля сеттинга.
func promptValue(m models.JSONMap, key string) string {
	raw, ok := m[key]
	if !ok || raw == nil {
		return promptValueMissing
	}

	switch v := raw.(type) {
	case string:
		if v == "" {
			return promptValueMissing
		}
		return v
	case []string:
		if len(v) == 0 {
			return promptValueMissing
		}
		return strings.Join(v, ", ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprintf("%v", item))
		}
		if len(parts) == 0 {
			return promptValueMissing
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// promptDetails рендерит карту деталей как JSON с сортированными ключами.
func promptDetails(m models.JSONMap, key string) string {
	raw, ok := m[key]
	if !ok || raw == nil {
		return promptMapMissing
	}
	var details map[string]any
	switch v := raw.(type) {
	case models.JSONMap:
		details = v
	case map[string]any:
		details = v
	default:
		return promptMapMissing
	}
	if len(details) == 0 {
		return promptMapMissing
	}

	encoded, err := json.Marshal(details)
	if err != nil {
		return promptMapMissing
	}
	return string(encoded)
}
