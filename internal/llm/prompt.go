package llm

import (
	"fmt"
	"strings"

	"github.com/Veraticus/ledgerlens/internal/model"
)

const promptTemplate = `Analyze this home inventory item.
1. Identify the item.
2. Estimate a conservative resale value in USD.
3. Categorize it as one of: %s.
4. Guess the room it belongs in (e.g. Kitchen, Living Room, Garage).
5. Decide whether it is "%s" (moves with the owner, e.g. sofa, TV) or a "%s" (stays with the house, e.g. chandelier, built-in oven, water heater).
6. Assess its condition as one of: %s.
7. Write a brief description.

Respond with only a JSON object of this shape:
{"name": string, "category": string, "room": string, "type": "PERSONAL" | "FIXTURE", "estimatedValue": number, "description": string, "condition": string}`

// BuildPrompt returns the instruction sent alongside every image.
func BuildPrompt() string {
	conditions := make([]string, 0, len(model.Conditions()))
	for _, c := range model.Conditions() {
		conditions = append(conditions, c.String())
	}
	return fmt.Sprintf(promptTemplate,
		strings.Join(model.CategoryLabels(), ", "),
		model.ItemTypePersonal.Label(),
		model.ItemTypeFixture.Label(),
		strings.Join(conditions, ", "))
}

// responseSchema constrains Gemini's JSON output.
func responseSchema() map[string]any {
	str := map[string]any{"type": "STRING"}
	return map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"name":     str,
			"category": str,
			"room": map[string]any{
				"type":        "STRING",
				"description": "e.g. Kitchen, Bedroom",
			},
			"type": map[string]any{
				"type": "STRING",
				"enum": []string{string(model.ItemTypePersonal), string(model.ItemTypeFixture)},
			},
			"estimatedValue": map[string]any{"type": "NUMBER"},
			"description":    str,
			"condition":      str,
		},
		"required": []string{"name", "category", "room", "type", "estimatedValue", "description", "condition"},
	}
}
