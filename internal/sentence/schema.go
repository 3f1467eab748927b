package sentence

import "github.com/abhisek/spellbound/internal/llm"

// Schema defines the JSON schema for sentence generation responses.
var Schema = &llm.Schema{
	Name:        "spelling-sentence",
	Description: "A single dictation sentence with a contextual hint",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{
				"type":        "string",
				"description": "The sentence for spelling practice",
			},
			"hint": map[string]any{
				"type":        "string",
				"description": "A contextual hint",
			},
		},
		"required":             []any{"text", "hint"},
		"additionalProperties": false,
	},
}
