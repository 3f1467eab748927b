package llm

import (
	"regexp"
	"strings"
)

// ModelCost holds per-million-token pricing for a model, in USD.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost calculates the total USD cost for the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// datedSuffix matches the snapshot date providers append to model IDs in
// responses, e.g. "-20251001" or "-2024-07-18".
var datedSuffix = regexp.MustCompile(`-(\d{8}|\d{4}-\d{2}-\d{2})$`)

// LookupCost returns the pricing for a model ID as recorded in the event
// log, or nil if unknown. OpenRouter vendor prefixes, Gemini "models/"
// names and dated snapshots resolve to their base model.
func LookupCost(modelID string) *ModelCost {
	for _, id := range costKeys(modelID) {
		if c, ok := modelCosts[id]; ok {
			return &c
		}
	}
	return nil
}

// costKeys lists the table keys to try for a model ID, most specific first.
func costKeys(modelID string) []string {
	id := strings.ToLower(strings.TrimSpace(modelID))
	id = strings.TrimPrefix(id, "models/")
	if _, name, ok := strings.Cut(id, "/"); ok {
		id = name
	}
	keys := []string{id}
	if base := datedSuffix.ReplaceAllString(id, ""); base != id {
		keys = append(keys, base)
	}
	// OpenRouter writes Claude versions with dots: claude-haiku-4.5.
	if strings.HasPrefix(id, "claude-") && strings.Contains(id, ".") {
		keys = append(keys, strings.ReplaceAll(id, ".", "-"))
	}
	return keys
}

// modelCosts covers the models the sentence generator is configured with,
// per models.dev as of 2026-02-15.
var modelCosts = map[string]ModelCost{
	// Anthropic
	"claude-3-5-haiku":  {0.8, 4},
	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4-0": {3, 15},
	"claude-sonnet-4":   {3, 15},
	"claude-sonnet-4-5": {3, 15},
	"claude-opus-4-1":   {15, 75},
	"claude-opus-4-5":   {5, 25},

	// OpenAI
	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-5":        {1.25, 10},
	"gpt-5-mini":   {0.25, 2},
	"gpt-5-nano":   {0.05, 0.4},

	// Google
	"gemini-2.0-flash":       {0.1, 0.4},
	"gemini-2.0-flash-lite":  {0.075, 0.3},
	"gemini-2.5-flash":       {0.3, 2.5},
	"gemini-2.5-flash-lite":  {0.1, 0.4},
	"gemini-2.5-pro":         {1.25, 10},
	"gemini-3-flash-preview": {0.5, 3},
	"gemini-3-pro-preview":   {2, 12},
}
