package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		want  *ModelCost
	}{
		{"gemini-2.5-flash", &ModelCost{0.3, 2.5}},
		{"models/gemini-2.5-flash", &ModelCost{0.3, 2.5}},
		{"google/gemini-2.5-flash", &ModelCost{0.3, 2.5}},
		{"gpt-4o-mini-2024-07-18", &ModelCost{0.15, 0.6}},
		{"claude-haiku-4-5-20251001", &ModelCost{1, 5}},
		{"anthropic/claude-haiku-4.5", &ModelCost{1, 5}},
		{"Claude-Sonnet-4-5", &ModelCost{3, 15}},
		{"mock", nil},
		{"meta-llama/llama-3-8b", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := LookupCost(tt.model)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("LookupCost(%q) = %+v, want nil", tt.model, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("LookupCost(%q) = %v, want %+v", tt.model, got, *tt.want)
		}
	}
}

func TestModelCost(t *testing.T) {
	c := ModelCost{InputPerMTok: 0.3, OutputPerMTok: 2.5}
	// A typical sentence request: ~400 tokens in, ~60 out.
	got := c.Cost(400, 60)
	want := 400*0.3/1e6 + 60*2.5/1e6
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Cost = %g, want %g", got, want)
	}
	if c.Cost(0, 0) != 0 {
		t.Error("zero tokens should cost nothing")
	}
}
