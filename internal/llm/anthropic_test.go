package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku"},
		option.WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

func anthropicReply(text, stop string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":   "msg_test",
			"type": "message",
			"role": "assistant",
			"content": []map[string]any{
				{"type": "text", "text": text},
			},
			"model":       "claude-haiku-4-5-20251001",
			"stop_reason": stop,
			"usage": map[string]any{
				"input_tokens":  50,
				"output_tokens": 30,
			},
		})
	}
}

func anthropicFailure(status int, retryAfter string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if retryAfter != "" {
			w.Header().Set("Retry-After", retryAfter)
		}
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": "api_error", "message": http.StatusText(status)},
		})
	}
}

func TestAnthropicProvider_HappyPath(t *testing.T) {
	p := newTestAnthropicProvider(t, anthropicReply(`{"text":"The rhythm of the rain was soothing.","hint":"Weather"}`, "end_turn"))

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are a spelling tutor.",
		Messages:  []Message{{Role: RoleUser, Content: "Generate a sentence."}},
		Schema:    wordSchema,
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 50 || resp.Usage.TotalTokens != 80 {
		t.Fatalf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != StopEnd {
		t.Fatalf("expected stop reason %q, got %q", StopEnd, resp.StopReason)
	}
	if resp.Model != "claude-haiku-4-5-20251001" {
		t.Errorf("model = %q", resp.Model)
	}
}

func TestAnthropicProvider_StopReasons(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		stop    string
		wantErr any
	}{
		{"refusal", "", "refusal", &ErrRefused{}},
		{"truncated", `{"text":"The rhy`, "max_tokens", &ErrMaxTokensExceeded{}},
		{"off schema", `{"sentence":"x"}`, "end_turn", &ErrInvalidResponse{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestAnthropicProvider(t, anthropicReply(tt.text, tt.stop))
			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "x"}},
				Schema:    wordSchema,
				MaxTokens: 16,
			})
			switch want := tt.wantErr.(type) {
			case *ErrRefused:
				if !errors.As(err, &want) {
					t.Fatalf("expected ErrRefused, got %T (%v)", err, err)
				}
			case *ErrMaxTokensExceeded:
				if !errors.As(err, &want) {
					t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
				}
			case *ErrInvalidResponse:
				if !errors.As(err, &want) {
					t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
				}
			}
		})
	}
}

func TestAnthropicProvider_ErrorStatus(t *testing.T) {
	t.Run("rate limit with retry-after", func(t *testing.T) {
		p := newTestAnthropicProvider(t, anthropicFailure(http.StatusTooManyRequests, "7"))
		_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}, MaxTokens: 16})
		var rl *ErrRateLimit
		if !errors.As(err, &rl) {
			t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
		}
		if rl.RetryAfter != 7*time.Second {
			t.Errorf("retry after = %s, want 7s", rl.RetryAfter)
		}
	})

	t.Run("server error", func(t *testing.T) {
		p := newTestAnthropicProvider(t, anthropicFailure(http.StatusInternalServerError, ""))
		_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}, MaxTokens: 16})
		var unavail *ErrProviderUnavailable
		if !errors.As(err, &unavail) {
			t.Fatalf("expected ErrProviderUnavailable, got %T (%v)", err, err)
		}
	})

	t.Run("bad key", func(t *testing.T) {
		p := newTestAnthropicProvider(t, anthropicFailure(http.StatusUnauthorized, ""))
		_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}, MaxTokens: 16})
		var rejected *ErrRejected
		if !errors.As(err, &rejected) || rejected.Status != http.StatusUnauthorized {
			t.Fatalf("expected ErrRejected(401), got %T (%v)", err, err)
		}
		if Retryable(err) {
			t.Error("a rejected key should not be retried")
		}
	})
}

func TestAnthropicParams(t *testing.T) {
	params := anthropicParams("claude-haiku-4-5", Request{
		System: "tutor",
		Messages: []Message{
			{Role: RoleUser, Content: "one"},
			{Role: RoleAssistant, Content: "two"},
		},
		Schema:      wordSchema,
		MaxTokens:   128,
		Temperature: 0.9,
	})
	if string(params.Model) != "claude-haiku-4-5" || params.MaxTokens != 128 {
		t.Errorf("model/max = %q/%d", params.Model, params.MaxTokens)
	}
	if len(params.System) != 1 || params.System[0].Text != "tutor" {
		t.Errorf("system = %+v", params.System)
	}
	if len(params.Messages) != 2 || params.Messages[1].Role != "assistant" {
		t.Errorf("messages = %+v", params.Messages)
	}
}

func TestAnthropicModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"claude-haiku", "claude-haiku-4-5"},
		{"claude-sonnet", "claude-sonnet-4-5"},
		{"claude-opus-4-1", "claude-opus-4-1"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, anthropicModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
