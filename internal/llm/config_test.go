package llm

import "testing"

func clearKeys(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != "gemini" {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("gemini model = %q", cfg.Gemini.Model)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error without API key")
	}
}

func TestDiscover_FillsSelectedProvider(t *testing.T) {
	clearKeys(t)
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg := DefaultConfig()
	if !cfg.Discover() {
		t.Fatal("expected discovery to succeed")
	}
	if cfg.Provider != "gemini" || cfg.APIKey() != "g-key" {
		t.Errorf("got provider %q key %q", cfg.Provider, cfg.APIKey())
	}
}

func TestDiscover_SwitchesProvider(t *testing.T) {
	clearKeys(t)
	t.Setenv("OPENAI_API_KEY", "o-key")

	cfg := DefaultConfig()
	if !cfg.Discover() {
		t.Fatal("expected discovery to succeed")
	}
	if cfg.Provider != "openai" || cfg.APIKey() != "o-key" {
		t.Errorf("got provider %q key %q", cfg.Provider, cfg.APIKey())
	}
}

func TestDiscover_ExplicitKeyWins(t *testing.T) {
	clearKeys(t)
	t.Setenv("GEMINI_API_KEY", "from-env")

	cfg := DefaultConfig()
	cfg.Gemini.APIKey = "explicit"
	cfg.Discover()
	if cfg.Gemini.APIKey != "explicit" {
		t.Errorf("key = %q", cfg.Gemini.APIKey)
	}
}

func TestDiscover_NothingFound(t *testing.T) {
	clearKeys(t)
	cfg := DefaultConfig()
	if cfg.Discover() {
		t.Fatal("expected discovery to fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"mock", Config{Provider: "mock"}, false},
		{"openai ok", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "k"}}, false},
		{"anthropic missing", Config{Provider: "anthropic"}, true},
		{"openrouter ok", Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "k"}}, false},
		{"unknown", Config{Provider: "llama"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
