package llm

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/spellbound/internal/store"
)

// ErrNotConfigured is returned by NewProvider when no provider is selected.
var ErrNotConfigured = errors.New("no LLM provider configured")

// constructors builds the base provider for each supported name.
var constructors = map[string]func(ctx context.Context, cfg Config) (Provider, error){
	"anthropic": func(_ context.Context, cfg Config) (Provider, error) {
		return NewAnthropicProvider(cfg.Anthropic)
	},
	"openai": func(_ context.Context, cfg Config) (Provider, error) {
		return NewOpenAIProvider(cfg.OpenAI)
	},
	"gemini": func(ctx context.Context, cfg Config) (Provider, error) {
		return NewGeminiProvider(ctx, cfg.Gemini)
	},
	"openrouter": func(_ context.Context, cfg Config) (Provider, error) {
		return NewOpenRouterProvider(cfg.OpenRouter)
	},
	"mock": func(context.Context, Config) (Provider, error) {
		return NewMockProvider(), nil
	},
}

// Providers lists the accepted llm.provider values.
func Providers() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// NewProvider creates the configured Provider wrapped as
// caller → retry → logging → base, so every attempt is recorded.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger logrus.FieldLogger) (Provider, error) {
	if cfg.Provider == "" {
		return nil, ErrNotConfigured
	}
	build, ok := constructors[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown LLM provider %q (want one of %s)", cfg.Provider, strings.Join(Providers(), ", "))
	}
	base, err := build(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, eventRepo, logger)
	return WithRetry(logged, cfg.Retry, logger), nil
}
