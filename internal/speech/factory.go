package speech

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Options selects and configures the speech backends.
type Options struct {
	Provider string // "gemini", "openai" or "mock"
	Fallback string // optional second backend, "" or "none" to disable

	Gemini GeminiConfig
	OpenAI OpenAIConfig

	Breaker FailoverConfig

	// CacheSize bounds the replay cache.
	CacheSize int
}

// New builds the configured Synthesizer: a cached failover group of the
// primary and fallback backends. A fallback without credentials is
// skipped with a warning.
func New(ctx context.Context, opts Options, logger logrus.FieldLogger) (Synthesizer, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	primary, err := newBackend(ctx, opts.Provider, opts)
	if err != nil {
		return nil, fmt.Errorf("initializing %s speech: %w", opts.Provider, err)
	}

	fo := NewFailover(opts.Provider, primary, opts.Breaker, logger)
	if opts.Fallback != "" && opts.Fallback != "none" && opts.Fallback != opts.Provider {
		fb, err := newBackend(ctx, opts.Fallback, opts)
		if err != nil {
			logger.WithError(err).WithField("backend", opts.Fallback).Warn("speech fallback disabled")
		} else {
			fo.Add(opts.Fallback, fb)
		}
	}
	return NewCache(fo, opts.CacheSize), nil
}

func newBackend(ctx context.Context, name string, opts Options) (Synthesizer, error) {
	switch name {
	case "gemini":
		return NewGeminiSynthesizer(ctx, opts.Gemini)
	case "openai":
		return NewOpenAISynthesizer(opts.OpenAI)
	case "mock":
		return NewMockSynthesizer(), nil
	default:
		return nil, fmt.Errorf("unknown speech provider: %q", name)
	}
}
