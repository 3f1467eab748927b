package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/spellbound/internal/auth"
	"github.com/abhisek/spellbound/internal/config"
	"github.com/abhisek/spellbound/internal/glossary"
	"github.com/abhisek/spellbound/internal/llm"
	"github.com/abhisek/spellbound/internal/practice"
	"github.com/abhisek/spellbound/internal/review"
	"github.com/abhisek/spellbound/internal/sentence"
	"github.com/abhisek/spellbound/internal/speech"
	"github.com/abhisek/spellbound/internal/store"
)

// services is everything a practice frontend needs.
type services struct {
	auth     *auth.Service
	glossary *glossary.Service
	practice *practice.Service
	sessions store.SessionRepo
	player   *speech.Player
}

// buildServices wires the domain services on top of st. A missing LLM
// provider degrades to canned sentences; a missing speech backend is an
// error because every round needs audio.
func buildServices(ctx context.Context, cfg *config.Config, st *store.Store, logger logrus.FieldLogger) (*services, error) {
	var gen sentence.Generator = sentence.Canned{}
	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), logger)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		logger.Info("no LLM provider configured, using canned sentences")
	case err != nil:
		logger.WithError(err).Warn("LLM provider not configured, using canned sentences")
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Practice will use canned sentences.")
	default:
		gen = sentence.New(provider, sentence.DefaultConfig(), logger)
	}

	synth, err := newSynthesizer(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	gl := glossary.NewService(st.MistakeRepo(), logger)
	return &services{
		auth:     auth.NewService(st.UserRepo(), logger),
		glossary: gl,
		sessions: st.SessionRepo(),
		player:   speech.NewPlayer(cfg.Speech.Player, logger),
		practice: practice.NewService(practice.Deps{
			Sentences: gen,
			Speech:    synth,
			Glossary:  gl,
			Sessions:  st.SessionRepo(),
			Selector:  review.NewSelector(review.WithProbability(cfg.Review.Probability)),
			Logger:    logger,
		}),
	}, nil
}

func newSynthesizer(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (speech.Synthesizer, error) {
	synth, err := speech.New(ctx, speechOptions(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("speech not configured (set GEMINI_API_KEY or speech.provider): %w", err)
	}
	return timeoutSynthesizer{inner: synth, timeout: cfg.Speech.Timeout}, nil
}

func speechOptions(cfg *config.Config) speech.Options {
	return speech.Options{
		Provider: cfg.Speech.Provider,
		Fallback: cfg.Speech.Fallback,
		Gemini: speech.GeminiConfig{
			APIKey: cfg.LLM.Gemini.APIKey,
			Model:  cfg.Speech.Model,
			Voice:  cfg.Speech.Voice,
		},
		OpenAI: speech.OpenAIConfig{
			APIKey:  cfg.LLM.OpenAI.APIKey,
			Model:   cfg.Speech.OpenAI.Model,
			Voice:   cfg.Speech.OpenAI.Voice,
			BaseURL: cfg.LLM.OpenAI.BaseURL,
		},
		Breaker: speech.FailoverConfig{
			MaxFailures:  3,
			ResetTimeout: 30 * time.Second,
		},
		CacheSize: 16,
	}
}

// timeoutSynthesizer bounds each synthesis call by speech.timeout.
type timeoutSynthesizer struct {
	inner   speech.Synthesizer
	timeout time.Duration
}

func (t timeoutSynthesizer) Synthesize(ctx context.Context, text string) (*speech.Audio, error) {
	if t.timeout <= 0 {
		return t.inner.Synthesize(ctx, text)
	}
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Synthesize(ctx, text)
}
