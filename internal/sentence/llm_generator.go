package sentence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/spellbound/internal/grading"
	"github.com/abhisek/spellbound/internal/llm"
)

// Purposes label sentence requests in the LLM event log, so `llm stats`
// shows fresh and review sentences apart.
const (
	Purpose       = "sentence"
	PurposeReview = "review-sentence"
)

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxRecent is how many recently produced sentences are listed in
	// the prompt as already used.
	MaxRecent int
}

// DefaultConfig returns the recommended generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   256,
		Temperature: 0.9,
		MaxRecent:   8,
	}
}

// ErrMissingTarget is returned by validation when the target word does
// not appear in the generated text.
var ErrMissingTarget = errors.New("target word missing from sentence")

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	logger   logrus.FieldLogger

	mu     sync.Mutex
	recent []string
}

// New creates a new LLMGenerator.
func New(provider llm.Provider, cfg Config, logger logrus.FieldLogger) *LLMGenerator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LLMGenerator{
		provider: provider,
		config:   cfg,
		logger:   logger.WithField("component", "sentence"),
	}
}

// Generate produces a sentence for grade. It falls back to a canned
// sentence on any failure.
func (g *LLMGenerator) Generate(ctx context.Context, grade, targetWord string) Sentence {
	s, err := g.generate(ctx, grade, targetWord)
	if err != nil {
		g.logger.WithError(err).WithFields(logrus.Fields{
			"grade":  grade,
			"target": targetWord,
		}).Warn("sentence generation failed, using fallback")
		return Fallback(targetWord)
	}
	g.remember(s.Text)
	return s
}

// sentenceOutput is the raw LLM response before validation.
type sentenceOutput struct {
	Text string `json:"text"`
	Hint string `json:"hint"`
}

func (g *LLMGenerator) generate(ctx context.Context, grade, targetWord string) (Sentence, error) {
	purpose := Purpose
	if targetWord != "" {
		purpose = PurposeReview
	}
	ctx = llm.WithTags(ctx, llm.Tags{Purpose: purpose, Grade: grade, Target: targetWord})

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(grade, targetWord, g.Recent(), g.config.MaxRecent)},
		},
		Schema:      Schema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
		// A sentence that drops the target word is asked for again once.
		Accept: func(raw json.RawMessage) error {
			_, err := parseSentence(raw, targetWord)
			return err
		},
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return Sentence{}, fmt.Errorf("LLM generation failed: %w", err)
	}
	return parseSentence(resp.Content, targetWord)
}

// parseSentence decodes and tidies an LLM answer, then validates it.
func parseSentence(raw json.RawMessage, targetWord string) (Sentence, error) {
	var out sentenceOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return Sentence{}, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	s := Sentence{Text: strings.Join(strings.Fields(out.Text), " "), Hint: strings.TrimSpace(out.Hint)}
	if err := Validate(s, targetWord); err != nil {
		return Sentence{}, err
	}
	return s, nil
}

// Validate checks a generated sentence: the text must not be empty and
// must contain targetWord as a whole word when one is given.
func Validate(s Sentence, targetWord string) error {
	if grading.Normalize(s.Text) == "" {
		return errors.New("empty sentence")
	}
	if targetWord == "" {
		return nil
	}
	want := grading.Normalize(targetWord)
	if !slices.Contains(strings.Fields(grading.Normalize(s.Text)), want) {
		return fmt.Errorf("%w: %q", ErrMissingTarget, targetWord)
	}
	return nil
}

// Recent returns the sentences produced so far, oldest first.
func (g *LLMGenerator) Recent() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.recent)
}

func (g *LLMGenerator) remember(text string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.recent = append(g.recent, text)
	if n := g.config.MaxRecent; n > 0 && len(g.recent) > n {
		g.recent = slices.Clone(g.recent[len(g.recent)-n:])
	}
}
