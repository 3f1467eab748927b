// Package practice runs dictation rounds: it picks a sentence, voices it,
// grades the learner's attempt and updates their glossary.
package practice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/spellbound/internal/glossary"
	"github.com/abhisek/spellbound/internal/grading"
	"github.com/abhisek/spellbound/internal/review"
	"github.com/abhisek/spellbound/internal/sentence"
	"github.com/abhisek/spellbound/internal/speech"
	"github.com/abhisek/spellbound/internal/store"
)

// GenericErrorMessage is shown to the learner when a round cannot start.
const GenericErrorMessage = "Something went wrong. Please try again."

var (
	// ErrAudioUnavailable is returned when the sentence could not be voiced.
	ErrAudioUnavailable = errors.New(GenericErrorMessage)

	// ErrEmptyAttempt is returned when an attempt has no text to grade.
	ErrEmptyAttempt = errors.New("empty attempt")

	// ErrNoRound is returned when checking without an active round.
	ErrNoRound = errors.New("no active round")
)

// Round is one dictated sentence awaiting an attempt.
type Round struct {
	ID              string            `json:"id"`
	Username        string            `json:"username"`
	Grade           string            `json:"grade"`
	Sentence        sentence.Sentence `json:"sentence"`
	TargetWord      string            `json:"targetWord,omitempty"`
	TargetMistakeID string            `json:"targetMistakeId,omitempty"`
	Audio           *speech.Audio     `json:"-"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// Outcome is the graded attempt and its effect on the glossary.
type Outcome struct {
	Result         grading.Result   `json:"result"`
	Attempt        string           `json:"attempt"`
	MasteryRemoved bool             `json:"masteryRemoved"`
	Target         *glossary.Record `json:"target,omitempty"`
	NewMistakes    int              `json:"newMistakes"`
}

// Service holds the dependencies shared by every learner's rounds.
type Service struct {
	sentences sentence.Generator
	speech    speech.Synthesizer
	glossary  *glossary.Service
	sessions  store.SessionRepo
	selector  *review.Selector
	logger    logrus.FieldLogger
	now       func() time.Time
}

// Deps are the collaborators of a Service.
type Deps struct {
	Sentences sentence.Generator
	Speech    speech.Synthesizer
	Glossary  *glossary.Service
	Sessions  store.SessionRepo
	Selector  *review.Selector
	Logger    logrus.FieldLogger
}

// NewService creates a practice service.
func NewService(d Deps) *Service {
	if d.Selector == nil {
		d.Selector = review.NewSelector()
	}
	if d.Logger == nil {
		d.Logger = logrus.StandardLogger()
	}
	return &Service{
		sentences: d.Sentences,
		speech:    d.Speech,
		glossary:  d.Glossary,
		sessions:  d.Sessions,
		selector:  d.Selector,
		logger:    d.Logger.WithField("component", "practice"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// NewRound prepares a voiced sentence for username. With an empty
// targetWord the review selector may choose a glossary word. A targetWord
// that names a glossary entry is tracked as a review of that entry.
func (s *Service) NewRound(ctx context.Context, username, grade, targetWord string) (*Round, error) {
	r := &Round{
		ID:         uuid.NewString(),
		Username:   username,
		Grade:      grade,
		TargetWord: strings.TrimSpace(targetWord),
		CreatedAt:  s.now(),
	}

	mistakes := s.glossary.List(ctx, username)
	if r.TargetWord == "" {
		if rec, ok := s.selector.Pick(mistakes); ok {
			r.TargetWord = rec.Word
			r.TargetMistakeID = rec.ID
		}
	} else if rec, ok := glossary.FindWord(mistakes, r.TargetWord); ok {
		r.TargetMistakeID = rec.ID
	}

	r.Sentence = s.sentences.Generate(ctx, grade, r.TargetWord)

	audio, err := s.speech.Synthesize(ctx, r.Sentence.Text)
	if err != nil {
		s.logger.WithError(err).WithField("user", username).Warn("speech synthesis failed")
		return nil, fmt.Errorf("%w: %w", ErrAudioUnavailable, err)
	}
	r.Audio = audio

	s.logger.WithFields(logrus.Fields{
		"user":     username,
		"grade":    grade,
		"target":   r.TargetWord,
		"fallback": r.Sentence.Fallback,
	}).Info("round ready")
	return r, nil
}

// Check grades attempt against the round, records it in the practice log
// and applies the mastery update. Storage failures are logged and do not
// fail the check.
func (s *Service) Check(ctx context.Context, r *Round, attempt string) (*Outcome, error) {
	if strings.TrimSpace(attempt) == "" {
		return nil, ErrEmptyAttempt
	}

	res := grading.Check(r.Sentence.Text, attempt)
	out := &Outcome{Result: res, Attempt: attempt}

	rec := &store.PracticeSession{
		Username:   r.Username,
		Grade:      r.Grade,
		Correct:    res.Correct,
		Text:       r.Sentence.Text,
		Attempt:    attempt,
		TargetWord: r.TargetWord,
		Timestamp:  s.now(),
	}
	if err := s.sessions.Append(ctx, rec); err != nil {
		s.logger.WithError(err).WithField("user", r.Username).Warn("record practice session")
	}

	applied, err := s.glossary.Apply(ctx, glossary.Update{
		Username: r.Username,
		Correct:  res.Correct,
		TargetID: r.TargetMistakeID,
		Diff:     res.Diff,
		Sentence: r.Sentence.Text,
		Grade:    r.Grade,
	})
	if err != nil {
		s.logger.WithError(err).WithField("user", r.Username).Warn("update glossary")
	}
	out.MasteryRemoved = applied.MasteryRemoved
	out.Target = applied.Target
	out.NewMistakes = applied.Added

	s.logger.WithFields(logrus.Fields{
		"user":    r.Username,
		"correct": res.Correct,
		"retired": applied.MasteryRemoved,
	}).Info("attempt checked")
	return out, nil
}
