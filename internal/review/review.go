// Package review decides when a practice sentence should revisit a word
// from the learner's glossary.
package review

import (
	"math/rand/v2"

	"github.com/abhisek/spellbound/internal/glossary"
)

// DefaultProbability is the chance that an untargeted sentence reviews a
// glossary word.
const DefaultProbability = 0.4

// Rand is the random source used by a Selector. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Selector picks glossary words for review.
type Selector struct {
	probability float64
	rnd         Rand
}

// Option configures a Selector.
type Option func(*Selector)

// WithProbability sets the review chance. Values outside [0,1] are clamped.
func WithProbability(p float64) Option {
	return func(s *Selector) {
		s.probability = min(max(p, 0), 1)
	}
}

// WithRand sets the random source.
func WithRand(r Rand) Option {
	return func(s *Selector) {
		s.rnd = r
	}
}

// NewSelector creates a Selector using the process-wide random source.
func NewSelector(opts ...Option) *Selector {
	s := &Selector{probability: DefaultProbability, rnd: globalRand{}}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Probability returns the configured review chance.
func (s *Selector) Probability() float64 { return s.probability }

// Pick returns a random record from mistakes, or false when the next
// sentence should not target any word.
func (s *Selector) Pick(mistakes []glossary.Record) (glossary.Record, bool) {
	if len(mistakes) == 0 || s.rnd.Float64() >= s.probability {
		return glossary.Record{}, false
	}
	return mistakes[s.rnd.IntN(len(mistakes))], true
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }
