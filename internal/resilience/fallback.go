package resilience

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrAllFailed is returned when every entry of a [Group] failed or had an
// open breaker.
var ErrAllFailed = errors.New("all providers failed")

type entry[T any] struct {
	name    string
	value   T
	breaker *CircuitBreaker
}

// Group holds a primary backend and ordered fallbacks, each behind its own
// circuit breaker.
type Group[T any] struct {
	entries []entry[T]
	cfg     BreakerConfig
	logger  logrus.FieldLogger
}

// NewGroup creates a Group with primary as the first entry. cfg is the
// template for every entry's breaker; its Name is replaced per entry.
func NewGroup[T any](primaryName string, primary T, cfg BreakerConfig) *Group[T] {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	g := &Group[T]{cfg: cfg, logger: logger}
	g.Add(primaryName, primary)
	return g
}

// Add appends a fallback. Entries are tried in the order they were added.
func (g *Group[T]) Add(name string, value T) {
	cfg := g.cfg
	cfg.Name = name
	g.entries = append(g.entries, entry[T]{name: name, value: value, breaker: NewCircuitBreaker(cfg)})
}

// Names returns the entry names in try order.
func (g *Group[T]) Names() []string {
	out := make([]string, len(g.entries))
	for i, e := range g.entries {
		out[i] = e.name
	}
	return out
}

// Breaker returns the breaker guarding the named entry, or nil.
func (g *Group[T]) Breaker(name string) *CircuitBreaker {
	for _, e := range g.entries {
		if e.name == name {
			return e.breaker
		}
	}
	return nil
}

// Execute tries fn against each entry until one succeeds. It returns the
// result and the name of the entry that produced it.
func Execute[T, R any](g *Group[T], fn func(T) (R, error)) (R, string, error) {
	var (
		zero    R
		lastErr error
	)
	for i := range g.entries {
		e := &g.entries[i]
		var result R
		err := e.breaker.Execute(func() error {
			var innerErr error
			result, innerErr = fn(e.value)
			return innerErr
		})
		if err == nil {
			return result, e.name, nil
		}
		lastErr = err
		if errors.Is(err, ErrCircuitOpen) {
			g.logger.WithField("provider", e.name).Debug("skipping provider, circuit open")
		} else {
			g.logger.WithError(err).WithField("provider", e.name).Warn("provider failed, trying next")
		}
	}
	return zero, "", fmt.Errorf("%w: %w", ErrAllFailed, lastErr)
}
