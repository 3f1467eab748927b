package speech

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/spellbound/internal/resilience"
)

// Failover implements Synthesizer over a primary backend and ordered
// fallbacks, each behind its own circuit breaker.
type Failover struct {
	group  *resilience.Group[Synthesizer]
	logger logrus.FieldLogger
}

// FailoverConfig tunes the per-backend breakers.
type FailoverConfig struct {
	MaxFailures  int
	ResetTimeout time.Duration
}

// NewFailover creates a Failover with primary as the preferred backend.
func NewFailover(primaryName string, primary Synthesizer, cfg FailoverConfig, logger logrus.FieldLogger) *Failover {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger = logger.WithField("component", "speech")
	return &Failover{
		group: resilience.NewGroup(primaryName, primary, resilience.BreakerConfig{
			MaxFailures:  cfg.MaxFailures,
			ResetTimeout: cfg.ResetTimeout,
			Logger:       logger,
		}),
		logger: logger,
	}
}

// Add registers a fallback backend.
func (f *Failover) Add(name string, s Synthesizer) {
	f.group.Add(name, s)
}

// Backends returns backend names in try order.
func (f *Failover) Backends() []string {
	return f.group.Names()
}

func (f *Failover) Synthesize(ctx context.Context, text string) (*Audio, error) {
	audio, from, err := resilience.Execute(f.group, func(s Synthesizer) (*Audio, error) {
		return s.Synthesize(ctx, text)
	})
	if err != nil {
		return nil, err
	}
	f.logger.WithFields(logrus.Fields{
		"backend":  from,
		"bytes":    len(audio.PCM),
		"duration": audio.Duration().String(),
	}).Debug("synthesized")
	return audio, nil
}
