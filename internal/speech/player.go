package speech

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrNoPlayer is returned when no audio player command is configured or
// the command cannot be found.
var ErrNoPlayer = errors.New("no audio player available")

// Player plays audio through an external command such as "aplay -q" or
// "afplay". The WAV file path is appended as the last argument.
type Player struct {
	command []string
	logger  logrus.FieldLogger
}

// NewPlayer creates a player for command.
func NewPlayer(command string, logger logrus.FieldLogger) *Player {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Player{command: strings.Fields(command), logger: logger.WithField("component", "player")}
}

// Available reports whether the player command can be found.
func (p *Player) Available() bool {
	if len(p.command) == 0 {
		return false
	}
	_, err := exec.LookPath(p.command[0])
	return err == nil
}

// Play writes audio to a temporary WAV file and blocks until the player
// exits or ctx is cancelled.
func (p *Player) Play(ctx context.Context, a *Audio) error {
	if !p.Available() {
		p.logger.WithField("command", strings.Join(p.command, " ")).Warn("audio player not found")
		return ErrNoPlayer
	}

	f, err := os.CreateTemp("", "spellbound-*.wav")
	if err != nil {
		return fmt.Errorf("create temp wav: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(EncodeWAV(a)); err != nil {
		f.Close()
		return fmt.Errorf("write temp wav: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp wav: %w", err)
	}

	args := append(append([]string(nil), p.command[1:]...), f.Name())
	cmd := exec.CommandContext(ctx, p.command[0], args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		p.logger.WithError(err).WithField("output", strings.TrimSpace(string(out))).Warn("audio player failed")
		return fmt.Errorf("play audio: %w", err)
	}
	return nil
}
