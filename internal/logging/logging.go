// Package logging builds the logrus logger shared by every component.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/spellbound/internal/config"
	"github.com/abhisek/spellbound/internal/store"
)

// New builds a logger writing to out.
func New(cfg config.LogConfig, out io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(level)
	logger.SetOutput(out)
	switch cfg.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	}
	return logger, nil
}

// NewFile builds a logger appending to cfg.File. Interactive screens own
// the terminal, so they log here instead of to stderr. The returned
// closer releases the file.
func NewFile(cfg config.LogConfig) (*logrus.Logger, io.Closer, error) {
	if cfg.File == "" {
		logger, err := New(cfg, io.Discard)
		return logger, io.NopCloser(nil), err
	}
	if err := store.EnsureDir(cfg.File); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger, err := New(cfg, f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}
