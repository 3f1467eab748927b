package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/spellbound/internal/app"
	"github.com/abhisek/spellbound/internal/logging"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the interactive tutor",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// runPlay opens the store, builds dependencies, and launches the TUI.
// The TUI owns the terminal so logs go to log.file.
func runPlay(cmd *cobra.Command) error {
	st, cfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	logger, closer, err := logging.NewFile(cfg.Log)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	svc, err := buildServices(cmd.Context(), cfg, st, logger)
	if err != nil {
		return err
	}
	if !svc.player.Available() {
		logger.WithField("command", cfg.Speech.Player).Warn("audio player not found, sentences will not be spoken")
	}

	return app.Run(app.Options{
		Auth:     svc.auth,
		Practice: svc.practice,
		Glossary: svc.glossary,
		Sessions: svc.sessions,
		Player:   svc.player,
		Logger:   logger,
	})
}
