package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/spellbound/internal/speech"
)

var sayCmd = &cobra.Command{
	Use:   "say <text>",
	Short: "Speak text with the configured voice, or save it as WAV",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := stderrLogger(cfg)
		if err != nil {
			return err
		}

		synth, err := newSynthesizer(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		audio, err := synth.Synthesize(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("synthesize: %w", err)
		}

		if out, _ := cmd.Flags().GetString("out"); out != "" {
			if err := os.WriteFile(out, speech.EncodeWAV(audio), 0o644); err != nil {
				return fmt.Errorf("write wav: %w", err)
			}
			fmt.Printf("Wrote %s (%s)\n", out, audio.Duration().Round(100*time.Millisecond))
			return nil
		}
		return speech.NewPlayer(cfg.Speech.Player, logger).Play(cmd.Context(), audio)
	},
}

func init() {
	sayCmd.Flags().StringP("out", "o", "", "Write a WAV file instead of playing")
}
