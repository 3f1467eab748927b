package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/spellbound/internal/config"
	"github.com/abhisek/spellbound/internal/logging"
	"github.com/abhisek/spellbound/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "spellbound",
	Short: "Dictation spelling tutor",
	Long: "SpellBound reads a sentence aloud, you type it, and it keeps a glossary\n" +
		"of the words you missed so they come back until you master them.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides db.path)")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(glossaryCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(sayCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configuration and applies the --db override.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DB.Path = p
	}
	if err := store.EnsureDir(cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	return cfg, nil
}

// openStore loads the configuration and opens the database.
func openStore(cmd *cobra.Command) (*store.Store, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(cfg.DB.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return st, cfg, nil
}

// stderrLogger is the logger for non-interactive commands.
func stderrLogger(cfg *config.Config) (*logrus.Logger, error) {
	return logging.New(cfg.Log, os.Stderr)
}
