package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete a learner's glossary and practice history",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		logger, err := stderrLogger(cfg)
		if err != nil {
			return err
		}
		u, err := requireUser(cmd, st)
		if err != nil {
			return err
		}

		words, err := st.MistakeRepo().DeleteAll(cmd.Context(), u.Username)
		if err != nil {
			return fmt.Errorf("clear glossary: %w", err)
		}
		sessions, err := st.SessionRepo().DeleteAll(cmd.Context(), u.Username)
		if err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		logger.WithField("username", u.Username).Info("learner data reset")
		fmt.Printf("Removed %d words and %d practice records for %s.\n", words, sessions, u.Username)
		return nil
	},
}

func init() {
	resetCmd.Flags().StringP("user", "u", "", "Learner username")
}
