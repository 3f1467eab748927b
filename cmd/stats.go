package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/spellbound/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a learner's practice statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		u, err := requireUser(cmd, st)
		if err != nil {
			return err
		}

		records, err := st.SessionRepo().List(cmd.Context(), u.Username, 0)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		sum := stats.Summarize(records)
		if sum.Total == 0 {
			fmt.Printf("%s has not practiced yet.\n", u.Username)
			return nil
		}

		fmt.Printf("Sentences: %d   Correct: %d   Accuracy: %d%%\n\n", sum.Total, sum.Correct, sum.Accuracy)

		fmt.Printf("%-12s  %6s  %8s  %8s\n", "Grade", "Total", "Correct", "Accuracy")
		fmt.Println(strings.Repeat("─", 42))
		for _, g := range sum.ByGrade {
			fmt.Printf("%-12s  %6d  %8d  %7d%%\n", g.Grade, g.Total, g.Correct, g.Accuracy)
		}

		fmt.Println()
		fmt.Println("Recent")
		fmt.Println(strings.Repeat("─", 72))
		for _, r := range sum.Recent {
			mark := "✓"
			if !r.Correct {
				mark = "✗"
			}
			fmt.Printf("%s  %-16s  %-10s  %s\n",
				mark, r.Timestamp.Local().Format("2006-01-02 15:04"), r.Grade, truncate(r.Text, 40))
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringP("user", "u", "", "Learner username")
}
