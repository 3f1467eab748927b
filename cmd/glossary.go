package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/spellbound/internal/export"
	"github.com/abhisek/spellbound/internal/glossary"
)

var glossaryCmd = &cobra.Command{
	Use:   "glossary",
	Short: "Manage a learner's misspelled words",
}

var glossaryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List glossary words, newest first",
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

		query, _ := cmd.Flags().GetString("query")
		grade, _ := cmd.Flags().GetString("grade")
		svc := glossary.NewService(st.MistakeRepo(), logger)
		words := glossary.Filter(svc.List(cmd.Context(), u.Username), query, grade)
		if len(words) == 0 {
			fmt.Println("No words in the glossary.")
			return nil
		}

		fmt.Printf("%-18s  %-18s  %-10s  %-7s  %s\n", "Word", "Typed", "Grade", "Mastery", "Added")
		fmt.Println(strings.Repeat("─", 80))
		for _, r := range words {
			fmt.Printf("%-18s  %-18s  %-10s  %-7s  %s\n",
				truncate(r.Word, 18),
				truncate(r.UserSpelling, 18),
				r.Grade,
				fmt.Sprintf("%d/%d", r.MasteryScore, glossary.MaxMastery),
				r.Timestamp.Local().Format("2006-01-02 15:04"),
			)
		}
		return nil
	},
}

var glossaryDeleteCmd = &cobra.Command{
	Use:   "delete <word>",
	Short: "Remove one word from the glossary",
	Args:  cobra.ExactArgs(1),
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

		svc := glossary.NewService(st.MistakeRepo(), logger)
		rec, ok := glossary.FindWord(svc.List(cmd.Context(), u.Username), args[0])
		if !ok {
			return fmt.Errorf("%q is not in %s's glossary", args[0], u.Username)
		}
		if err := svc.Delete(cmd.Context(), rec.ID); err != nil {
			return fmt.Errorf("delete word: %w", err)
		}
		fmt.Printf("Removed %q.\n", rec.Word)
		return nil
	},
}

var glossaryClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every word from the glossary",
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

		n, err := glossary.NewService(st.MistakeRepo(), logger).Clear(cmd.Context(), u.Username)
		if err != nil {
			return fmt.Errorf("clear glossary: %w", err)
		}
		fmt.Printf("Removed %d words.\n", n)
		return nil
	},
}

var glossaryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the glossary and practice history to Excel or CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		formatFlag, _ := cmd.Flags().GetString("format")
		format, err := export.ParseFormat(formatFlag, out)
		if err != nil {
			return err
		}

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

		sessions, err := st.SessionRepo().List(cmd.Context(), u.Username, 0)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		paths, err := export.WriteFile(out, format, export.Data{
			Username: u.Username,
			Mistakes: glossary.NewService(st.MistakeRepo(), logger).List(cmd.Context(), u.Username),
			Sessions: sessions,
		})
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Println("Wrote", p)
		}
		return nil
	},
}

func init() {
	glossaryCmd.PersistentFlags().StringP("user", "u", "", "Learner username")

	glossaryListCmd.Flags().StringP("query", "q", "", "Only words containing this text")
	glossaryListCmd.Flags().StringP("grade", "g", "", "Only words from this grade")

	glossaryExportCmd.Flags().StringP("out", "o", "spellbound.xlsx", "Output file")
	glossaryExportCmd.Flags().String("format", "", "xlsx or csv (default: from the file extension)")

	glossaryCmd.AddCommand(glossaryListCmd)
	glossaryCmd.AddCommand(glossaryDeleteCmd)
	glossaryCmd.AddCommand(glossaryClearCmd)
	glossaryCmd.AddCommand(glossaryExportCmd)
}
