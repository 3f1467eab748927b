package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/spellbound/internal/auth"
	"github.com/abhisek/spellbound/internal/store"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Inspect registered learners",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered learners",
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
		users, err := auth.NewService(st.UserRepo(), logger).List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		if len(users) == 0 {
			fmt.Println("No users registered.")
			return nil
		}

		fmt.Printf("%-5s  %-24s  %s\n", "ID", "Username", "Email")
		fmt.Println(strings.Repeat("─", 60))
		for _, u := range users {
			fmt.Printf("%-5d  %-24s  %s\n", u.ID, truncate(u.Username, 24), u.Email)
		}
		return nil
	},
}

func init() {
	usersCmd.AddCommand(usersListCmd)
}

// requireUser resolves the --user flag to a registered learner.
func requireUser(cmd *cobra.Command, st *store.Store) (*auth.User, error) {
	username, _ := cmd.Flags().GetString("user")
	if username == "" {
		return nil, fmt.Errorf("--user is required")
	}
	svc := auth.NewService(st.UserRepo(), nil)
	return svc.Lookup(cmd.Context(), username)
}
