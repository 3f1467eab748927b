package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/spellbound/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API",
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

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		svc, err := buildServices(ctx, cfg, st, logger)
		if err != nil {
			return err
		}

		addr := cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		srv := httpapi.New(httpapi.Deps{
			Auth:     svc.auth,
			Glossary: svc.glossary,
			Practice: svc.practice,
			Sessions: svc.sessions,
			Logger:   logger,
		})
		return srv.Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Listen address (overrides server.addr)")
}
