package root

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/getaltair/altair-sub003/internal/assist"
	"github.com/getaltair/altair-sub003/internal/logging"
	"github.com/getaltair/altair-sub003/internal/scheduler"
	"github.com/getaltair/altair-sub003/internal/server"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the routine scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Optional .env for local development; absence is fine.
			_ = godotenv.Load()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			svc, cfg, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			log := logging.New(cfg.LogFormat, slog.LevelInfo)

			var provider assist.Provider
			if cfg.Assist.APIKey != "" {
				provider = assist.NewOpenAIProvider(assist.OpenAIConfig{
					APIKey:  cfg.Assist.APIKey,
					BaseURL: cfg.Assist.BaseURL,
					Model:   cfg.Assist.Model,
				})
			}

			sched := scheduler.New(svc, log, scheduler.DefaultInterval)
			go func() {
				if err := sched.Run(ctx); err != nil && ctx.Err() == nil {
					log.Error("scheduler stopped", "error", err)
				}
			}()

			if addr == "" {
				addr = cfg.Addr
			}
			log.Info("serving", "addr", addr)
			return server.New(svc, provider, log).Run(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}
