package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pokerd/pokerd"
	"github.com/pokerd/pokerd/config"
	"github.com/pokerd/pokerd/server"
	"github.com/pokerd/pokerd/settlement"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and websocket server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, logger)
		},
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides http.addr")

	return serveCmd
}

func serve(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	outbox, err := settlement.Open(ctx, cfg.Settlement.Driver, cfg.Settlement.DSN)
	if err != nil {
		return err
	}
	defer func() {
		if err := outbox.Close(); err != nil {
			logger.Error().Err(err).Msg("close settlement outbox failed")
		}
	}()

	if len(cfg.Auth.Tokens) == 0 {
		logger.Warn().Msg("no auth tokens configured, bearer tokens are used as player ids")
	}

	manager := pokerd.NewManager()
	defer manager.Reset()

	options := server.NewOptions()
	options.Addr = cfg.HTTP.Addr
	options.Logger = logger
	options.Tokens = cfg.Auth.Tokens
	options.DefaultSetting = cfg.TableSetting()
	options.EngineOptions = cfg.EngineOptions(logger, outbox)

	logger.Info().
		Str("addr", cfg.HTTP.Addr).
		Str("settlement", cfg.Settlement.Driver).
		Int64("small_blind", cfg.Table.SmallBlind).
		Int64("big_blind", cfg.Table.BigBlind).
		Int("seat_capacity", cfg.Table.SeatCapacity).
		Msg("starting pokerd")

	return server.New(manager, options).ListenAndServe(ctx)
}
