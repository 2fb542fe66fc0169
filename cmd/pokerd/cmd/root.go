package cmd

import (
	"io"
	"os"
	"time"

	"github.com/pokerd/pokerd/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const AppName = "pokerd"

// NewRootCmd creates the root command. It is called once in main.
func NewRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           AppName,
		Short:         "Multi-table Texas Hold'em server",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (yaml, toml or json)")

	rootCmd.AddCommand(
		newServeCmd(&configPath),
	)

	return rootCmd
}

func loadConfig(path string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	return cfg, newLogger(cfg, os.Stderr), nil
}

func newLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	if cfg.Log.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).
		Level(cfg.LogLevel()).
		With().
		Timestamp().
		Str("app", AppName).
		Logger()
}
