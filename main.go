package main

import (
	"context"
	"os"
	"time"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:           "portfolio-backend",
		Short:         "REST backend for the portfolio site",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			cfg = loaded
			setupLogger(cfg)
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(
		serveCmd,
		migrateCmd,
		backupCmd,
		generateModelsCmd,
		columnReportCmd,
	)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

// setupLogger configures the global zerolog logger from cfg.
func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
