package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/emprendevoz/emprende-api/config"
	"github.com/emprendevoz/emprende-api/pkg/helpers"
)

var rootCmd = &cobra.Command{
	Use:           "emprende-admin",
	Short:         "Operational commands for the Emprende Voz API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("migrations", "", "Migrations directory (overrides MIGRATIONS_DIR)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(certCmd)
	rootCmd.AddCommand(diagnosticCmd)
}

// loadEnv reads .env and the process environment into a validated config.
func loadEnv(cmd *cobra.Command) (*config.Config, *logrus.Logger, error) {
	_ = godotenv.Load()
	cfg := config.Load()
	if dir, _ := cmd.Flags().GetString("migrations"); dir != "" {
		cfg.MigrationsDir = dir
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, helpers.NewLogger(cfg.AppName+"-admin", cfg.Env, helpers.WithLevel(cfg.LogLevel)), nil
}
