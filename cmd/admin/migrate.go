package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pginfra "github.com/emprendevoz/emprende-api/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate up|down",
	Short:     "Apply or revert database migrations",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(pginfra.Up), string(pginfra.Down)},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		dir := pginfra.Direction(args[0])
		if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, dir, logger); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "migrations %s: ok\n", dir)
		return nil
	},
}
