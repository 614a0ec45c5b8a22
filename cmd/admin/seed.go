package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pginfra "github.com/emprendevoz/emprende-api/internal/infrastructure/postgres"
	"github.com/emprendevoz/emprende-api/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the reference catalog and the demo account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		pool, err := pginfra.NewPool(ctx, pginfra.PoolConfigFrom(cfg))
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := seed.New(pool, logger).Run(ctx); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seed complete; demo login %s / %s\n", seed.DemoEmail, seed.DemoPassword)
		return nil
	},
}
