package main

import (
	"context"
	"fmt"

	"food_orders_backend/internal/config"
	"food_orders_backend/internal/database"
	"food_orders_backend/pkg/utils"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded SQL migrations to the configured Postgres database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			utils.InitLogger(cfg.Development())

			ctx := context.Background()
			db, err := database.Open(ctx, cfg.DB.DSN())
			if err != nil {
				return err
			}
			defer closeDB(db)

			if err := database.ApplyMigrations(ctx, db); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
