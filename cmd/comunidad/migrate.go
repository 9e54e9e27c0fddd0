package main

import (
	"context"
	"fmt"

	"comunidad/internal/db"

	"github.com/urfave/cli/v2"
)

var migrateCommand = &cli.Command{
	Name:  "migrate",
	Usage: "Apply pending database migrations",
	Action: func(c *cli.Context) error {
		ctx := context.Background()

		config, logger, pool, err := setup(ctx, c)
		if err != nil {
			return err
		}
		defer pool.Close()

		applied, err := db.Migrate(ctx, pool, config.DatabaseSchema, logger)
		if err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		if len(applied) == 0 {
			logger.Info("database is up to date")
			return nil
		}

		logger.WithField("versions", applied).Info("migrations applied")
		return nil
	},
}
