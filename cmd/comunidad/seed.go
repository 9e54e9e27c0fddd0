package main

import (
	"context"
	"fmt"
	"os"

	"comunidad/internal/seed"
	"comunidad/internal/store"

	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Sync the category and question catalogs into the database",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "prune",
			Usage: "Delete categories that are no longer in the catalog",
		},
	},
	Action: func(c *cli.Context) error {
		ctx := context.Background()

		_, logger, pool, err := setup(ctx, c)
		if err != nil {
			return err
		}
		defer pool.Close()

		logger.Info("Connected to database")

		logger.Info("Seeding categories...")
		if err := seed.SeedCategories(ctx, store.NewCategoryRepository(pool), c.Bool("prune"), os.Stdout); err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}

		logger.Info("Seeding questions...")
		if err := seed.SeedQuestions(ctx, store.NewQuestionRepository(pool), os.Stdout); err != nil {
			return fmt.Errorf("failed to seed questions: %w", err)
		}

		logger.Info("Catalogs seeded successfully")
		return nil
	},
}
