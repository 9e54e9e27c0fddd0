package main

import (
	"context"
	"fmt"

	"comunidad/internal/store"

	"github.com/k0kubun/pp/v3"
	"github.com/urfave/cli/v2"
)

var statsCommand = &cli.Command{
	Name:  "stats",
	Usage: "Print the number of needs per category",
	Action: func(c *cli.Context) error {
		ctx := context.Background()

		_, _, pool, err := setup(ctx, c)
		if err != nil {
			return err
		}
		defer pool.Close()

		stats, err := store.NewReportRepository(pool).CategoryStats(ctx)
		if err != nil {
			return fmt.Errorf("failed to load category stats: %w", err)
		}

		pp.Println(stats)
		return nil
	},
}
