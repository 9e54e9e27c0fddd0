package main

import (
	"context"
	"errors"
	"fmt"

	"comunidad/internal/store"
	"comunidad/pkg/types"

	"github.com/urfave/cli/v2"
)

var purgeParticipantCommand = &cli.Command{
	Name:  "purge-participant",
	Usage: "Delete a participant and every need they submitted",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "email",
			Usage:    "Email the participant registered with",
			Required: true,
		},
	},
	Action: func(c *cli.Context) error {
		ctx := context.Background()

		_, logger, pool, err := setup(ctx, c)
		if err != nil {
			return err
		}
		defer pool.Close()

		email := c.String("email")
		err = store.NewParticipantRepository(pool).DeleteParticipantByEmail(ctx, email)
		if errors.Is(err, types.ErrParticipantNotFound) {
			return fmt.Errorf("no participant registered with %s", email)
		}
		if err != nil {
			return fmt.Errorf("failed to purge participant: %w", err)
		}

		logger.WithField("email", email).Info("participant and their needs deleted")
		return nil
	},
}
