package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"comunidad/internal/db"
	"comunidad/internal/server"
	"comunidad/internal/store"

	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, logger, pool, err := setup(ctx, cCtx)
	if err != nil {
		return err
	}
	defer pool.Close()

	if config.AutoMigrate {
		applied, err := db.Migrate(ctx, pool, config.DatabaseSchema, logger)
		if err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.WithField("applied", len(applied)).Info("migrations complete")
	}

	participantRepo := store.NewParticipantRepository(pool)
	categoryRepo := store.NewCategoryRepository(pool)
	questionRepo := store.NewQuestionRepository(pool)
	needRepo := store.NewNeedRepository(pool)
	reportRepo := store.NewReportRepository(pool)
	healthRepo := store.NewHealthRepository(pool)

	srv, err := server.New(
		config,
		logger,
		participantRepo,
		categoryRepo,
		questionRepo,
		needRepo,
		reportRepo,
		healthRepo,
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
