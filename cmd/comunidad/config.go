package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"comunidad/internal/db"
	"comunidad/pkg/types"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func loadConfig(prefix string) (*types.Config, error) {
	// A .env file is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env file: %w", err)
	}

	c := new(types.Config)
	if err := envconfig.Process(prefix, c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("set %s", envName(prefix, "DATABASE_URL"))
	}

	if len(c.AllowedOrigins) == 0 {
		return nil, fmt.Errorf("set %s", envName(prefix, "CORS_ORIGINS"))
	}

	return c, nil
}

func envName(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return strings.ToUpper(prefix) + "_" + key
}

func newLogger(config *types.Config) (*logrus.Logger, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", config.LogLevel, err)
	}
	logger.SetLevel(level)

	switch config.LogFormat {
	case "", "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("invalid log format %q, expected json or text", config.LogFormat)
	}

	return logger, nil
}

// setup loads config, builds the logger and connects to the database. The
// caller owns the returned pool.
func setup(ctx context.Context, cCtx *cli.Context) (*types.Config, *logrus.Logger, *pgxpool.Pool, error) {
	config, err := loadConfig(cCtx.String("env-prefix"))
	if err != nil {
		return nil, nil, nil, err
	}

	logger, err := newLogger(config)
	if err != nil {
		return nil, nil, nil, err
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return nil, nil, nil, err
	}

	return config, logger, pool, nil
}
