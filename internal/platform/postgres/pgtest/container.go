// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

/*
Package pgtest starts a throwaway PostgreSQL container for repository
integration tests, migrated with the embedded schema and seed data.
*/
package pgtest

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/taibuivan/rmc/data"
	"github.com/taibuivan/rmc/internal/platform/migration"
	rmcpostgres "github.com/taibuivan/rmc/internal/platform/postgres"
)

const image = "postgres:16-alpine"

// Database is a migrated container plus a pool connected to it.
type Database struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
}

/*
Start runs the container, applies the migrations and opens a pool.

Returns:
  - *Database: Ready to use; call Close when done
  - error: Container, migration or connection failures
*/
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx, image,
		postgres.WithDatabase("rmc"),
		postgres.WithUsername("rmc"),
		postgres.WithPassword("rmc"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("pgtest: start container: %w", err)
	}

	database := &Database{Container: container}
	if err := database.connect(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

func (database *Database) connect(ctx context.Context) error {
	dsn, err := database.Container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return fmt.Errorf("pgtest: connection string: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	migrations, err := fs.Sub(data.Migrations, "migrations")
	if err != nil {
		return fmt.Errorf("pgtest: migrations: %w", err)
	}
	if err := migration.RunUp(dsn, migrations, logger); err != nil {
		return err
	}

	database.Pool, err = rmcpostgres.NewPool(ctx, dsn, logger)
	return err
}

// Reset empties every table except the seeded degree programmes.
func (database *Database) Reset(ctx context.Context) error {
	_, err := database.Pool.Exec(ctx, `
		TRUNCATE academic.coursereview, academic.courseprogramme, academic.course, users.student, users.staff
		RESTART IDENTITY CASCADE`)
	return err
}

// Close releases the pool and terminates the container.
func (database *Database) Close() {
	if database.Pool != nil {
		database.Pool.Close()
	}
	if database.Container != nil {
		_ = database.Container.Terminate(context.Background())
	}
}
