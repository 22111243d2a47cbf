// Package provision brings an uninitialized PostgreSQL server up to the
// schema the service expects. It is safe to run on every process start:
// the target database is created on first run if absent, and all schema
// changes are applied through versioned, idempotent migrations.
package provision

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/hunterxdhanush/mindful-mentor/internal/logging"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/migrations"
)

// PostgreSQL SQLSTATE codes this package distinguishes.
const (
	codeInvalidCatalogName = "3D000" // target database does not exist
	codeDuplicateDatabase  = "42P04" // lost a race with a concurrent provisioner
)

// adminDatabase is the default maintenance database used to issue
// CREATE DATABASE for the target.
const adminDatabase = "postgres"

// openDB is a seam for testing the bootstrap flow without a live server.
var openDB = open

// applyMigrations is a seam for testing goose.UpContext.
var applyMigrations = runMigrations

// EnsureReady opens the target database, creating it first if the server
// reports it missing, and applies all pending migrations. Any error returned
// here is fatal: the caller must not start serving traffic.
//
// The recovery flow on a missing database is bounded to exactly one retry:
// connect -> on invalid_catalog_name, connect to the admin database ->
// CREATE DATABASE (duplicate_database swallowed) -> reconnect.
func EnsureReady(ctx context.Context, dsn string, logger logging.Logger) (*sql.DB, error) {
	db, err := openDB(ctx, dsn)
	if err != nil {
		if !isDatabaseMissing(err) {
			return nil, fmt.Errorf("db open error: %w", err)
		}
		if err := createTargetDatabase(ctx, dsn, logger); err != nil {
			return nil, err
		}
		db, err = openDB(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("db open error after create: %w", err)
		}
	}

	if err := applyMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	logger.Info(ctx, "schema ready", "dsn_host", dsnHost(dsn))
	return db, nil
}

func open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func createTargetDatabase(ctx context.Context, dsn string, logger logging.Logger) error {
	target, adminDSN, err := splitDSN(dsn)
	if err != nil {
		return fmt.Errorf("cannot derive admin DSN: %w", err)
	}

	adminDB, err := openDB(ctx, adminDSN)
	if err != nil {
		return fmt.Errorf("admin db open error: %w", err)
	}
	defer adminDB.Close()

	// CREATE DATABASE cannot be parameterized; sanitize the identifier.
	stmt := "CREATE DATABASE " + pgx.Identifier{target}.Sanitize()
	if _, err := adminDB.ExecContext(ctx, stmt); err != nil {
		if isDuplicateDatabase(err) {
			logger.Warn(ctx, "database already exists, continuing", "name", target)
			return nil
		}
		return fmt.Errorf("create database %s: %w", target, err)
	}

	logger.Info(ctx, "created database", "name", target)
	return nil
}

// splitDSN extracts the target database name from a postgres:// URL and
// returns a DSN pointing at the admin maintenance database instead.
func splitDSN(dsn string) (target string, adminDSN string, err error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", "", err
	}
	target = strings.TrimPrefix(u.Path, "/")
	if target == "" {
		return "", "", fmt.Errorf("dsn has no database name: %s", u.Redacted())
	}
	u.Path = "/" + adminDatabase
	return target, u.String(), nil
}

func dsnHost(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return ""
	}
	return u.Host
}

func isDatabaseMissing(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeInvalidCatalogName
	}
	// some poolers report the condition without an SQLSTATE
	return err != nil && strings.Contains(err.Error(), "does not exist")
}

func isDuplicateDatabase(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeDuplicateDatabase
	}
	return err != nil && strings.Contains(err.Error(), "already exists")
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}
