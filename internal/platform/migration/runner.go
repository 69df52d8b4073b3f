// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies data/migrations to the social schema with
// golang-migrate. Only the postgres store driver calls it.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

/*
RunUp brings the schema at dsn to the newest file under dir.

A database left dirty by a failed run is refused rather than retried; it needs
a manual `migrate force`.

Returns:
  - error: Unreachable database, dirty schema, or a failing migration
*/
func RunUp(dsn, dir string, logger *slog.Logger) error {
	migrator, err := migrate.New("file://"+dir, pgx5URL(dsn))
	if err != nil {
		return fmt.Errorf("migration_init_failed: %w", err)
	}
	defer func() {
		if sourceErr, dbErr := migrator.Close(); sourceErr != nil || dbErr != nil {
			logger.Warn("migration_close_failed", slog.Any("source_error", sourceErr), slog.Any("db_error", dbErr))
		}
	}()
	migrator.Log = slogBridge{logger: logger}

	from, dirty, err := version(migrator)
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("migration_dirty: schema stuck at version %d", from)
	}

	switch err := migrator.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("migration_up_to_date", slog.Uint64("version", uint64(from)))
		return nil
	case err != nil:
		return fmt.Errorf("migration_up_failed: %w", err)
	}

	to, _, _ := version(migrator)
	logger.Info("migration_applied", slog.Uint64("from_version", uint64(from)), slog.Uint64("to_version", uint64(to)))
	return nil
}

// version treats a never-migrated database as version 0.
func version(migrator *migrate.Migrate) (uint, bool, error) {
	current, dirty, err := migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migration_version_failed: %w", err)
	}
	return current, dirty, nil
}

// pgx5URL switches a postgres URL to the scheme the pgx/v5 driver registers.
// Keyword/value DSNs are returned unchanged.
func pgx5URL(dsn string) string {
	_, rest, found := strings.Cut(dsn, "://")
	if !found {
		return dsn
	}
	return "pgx5://" + rest
}

// slogBridge implements [migrate.Logger] at debug level.
type slogBridge struct{ logger *slog.Logger }

func (bridge slogBridge) Printf(format string, args ...any) {
	bridge.logger.Debug("migration_progress", slog.String("detail", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

func (slogBridge) Verbose() bool { return false }
