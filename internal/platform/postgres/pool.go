// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package postgres owns the pgx pool behind the postgres store driver and the
transaction helper the repositories share.

Every counter update (likesCount, commentsCount, followersCount) happens in
the same transaction as the row it counts, through [WithTx].
*/
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-social/internal/platform/constants"
)

// # Pool

const (
	maxConns        = 16
	minConns        = 2
	maxConnIdleTime = 5 * time.Minute
	connectTimeout  = 5 * time.Second
	pingTimeout     = 2 * time.Second
)

/*
NewPool opens a pool on dsn and pings it.

Each connection runs with statement_timeout equal to the request deadline, so
a query cannot outlive the request that issued it.
*/
func NewPool(context context.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres_dsn_invalid: %w", err)
	}

	cfg.MaxConns = maxConns
	cfg.MinConns = minConns
	cfg.MaxConnIdleTime = maxConnIdleTime
	cfg.ConnConfig.ConnectTimeout = connectTimeout
	cfg.ConnConfig.RuntimeParams["statement_timeout"] = fmt.Sprint(constants.GlobalRequestTimeout.Milliseconds())
	cfg.ConnConfig.RuntimeParams["application_name"] = constants.AppName

	pool, err := pgxpool.NewWithConfig(context, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres_pool_failed: %w", err)
	}
	if err := Ping(context, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres_connected",
		slog.String("host", cfg.ConnConfig.Host),
		slog.String("database", cfg.ConnConfig.Database),
		slog.Int("max_conns", int(cfg.MaxConns)),
	)
	return pool, nil
}

// Ping is the readiness probe.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	bounded, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(bounded); err != nil {
		return fmt.Errorf("postgres_ping_failed: %w", err)
	}
	return nil
}

// # Transactions

// WithTx commits when fn returns nil and rolls back otherwise. A panic in fn
// rolls back and is re-raised.
func WithTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, pool, fn)
}
