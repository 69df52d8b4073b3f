// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis connects the two Redis consumers: the API's refresh-session
store and the CLI's persisted client state.

Both need little more than GET/SET/DEL with expiry, so the pool is small.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// # Connection

const (
	poolSize     = 8
	minIdleConns = 1
	ioTimeout    = 2 * time.Second
	pingTimeout  = 2 * time.Second
)

/*
NewClient dials url (redis:// or rediss://) and pings it before returning.

Returns:
  - error: Unparsable URL or an unreachable server; the client is closed
*/
func NewClient(context stdctx.Context, url string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis_url_invalid: %w", err)
	}

	options.PoolSize = poolSize
	options.MinIdleConns = minIdleConns
	options.ReadTimeout = ioTimeout
	options.WriteTimeout = ioTimeout

	client := redis.NewClient(options)
	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_connected", slog.String("addr", options.Addr), slog.Int("db", options.DB))
	return client, nil
}

// Ping is the readiness probe; it bounds the round trip to two seconds.
func Ping(context stdctx.Context, client redis.UniversalClient) error {
	bounded, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(bounded).Err(); err != nil {
		return fmt.Errorf("redis_ping_failed: %w", err)
	}
	return nil
}
