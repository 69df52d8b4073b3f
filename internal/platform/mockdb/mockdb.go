// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mockdb is the in-memory source of truth behind the mock API.

It holds every account, post, like, comment, follow edge, verification request,
and refresh session in one [DB] object that is constructed explicitly and injected
into the domain repositories. Tests build isolated instances.

Concurrency:

  - Every operation first waits for the configured latency (the simulated
    network hop). That wait honours context cancellation.
  - The operation then runs as one critical section. [DB.Write] holds the write
    lock for the whole callback, so read-then-write sequences such as toggling
    a follow edge cannot interleave.

Callbacks passed to [DB.Write] must validate before mutating: returning an
error after a partial mutation leaves that mutation in place.
*/
package mockdb

import (
	"context"
	"sync"
	"time"
)

// DB is the mock data store.
type DB struct {
	mu      sync.RWMutex
	tables  *Tables
	latency time.Duration
	now     func() time.Time
}

// Option customizes a [DB].
type Option func(*DB)

// WithLatency sets the simulated delay applied before each operation.
func WithLatency(latency time.Duration) Option {
	return func(db *DB) { db.latency = latency }
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(db *DB) { db.now = now }
}

// New creates an empty store.
func New(opts ...Option) *DB {
	db := &DB{
		tables: newTables(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Now returns the store clock's current time in UTC.
func (db *DB) Now() time.Time {
	return db.now().UTC()
}

// Read runs fn under the shared lock after the simulated latency.
func (db *DB) Read(ctx context.Context, fn func(tables *Tables) error) error {
	if err := db.wait(ctx); err != nil {
		return err
	}

	db.mu.RLock()
	defer db.mu.RUnlock()
	return fn(db.tables)
}

// Write runs fn under the exclusive lock after the simulated latency.
func (db *DB) Write(ctx context.Context, fn func(tables *Tables) error) error {
	if err := db.wait(ctx); err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	return fn(db.tables)
}

// wait blocks for the configured latency or until ctx is done.
func (db *DB) wait(ctx context.Context) error {
	if db.latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(db.latency)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
