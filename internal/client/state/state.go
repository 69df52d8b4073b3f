// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package state holds one slice of client state and applies events to it.

A [Store] owns a value of type S and a pure [Reducer]. Every [Store.Dispatch]
replaces the value with reducer(value, event) under a lock, so each event is
one atomic step. Reducers must return a new value and never mutate their
input; snapshots handed out by [Store.Snapshot] are therefore safe to keep.
*/
package state

import (
	"sync"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
)

// Reducer computes the next state from the current one and an event.
type Reducer[S, E any] func(current S, event E) S

// Listener observes every state transition.
type Listener[S, E any] func(event E, next S)

// Store is a concurrency-safe container for one slice of state.
type Store[S, E any] struct {
	mu        sync.RWMutex
	current   S
	reduce    Reducer[S, E]
	listeners []Listener[S, E]
}

// New returns a [Store] holding initial.
func New[S, E any](initial S, reduce Reducer[S, E]) *Store[S, E] {
	return &Store[S, E]{current: initial, reduce: reduce}
}

// Dispatch applies event and returns the resulting state.
//
// Listeners run after the lock is released, in subscription order.
func (store *Store[S, E]) Dispatch(event E) S {
	store.mu.Lock()
	store.current = store.reduce(store.current, event)
	next := store.current
	listeners := store.listeners
	store.mu.Unlock()

	for _, listener := range listeners {
		listener(event, next)
	}
	return next
}

// Snapshot returns the current state.
func (store *Store[S, E]) Snapshot() S {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.current
}

// Subscribe registers listener for subsequent dispatches.
func (store *Store[S, E]) Subscribe(listener Listener[S, E]) {
	store.mu.Lock()
	defer store.mu.Unlock()

	// Copy on write so Dispatch can iterate without the lock.
	listeners := make([]Listener[S, E], len(store.listeners), len(store.listeners)+1)
	copy(listeners, store.listeners)
	store.listeners = append(listeners, listener)
}

// # Failure Messages

// Message returns the user-facing text of err, or fallback when err carries
// none.
func Message(err error, fallback string) string {
	if appError := apperr.As(err); appError != nil && appError.Message != "" {
		return appError.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}

// # Session Access

// Viewer returns the id of the signed-in account, or "" when anonymous.
type Viewer func() string

// Anonymous is a [Viewer] with no session.
func Anonymous() string { return "" }
