// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package state_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-social/internal/client/state"
	"github.com/taibuivan/yomira-social/internal/platform/apperr"
)

type counter struct {
	Value int
	Log   []string
}

type add struct {
	n    int
	note string
}

func reduce(current counter, event add) counter {
	next := current
	next.Value += event.n
	next.Log = append(append([]string(nil), current.Log...), event.note)
	return next
}

/*
TestStore_Dispatch verifies snapshots taken earlier are not affected by later events.
*/
func TestStore_Dispatch(t *testing.T) {
	store := state.New(counter{}, reduce)

	first := store.Dispatch(add{n: 1, note: "a"})
	store.Dispatch(add{n: 2, note: "b"})

	assert.Equal(t, counter{Value: 1, Log: []string{"a"}}, first)
	assert.Equal(t, counter{Value: 3, Log: []string{"a", "b"}}, store.Snapshot())
}

/*
TestStore_Subscribe verifies listeners see every event with the resulting state.
*/
func TestStore_Subscribe(t *testing.T) {
	store := state.New(counter{}, reduce)

	var seen []int
	store.Subscribe(func(event add, next counter) {
		seen = append(seen, next.Value)
	})

	store.Dispatch(add{n: 5})
	store.Dispatch(add{n: -2})

	assert.Equal(t, []int{5, 3}, seen)
}

/*
TestStore_ConcurrentDispatch verifies each event is applied exactly once.
*/
func TestStore_ConcurrentDispatch(t *testing.T) {
	store := state.New(counter{}, func(current counter, event add) counter {
		current.Value += event.n
		return current
	})

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Dispatch(add{n: 1})
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, store.Snapshot().Value)
}

/*
TestMessage verifies the failure message precedence.
*/
func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"app error", apperr.NotFound("Post"), "Post not found"},
		{"plain error", errors.New("boom"), "boom"},
		{"empty app error", &apperr.AppError{Code: apperr.CodeInternal}, "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, state.Message(tt.err, "fallback"))
		})
	}
}
