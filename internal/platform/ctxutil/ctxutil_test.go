// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-social/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-social/internal/platform/sec"
)

/*
TestContext_Values verifies each value round-trips and that a bare context
yields the zero answers.
*/
func TestContext_Values(t *testing.T) {
	bare := context.Background()
	assert.Empty(t, ctxutil.RequestID(bare))
	assert.Same(t, slog.Default(), ctxutil.Logger(bare))
	assert.Nil(t, ctxutil.Claims(bare))
	assert.Empty(t, ctxutil.ViewerID(bare))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	claims := &sec.AuthClaims{UserID: "2", Username: "sarahtech", Role: string(sec.RoleMember)}

	ctx := ctxutil.WithRequestID(bare, "req-1")
	ctx = ctxutil.WithLogger(ctx, logger)
	ctx = ctxutil.WithClaims(ctx, claims)

	assert.Equal(t, "req-1", ctxutil.RequestID(ctx))
	assert.Same(t, logger, ctxutil.Logger(ctx))
	assert.Same(t, claims, ctxutil.Claims(ctx))
	assert.Equal(t, "2", ctxutil.ViewerID(ctx))
}

/*
TestContext_NilLogger falls back to the default logger.
*/
func TestContext_NilLogger(t *testing.T) {
	ctx := ctxutil.WithLogger(context.Background(), nil)
	assert.Same(t, slog.Default(), ctxutil.Logger(ctx))
}
