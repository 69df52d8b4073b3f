// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/platform/dberr"
)

/*
TestWrap verifies the mapping of driver errors to application error codes.
*/
func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), apperr.CodeNotFound},
		{"unique", &pgconn.PgError{Code: "23505"}, apperr.CodeConflict},
		{"check", &pgconn.PgError{Code: "23514"}, apperr.CodeValidation},
		{"already classified", apperr.SelfFollow(), apperr.CodeSelfFollow},
		{"unknown", errors.New("connection reset"), apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, apperr.HasCode(dberr.Wrap(tt.err, "Post"), tt.code))
		})
	}

	assert.Nil(t, dberr.Wrap(nil, "Post"))
	assert.Equal(t, "Post not found", dberr.Wrap(pgx.ErrNoRows, "Post").Error())
}
