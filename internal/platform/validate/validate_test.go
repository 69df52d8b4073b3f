// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/platform/validate"
)

/*
TestValidator_Rules runs each rule against a passing and a failing value.
*/
func TestValidator_Rules(t *testing.T) {
	long := strings.Repeat("x", 161)

	tests := []struct {
		name  string
		apply func(v *validate.Validator)
		fails bool
	}{
		{"required", func(v *validate.Validator) { v.Required("name", "johndoe") }, false},
		{"required blank", func(v *validate.Validator) { v.Required("name", "  \t") }, true},
		{"email", func(v *validate.Validator) { v.Email("email", "john@example.com") }, false},
		{"email no domain", func(v *validate.Validator) { v.Email("email", "john@") }, true},
		{"email empty", func(v *validate.Validator) { v.Email("email", "") }, true},
		{"username", func(v *validate.Validator) { v.Username("username", "mike_dev42") }, false},
		{"username short", func(v *validate.Validator) { v.Username("username", "ab") }, true},
		{"username dash", func(v *validate.Validator) { v.Username("username", "dash-name") }, true},
		{"min len code points", func(v *validate.Validator) { v.MinLen("password", "éééééé", 6) }, false},
		{"min len short", func(v *validate.Validator) { v.MinLen("password", "abc", 6) }, true},
		{"optional nil", func(v *validate.Validator) { v.OptionalMaxLen("bio", nil, 160) }, false},
		{"optional long", func(v *validate.Validator) { v.OptionalMaxLen("bio", &long, 160) }, true},
		{"one of", func(v *validate.Validator) { v.OneOf("theme", "dark", "light", "dark") }, false},
		{"one of unknown", func(v *validate.Validator) { v.OneOf("theme", "sepia", "light", "dark") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			tt.apply(v)
			assert.Equal(t, tt.fails, v.HasErrors())
		})
	}
}

/*
TestValidator_Content checks the post and comment body rule.
*/
func TestValidator_Content(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"plain", "Hello world", true},
		{"empty", "", false},
		{"whitespace_only", " \n\t ", false},
		{"exactly_max_code_points", strings.Repeat("é", 280), true},
		{"over_max_code_points", strings.Repeat("a", 281), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Content("content", tt.value, 280)

			assert.Equal(t, !tt.isValid, v.HasErrors())
			if !tt.isValid {
				ae := apperr.As(v.Err())
				require.NotNil(t, ae)
				assert.Len(t, ae.Details, 1)
			}
		})
	}
}

/*
TestValidator_Accumulates verifies a chain reports every failing field.
*/
func TestValidator_Accumulates(t *testing.T) {
	err := (&validate.Validator{}).
		Username("username", "").
		Email("email", "not-an-email").
		MinLen("password", "abc", 6).
		Err()

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeValidation, ae.Code)

	fields := make([]string, 0, len(ae.Details))
	for _, detail := range ae.Details {
		fields = append(fields, detail.Field)
	}
	assert.Equal(t, []string{"username", "email", "password"}, fields)

	assert.NoError(t, (&validate.Validator{}).Required("name", "tai").Err())
}

/*
TestInvalid builds a single-field error.
*/
func TestInvalid(t *testing.T) {
	ae := validate.Invalid("parentId", "Must reference a comment on the same post")
	assert.Equal(t, apperr.CodeValidation, ae.Code)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, "parentId", ae.Details[0].Field)
}
