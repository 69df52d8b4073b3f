// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package validate collects field errors for one input and reports them as a
single VALIDATION_ERROR.

Handlers check request shape; services re-check business rules such as
content length so every caller gets them. Stores never validate.

	err := (&validate.Validator{}).
		Username("username", input.Username).
		Email("email", input.Email).
		Err()

A Validator is single-use and not safe for concurrent use.
*/
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
)

// ErrInvalidJSON is the response for an undecodable request body.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

var handlePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,30}$`)

const msgRequired = "This field is required"

type Validator struct {
	errs []apperr.FieldError
}

// # Rules

func (v *Validator) Required(field, value string) *Validator {
	return v.check(field, strings.TrimSpace(value) != "", msgRequired)
}

// MinLen and MaxLen count code points, not bytes.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	return v.check(field, utf8.RuneCountInString(value) >= min, fmt.Sprintf("Minimum %d characters", min))
}

func (v *Validator) MaxLen(field, value string, max int) *Validator {
	return v.check(field, utf8.RuneCountInString(value) <= max, fmt.Sprintf("Maximum %d characters", max))
}

// OptionalMaxLen skips nil, which partial updates use for "unchanged".
func (v *Validator) OptionalMaxLen(field string, value *string, max int) *Validator {
	if value == nil {
		return v
	}
	return v.MaxLen(field, *value, max)
}

func (v *Validator) Email(field, value string) *Validator {
	_, err := mail.ParseAddress(value)
	return v.check(field, err == nil, "Must be a valid email address")
}

// Username accepts 3 to 30 ASCII letters, digits or underscores.
func (v *Validator) Username(field, value string) *Validator {
	return v.check(field, handlePattern.MatchString(value), "Must be 3-30 letters, digits, or underscores")
}

// Content is the post and comment body rule: non-blank and at most max code
// points. It records at most one error.
func (v *Validator) Content(field, value string, max int) *Validator {
	if strings.TrimSpace(value) == "" {
		return v.check(field, false, msgRequired)
	}
	return v.MaxLen(field, value, max)
}

func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	return v.check(field, slices.Contains(allowed, value), "Must be one of: "+strings.Join(allowed, ", "))
}

// # Results

func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Err returns nil when every rule passed.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

func (v *Validator) check(field string, ok bool, message string) *Validator {
	if !ok {
		v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

// Invalid is a one-field VALIDATION_ERROR for rules checked outside a chain,
// such as a reply whose parent sits on another post.
func Invalid(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{Field: field, Message: message})
}
