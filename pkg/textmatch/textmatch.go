// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package textmatch implements the case-insensitive substring search used by
post and user search.

Matching folds both sides with Unicode case folding ([cases.Fold]) after NFC
normalization, so "STRASSE" finds "straße" and composed/decomposed accents
compare equal.
*/
package textmatch

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold returns the normalized, case-folded form of value.
//
// A new [cases.Caser] is built per call because casers are stateful and not
// safe for concurrent use.
func Fold(value string) string {
	return cases.Fold().String(norm.NFC.String(value))
}

// Matcher holds a pre-folded query.
type Matcher struct {
	needle string
}

// New prepares a matcher for query. Surrounding whitespace is ignored.
func New(query string) Matcher {
	return Matcher{needle: Fold(strings.TrimSpace(query))}
}

// Empty reports whether the query had no searchable content.
func (matcher Matcher) Empty() bool {
	return matcher.needle == ""
}

// Any reports whether any of the fields contains the query.
func (matcher Matcher) Any(fields ...string) bool {
	if matcher.needle == "" {
		return false
	}
	for _, field := range fields {
		if strings.Contains(Fold(field), matcher.needle) {
			return true
		}
	}
	return false
}
