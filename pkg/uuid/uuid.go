// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates the identifiers of created rows: accounts, sessions,
posts, comments and follow edges, plus client-side notification ids.

Values are UUIDv7, so ids created later sort later. The seed fixture keeps
its short numeric ids; both forms are opaque strings to every caller.
*/
package uuid

import "github.com/google/uuid"

// New returns a fresh UUIDv7 string.
//
// It panics when the OS random source fails, which leaves nothing to recover.
func New() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
