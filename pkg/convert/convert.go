// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package convert parses loosely typed text, such as query parameters and
// command arguments, where a malformed value means "use the default".
package convert

import (
	"strconv"
	"strings"
)

// ToIntD parses s as a base-10 int, returning def when s is blank or invalid.
func ToIntD(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
