// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list-valued settings and arguments.
package query

import (
	"strings"
)

// StringSlice parses a single comma-separated string into a trimmed slice of
// strings. Empty entries are dropped.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}

	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// Unique returns vals without duplicates, keeping the first occurrence order.
func Unique(vals []string) []string {
	seen := make(map[string]struct{}, len(vals))
	res := make([]string, 0, len(vals))
	for _, v := range vals {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		res = append(res, v)
	}
	return res
}
