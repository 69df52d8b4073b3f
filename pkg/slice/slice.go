// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slice holds the generic helpers the in-memory stores use to turn
// table rows into response values.
package slice

// Map returns transform applied to every element, keeping order. A nil input
// yields nil.
func Map[T, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	out := make([]U, 0, len(input))
	for _, item := range input {
		out = append(out, transform(item))
	}
	return out
}

// Filter returns the elements for which keep is true, keeping order.
func Filter[T any](input []T, keep func(T) bool) []T {
	var out []T
	for _, item := range input {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
