// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice complements the standard [slices] package with the small
generic helpers used to shape query results for pages and charts.
*/
package slice

// Map transforms every element of input.
//
// The result is never nil, so an empty input still encodes as a JSON array.
func Map[T any, U any](input []T, transform func(T) U) []U {
	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// Index builds a lookup table from input. Later elements win on duplicate keys.
func Index[T any, K comparable, V any](input []T, entry func(T) (K, V)) map[K]V {
	result := make(map[K]V, len(input))
	for _, v := range input {
		key, value := entry(v)
		result[key] = value
	}
	return result
}
