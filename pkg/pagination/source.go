// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination

import "context"

// Source is a countable, range-sliceable listing over a stable ordering.
//
// Slice receives a half-open range [start, end) and must clip it to the
// available rows rather than fail.
type Source[T any] interface {
	Count(ctx context.Context) (int, error)
	Slice(ctx context.Context, start, end int) ([]T, error)
}

// Funcs adapts a pair of repository functions into a [Source].
//
// List receives an OFFSET/LIMIT pair, matching the SQL the stores issue.
type Funcs[T any] struct {
	CountFunc func(ctx context.Context) (int, error)
	ListFunc  func(ctx context.Context, offset, limit int) ([]T, error)
}

// Count implements [Source].
func (funcs Funcs[T]) Count(ctx context.Context) (int, error) {
	return funcs.CountFunc(ctx)
}

// Slice implements [Source].
func (funcs Funcs[T]) Slice(ctx context.Context, start, end int) ([]T, error) {
	return funcs.ListFunc(ctx, start, end-start)
}

// Items is an in-memory [Source].
type Items[T any] []T

// Count implements [Source].
func (items Items[T]) Count(context.Context) (int, error) {
	return len(items), nil
}

// Slice implements [Source].
func (items Items[T]) Slice(_ context.Context, start, end int) ([]T, error) {
	start = clampInt(start, 0, len(items))
	end = clampInt(end, start, len(items))
	return items[start:end], nil
}
