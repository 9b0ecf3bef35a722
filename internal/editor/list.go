// Package editor implements the form editor's edits on CV data. Every edit returns a complete
// replacement of the owning collection; entries other than the target are carried over unchanged
// and the input slice is never modified.
package editor

import "slices"

// Prepend returns a new slice with item first.
func Prepend[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

// RemoveByID returns a new slice without the entry whose id matches. Other entries keep their
// relative order.
func RemoveByID[T any](items []T, id string, idOf func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if idOf(it) != id {
			out = append(out, it)
		}
	}
	return out
}

// MapByID returns a new slice in which only the entry whose id matches has been replaced by fn.
func MapByID[T any](items []T, id string, idOf func(T) string, fn func(T) T) []T {
	out := slices.Clone(items)
	if out == nil {
		out = []T{}
	}
	for i, it := range out {
		if idOf(it) == id {
			out[i] = fn(it)
		}
	}
	return out
}

// ContainsID reports whether an entry with id exists.
func ContainsID[T any](items []T, id string, idOf func(T) string) bool {
	return slices.ContainsFunc(items, func(it T) bool { return idOf(it) == id })
}
