// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

/*
Package pointer removes the boilerplate of working with optional values
expressed as pointers.

Key Functions:
  - To: Creates a pointer from a value literal.
  - Val: Safely dereferences a pointer, returning the zero value if nil.
  - Fallback: Safely dereferences a pointer, returning a fallback value if nil.
*/
package pointer

// To returns a pointer to the provided value. Useful for assigning literals
// to optional struct fields (e.g. pointer.To("something")).
func To[T any](v T) *T {
	return &v
}

// Val dereferences a pointer, returning the zero value of T when nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback dereferences a pointer, returning the provided fallback when nil.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
