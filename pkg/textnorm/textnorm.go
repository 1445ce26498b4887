// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

// Package textnorm folds arbitrary Unicode strings into a comparable form.
//
// # Usage
//
// Search terms typed by administrators ("José", "jose", "JOSE ") should all
// match the same athlete. Fold strips accents, lowercases, and collapses
// whitespace so both sides of a comparison can be normalized identically.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold normalizes a Unicode string for case- and accent-insensitive matching.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
// 4. Collapses runs of whitespace into single spaces and trims the ends.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)
	result = strings.Join(strings.Fields(result), " ")

	return result
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
