// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

/*
Package convert provides fault-tolerant string conversions for handler code.

It wraps [strconv] so that callers parsing query parameters get a usable zero
or default value instead of an error branch. Do not use this package where
distinguishing malformed input from a genuine zero matters; use the standard
library directly there.
*/
package convert

import "strconv"

// ToInt converts a string to an int, returning 0 when empty or unparseable.
func ToInt(s string) int {
	if s == "" {
		return 0
	}
	v, _ := strconv.Atoi(s)
	return v
}

// ToIntD converts a string to an int, returning def when empty or unparseable.
func ToIntD(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// ToInt64 converts a string to an int64, returning 0 when empty or unparseable.
func ToInt64(s string) int64 {
	if s == "" {
		return 0
	}
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

// ToBool parses a boolean string ("true", "1", "false", "0").
// It returns false on empty string or parse error.
func ToBool(s string) bool {
	if s == "" {
		return false
	}
	v, _ := strconv.ParseBool(s)
	return v
}

// ToFloat64 converts a string to a float64, swallowing errors.
func ToFloat64(s string) float64 {
	if s == "" {
		return 0
	}
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
