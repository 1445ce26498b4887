// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

// Package query provides small fault-tolerant parsers for URL query values.
package query

import (
	"strconv"
	"strings"
)

// IntSlice parses string query values into integers, skipping entries that
// fail to parse.
func IntSlice(vals []string) []int {
	var res []int
	for _, v := range vals {
		if i, err := strconv.Atoi(v); err == nil {
			res = append(res, i)
		}
	}
	return res
}

// StringSlice splits a comma-separated query value into trimmed, non-empty
// parts. An empty input returns nil.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, part := range strings.Split(val, ",") {
		if clean := strings.TrimSpace(part); clean != "" {
			res = append(res, clean)
		}
	}
	return res
}
