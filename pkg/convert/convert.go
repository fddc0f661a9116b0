// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package convert parses query-string values leniently: a malformed value is
// treated as absent. Use strconv directly where the caller must reject it.
package convert

import (
	"strconv"
	"strings"
)

// ToIntD parses s as a base-10 int, returning def when s is blank or malformed.
func ToIntD(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// ToBool accepts the spellings of [strconv.ParseBool]; anything else is false.
func ToBool(s string) bool {
	v, _ := strconv.ParseBool(strings.TrimSpace(s))
	return v
}
