// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package normalize canonicalises user-supplied identifiers before they are
// used as lookup keys.
//
// # Usage
//
// Email addresses are the login key of the credential store and the key of the
// Redis credential cache. Two spellings of the same address (full-width
// characters, mixed case, stray whitespace) must map to one record.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Email converts an address into its canonical lookup form.
//
// # Transformation Pipeline
//
// 1. Trims surrounding whitespace.
// 2. Normalizes to NFKC (full-width "ａ" becomes "a").
// 3. Applies Unicode case folding.
func Email(s string) string {
	result := strings.TrimSpace(s)
	result = norm.NFKC.String(result)
	// A Caser carries state and cannot be shared across goroutines.
	return cases.Fold().String(result)
}
