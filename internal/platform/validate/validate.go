// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate collects field-level input errors for the auth and task
// services and reports them as one VALIDATION_ERROR.
package validate

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
)

// ErrInvalidJSON is returned when the request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator is a chainable rule set. Use one per operation; it is not safe for
// concurrent use.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, fmt.Sprintf("Minimum %d characters", min))
	}
	return v
}

// Email fails unless value is a bare address. Display-name forms such as
// "Ann <ann@example.com>" parse under RFC 5322 but are rejected here.
func (v *Validator) Email(field, value string) *Validator {
	if parsed, err := mail.ParseAddress(value); err != nil || parsed.Address != value {
		v.add(field, "Must be a valid email address")
	}
	return v
}

// passwordSpecials is the special-character set accepted by [Validator.StrongPassword].
const passwordSpecials = "@$!%*?&"

// StrongPassword fails unless the value has at least 8 characters drawn from
// letters, digits and @$!%*?&, including one of each: lowercase, uppercase,
// digit and special character.
func (v *Validator) StrongPassword(field, value string) *Validator {
	var hasLower, hasUpper, hasDigit, hasSpecial, hasOther bool
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		default:
			hasOther = true
		}
	}

	if utf8.RuneCountInString(value) < 8 || hasOther || !hasLower || !hasUpper || !hasDigit || !hasSpecial {
		v.add(field, "Must contain at least 8 characters, one uppercase letter, one lowercase letter, one number and one special character ("+passwordSpecials+")")
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom records message against field when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns nil when every rule passed, otherwise a VALIDATION_ERROR
// carrying each failure in the order it was recorded.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

