// Package validate holds the pure input validation predicates used by the
// account lifecycle. Checks are deterministic, side-effect free, and report
// the first failing rule only.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	MinPasswordLen = 8
	MinUsernameLen = 3

	// PasswordSymbols is the fixed punctuation set accepted as the special
	// character class.
	PasswordSymbols = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// Conservative local@domain.tld shape. Intentionally stricter than RFC 5322.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Email checks that s has a plausible local@domain.tld shape.
func Email(s string) error {
	if !emailPattern.MatchString(s) {
		return errors.New("must be a valid email address")
	}
	return nil
}

// Password enforces the strength policy. Rules are evaluated in a fixed
// order and the first failing rule's message is returned; failures are
// never aggregated.
func Password(s string) error {
	if len(s) < MinPasswordLen {
		return fmt.Errorf("must be at least %d characters", MinPasswordLen)
	}

	hasUpper := false
	hasLower := false
	hasDigit := false
	hasSymbol := false

	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(PasswordSymbols, r):
			hasSymbol = true
		}
	}

	if !hasUpper {
		return errors.New("must contain at least one uppercase letter")
	}
	if !hasLower {
		return errors.New("must contain at least one lowercase letter")
	}
	if !hasDigit {
		return errors.New("must contain at least one digit")
	}
	if !hasSymbol {
		return errors.New("must contain at least one special character")
	}

	return nil
}

// Username checks length and charset ([A-Za-z0-9_] only).
func Username(s string) error {
	if len(s) < MinUsernameLen {
		return fmt.Errorf("must be at least %d characters", MinUsernameLen)
	}
	if !usernamePattern.MatchString(s) {
		return errors.New("may only contain letters, digits and underscores")
	}
	return nil
}
