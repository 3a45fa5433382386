// Package normalize turns raw typed input into backend-ready search keys and
// canonical hardware identifiers. All functions are pure.
package normalize

import (
	"strings"
	"unicode"
)

// vendor prefix some phone-sourced records carry in front of the MAC,
// e.g. "SEP001A2B3C4D5E" or "SEP-001A2B3C4D5E".
const vendorPrefix = "SEP"

// macLen is the number of hex digits in a canonical identifier.
const macLen = 12

// CleanQuery strips all whitespace from a raw query. Hyphens and colons are
// preserved so free-text matching against separator-formatted columns still
// works. The result is what actually goes to the backend.
func CleanQuery(raw string) string {
	if raw == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CanonicalMAC reports whether raw looks like a hardware identifier and, if
// so, returns its canonical form: 12 uppercase hex digits, no separators.
//
// The input may carry an optional case-insensitive vendor prefix ("SEP",
// optionally followed by a separator) and any mix of separators; anything
// that does not reduce to exactly 12 hex digits is not an identifier and
// returns ("", false) rather than an error.
func CanonicalMAC(raw string) (string, bool) {
	s := CleanQuery(raw)
	if s == "" {
		return "", false
	}

	if len(s) >= len(vendorPrefix) && strings.EqualFold(s[:len(vendorPrefix)], vendorPrefix) {
		s = s[len(vendorPrefix):]
		if len(s) > 0 && isSeparator(rune(s[0])) {
			s = s[1:]
		}
	}

	var b strings.Builder
	b.Grow(macLen)
	for _, r := range s {
		if isHexDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}

	if b.Len() != macLen {
		return "", false
	}
	return b.String(), true
}

func isHexDigit(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	}
	return false
}

func isSeparator(r rune) bool {
	switch r {
	case ':', '-', '.', '_':
		return true
	}
	return false
}
