// Package matching centralizes the text normalization and fuzzy comparison
// utilities used to match walk-in visitors against the appointment roster.
package matching

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonDigitRegex   = regexp.MustCompile(`\D`)
	whitespaceRegex = regexp.MustCompile(`\s+`)

	// NFD decomposition followed by removal of combining marks, so that
	// "André" and "andre" compare equal.
	stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Normalize lowercases, strips diacritics and collapses whitespace runs to a
// single space. Empty input yields the empty string.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	lowered := strings.ToLower(text)
	stripped, _, err := transform.String(stripAccents, lowered)
	if err != nil {
		// Malformed UTF-8 falls back to the lowered input.
		stripped = lowered
	}

	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(stripped, " "))
}

// NormalizeEmail normalizes an email address by lowercasing and trimming whitespace.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// PhoneDigits strips everything but digits from a phone number.
func PhoneDigits(phone string) string {
	if phone == "" {
		return ""
	}
	return nonDigitRegex.ReplaceAllString(phone, "")
}

// PhonesMatch reports whether two phone numbers refer to the same line once
// formatting is stripped. One digit string containing the other counts as a
// match, so "+241 01 23 45 67" matches "01234567".
func PhonesMatch(p1, p2 string) bool {
	d1 := PhoneDigits(p1)
	d2 := PhoneDigits(p2)
	if d1 == "" || d2 == "" {
		return false
	}
	return strings.Contains(d1, d2) || strings.Contains(d2, d1)
}
