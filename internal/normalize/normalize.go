// Package normalize implements the external-collaborator contracts
// handed to the core as pure functions: phone/zipcode/name/sex
// cleaning. The core never calls these directly on raw input — they exist
// so the CLI's input-parsing layer (and tests that want realistic
// fixtures) can produce data the core's invariants already assume.
//
// The baseline fold (lowercase, hyphens to spaces, trim) follows
// original_source/run_RIFTEHR.py's clean_split_names and
// normalize_phone_num; the stricter digit-count and rejection rules are
// this package's own addition on top of that baseline.
package normalize

import (
	"strings"
	"unicode"
)

// Name folds s the way clean_split_names does: trim, lowercase, hyphens
// to spaces. Unicode folding beyond ASCII case mapping is deliberately
// out of scope here — it belongs to the input-parsing collaborator's own
// encoding-detection step, not this
// contract.
func Name(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", " ")
	return s
}

// Phone strips separators and a leading country code, keeps the last 10
// digits, and rejects anything that isn't exactly 10 digits or that
// equals the sentinel "0000000000" used by clinics for blank fields.
// Returns ("", false) on rejection.
func Phone(s string) (string, bool) {
	var digits strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) > 10 {
		d = d[len(d)-10:]
	}
	if len(d) != 10 {
		return "", false
	}
	if d == "0000000000" {
		return "", false
	}
	return d, true
}

// Zip strips separators and keeps the first 5 digits, rejecting anything
// that isn't exactly 5 digits.
func Zip(s string) (string, bool) {
	var digits strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
			if digits.Len() == 5 {
				break
			}
		}
	}
	d := digits.String()
	if len(d) != 5 {
		return "", false
	}
	return d, true
}

// SexCode uppercases the first character of s and accepts only F or M,
// returning ("", false) otherwise.
func SexCode(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	c := unicode.ToUpper(rune(s[0]))
	if c != 'F' && c != 'M' {
		return "", false
	}
	return string(c), true
}
