// Package normalize provides the pure text transforms applied to candidate
// attribute values before reconciliation. Every function is total over its
// input domain: bad input degrades to an empty result, never an error.
package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// trunkPrefix is the national dialing prefix replaced by the country code.
	trunkPrefix = "0"
	// countryPrefix is the international calling-code prefix for canonical phones.
	countryPrefix = "+33"
)

var (
	nonDigitPattern = regexp.MustCompile(`\D`)
	// canonicalPhonePattern: country prefix followed by exactly nine digits.
	canonicalPhonePattern = regexp.MustCompile(`^\+33\d{9}$`)
	quotePattern          = regexp.MustCompile(`['"]`)
	// disallowedPattern keeps word characters, accented Latin letters,
	// whitespace and hyphens; everything else is stripped.
	disallowedPattern = regexp.MustCompile(`[^\w\sÀ-ÿ-]`)
)

// Capitalize upper-cases the first rune and lower-cases the remainder.
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// Upper is empty-safe upper-casing.
func Upper(s string) string {
	return strings.ToUpper(s)
}

// Sanitize strips quote characters and anything outside word characters,
// accented Latin letters, whitespace and hyphens, then trims surrounding
// whitespace. Accented letters are preserved so names survive intact.
func Sanitize(s string) string {
	s = quotePattern.ReplaceAllString(s, "")
	s = disallowedPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// CanonicalizePhone reduces raw input to digits and rewrites it into the
// international form. A leading trunk prefix digit is replaced by the country
// calling code; any other digit string gets the country code prepended.
// Results that do not match the canonical pattern are invalid and returned
// as the empty string.
func CanonicalizePhone(raw string) string {
	digits := nonDigitPattern.ReplaceAllString(raw, "")
	if digits == "" {
		return ""
	}

	var canonical string
	if strings.HasPrefix(digits, trunkPrefix) {
		canonical = countryPrefix + digits[len(trunkPrefix):]
	} else {
		canonical = countryPrefix + digits
	}

	if !canonicalPhonePattern.MatchString(canonical) {
		return ""
	}
	return canonical
}

// FormatAmount renders an integer minor-unit amount (cents) as a two-decimal
// major-unit string with a comma separator and currency suffix, e.g.
// 150000 -> "1500,00€".
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d,%02d€", sign, cents/100, cents%100)
}

// NormalizeEmail produces the identity key: lower-cased, trimmed e-mail.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
