package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	keyStripRe   = regexp.MustCompile(`[\s:\-/()\[\].]+`)
	decimalRunRe = regexp.MustCompile(`[\d,]+\.?\d*`)
	digitRunRe   = regexp.MustCompile(`\d+`)
	upperOnlyRe  = regexp.MustCompile(`^[A-Z]+$`)
)

// junkTokens are placeholder values that forms emit for empty cells.
// Matched case-insensitively.
var junkTokens = map[string]bool{
	"n/a":  true,
	"na":   true,
	"-":    true,
	"none": true,
	"null": true,
}

// dateLayouts are tried in order; the first that parses wins. Unpadded
// variants come after the padded ones so single-digit days and months
// ("5/3/2024") still normalize.
var dateLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
	"2006-01-02",
	"02/01/06",
	"02-01-06",
	"02012006",
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2/1/06",
	"2-1-06",
}

// Clean collapses runs of whitespace to a single space and trims the result.
// It returns the empty string when nothing meaningful remains, including when
// the input is one of the junk placeholder tokens.
func Clean(text string) string {
	s := strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	if s == "" || junkTokens[strings.ToLower(s)] {
		return ""
	}
	return s
}

// NormalizeKey strips whitespace, colons, hyphens, slashes, parentheses,
// brackets, and periods, then lowercases. Table header cells and candidate
// key patterns normalized this way compare equal regardless of the form's
// formatting variance ("Invoice  Value (In INR)" vs "InvoiceValue(inINR)").
func NormalizeKey(text string) string {
	return strings.ToLower(keyStripRe.ReplaceAllString(text, ""))
}

// IsDataValue reports whether a candidate cell value looks like data rather
// than a label. Strings ending in a colon are labels; long all-caps runs of
// letters are section headers.
func IsDataValue(val string) bool {
	s := strings.TrimSpace(val)
	if s == "" {
		return false
	}
	if strings.HasSuffix(s, ":") {
		return false
	}
	nospace := whitespaceRe.ReplaceAllString(s, "")
	if len(nospace) > 15 && upperOnlyRe.MatchString(nospace) {
		return false
	}
	return true
}

// ParseDate cleans the input and reformats it to ISO YYYY-MM-DD using the
// first matching layout. Unparseable input is returned cleaned but otherwise
// unchanged so a single odd date never sinks the whole extraction.
func ParseDate(raw string) string {
	s := Clean(raw)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// ToDecimal extracts the first numeric run (with optional thousands
// separators) from the string and returns it in canonical decimal form with
// separators stripped. Fractional digits are preserved exactly as written;
// the empty string means no parseable number was found.
func ToDecimal(raw string) string {
	if raw == "" {
		return ""
	}
	run := decimalRunRe.FindString(raw)
	if run == "" {
		return ""
	}
	s := strings.ReplaceAll(run, ",", "")
	if _, err := decimal.NewFromString(s); err != nil {
		return ""
	}
	return canonicalDecimal(s)
}

// canonicalDecimal trims leading zeros from the integer part and drops a
// trailing bare decimal point, keeping fractional digits exactly as given.
func canonicalDecimal(s string) string {
	intPart, fracPart, hasDot := strings.Cut(s, ".")
	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}
	if hasDot && fracPart != "" {
		return intPart + "." + fracPart
	}
	return intPart
}

// FirstInteger returns the first contiguous digit run in the string, or the
// empty string if there is none.
func FirstInteger(raw string) string {
	return digitRunRe.FindString(raw)
}
