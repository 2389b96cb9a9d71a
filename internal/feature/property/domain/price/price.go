// Package price formats listing amounts into the canonical rupee strings stored on a property.
package price

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Unit suffixes appended to formatted amounts.
const (
	UnitDay   = "/day"
	UnitMonth = "/month"
	UnitBed   = "/bed"
	UnitNone  = ""
)

// Symbol is the currency sign prefixed to every formatted amount.
const Symbol = "₹"

// ErrAmountTooLarge is returned when an amount does not fit in int64.
var ErrAmountTooLarge = errors.New("amount too large")

// printer groups digits the Indian way (1,50,000).
var printer = message.NewPrinter(language.MustParse("en-IN"))

// ExtractDigits drops every non-digit rune from s.
func ExtractDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseAmount returns the integer formed by the digits of s.
// Inputs without digits, or too large for int64, yield 0.
func ParseAmount(s string) int64 {
	n, err := CheckAmount(s)
	if err != nil {
		return 0
	}
	return n
}

// CheckAmount is ParseAmount reporting ErrAmountTooLarge instead of yielding 0.
func CheckAmount(s string) (int64, error) {
	digits := ExtractDigits(s)
	if digits == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, ErrAmountTooLarge
	}
	return n, nil
}

// FormatINR renders n as a grouped rupee amount, e.g. ₹15,000.
func FormatINR(n int64) string {
	return Symbol + printer.Sprintf("%d", n)
}

// Format renders raw client input as a rupee amount followed by unit.
// Blank input yields the empty string so optional amounts stay unset.
func Format(raw, unit string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return FormatINR(ParseAmount(raw)) + unit
}

// IsStayType reports whether a new listing of this type is billed per day.
func IsStayType(listingType string) bool {
	t := strings.ToLower(listingType)
	return strings.Contains(t, "bhk") || strings.Contains(t, "homestay")
}

// isDayRated is IsStayType widened with Bungalow, which stored listings bill per day.
func isDayRated(listingType string) bool {
	return IsStayType(listingType) || strings.Contains(strings.ToLower(listingType), "bungalow")
}

// ListingUnit picks the unit for a listing's headline price.
func ListingUnit(stay bool) string {
	if stay {
		return UnitDay
	}
	return UnitMonth
}

// Reformat re-derives a stored headline price from its digits and the listing type.
func Reformat(stored, listingType string) string {
	return FormatINR(ParseAmount(stored)) + ListingUnit(isDayRated(listingType))
}

// Amount recovers the integer value of a formatted price such as "₹12,000/month".
func Amount(formatted string) int64 {
	// only the leading amount counts; the unit never carries digits
	end := strings.IndexFunc(formatted, func(r rune) bool {
		return r == '/' || unicode.IsSpace(r)
	})
	if end >= 0 {
		formatted = formatted[:end]
	}
	return ParseAmount(formatted)
}
