// Package similarity provides the normalized field comparisons the
// duplicate detector is built on: dates within a day tolerance, amounts
// within a cent tolerance, and whitespace-insensitive description and
// category comparison.
//
// Every function is total: missing or malformed values compare as
// non-matching rather than erroring.
package similarity

import (
	"math"
	"strings"
	"time"
)

// DatesMatch reports whether two calendar dates are within toleranceDays
// of each other. A zero time on either side never matches.
func DatesMatch(d1, d2 time.Time, toleranceDays int) bool {
	if d1.IsZero() || d2.IsZero() {
		return false
	}
	diffDays := math.Abs(d1.Sub(d2).Hours() / 24)
	return diffDays <= float64(toleranceDays)
}

// AmountsMatch reports whether two amounts are within tolerance of each
// other. Signs must agree: a charge and a refund of the same magnitude
// are not the same transaction.
func AmountsMatch(a1, a2, tolerance float64) bool {
	if (a1 < 0) != (a2 < 0) {
		return false
	}
	return math.Abs(a1-a2) <= tolerance
}

// AmountsMatchAbsolute compares magnitudes only, for callers that have
// already reconciled sign conventions between sources.
func AmountsMatchAbsolute(a1, a2, tolerance float64) bool {
	return math.Abs(math.Abs(a1)-math.Abs(a2)) <= tolerance
}

// DescriptionsMatch reports whether two descriptions are equal after
// normalization, or one contains the other. The substring rule absorbs
// minor differences between import sources, like store numbers appended
// to one side. Empty descriptions never match.
func DescriptionsMatch(s1, s2 string) bool {
	n1 := Normalize(s1)
	n2 := Normalize(s2)
	if n1 == "" || n2 == "" {
		return false
	}
	if n1 == n2 {
		return true
	}
	return strings.Contains(n1, n2) || strings.Contains(n2, n1)
}

// CategoriesMatch compares two category labels. Categories are
// provisional: unless requireExact is set, a missing label on either
// side counts as a match so a categorized copy still pairs with an
// uncategorized one.
func CategoriesMatch(c1, c2 string, requireExact bool) bool {
	n1 := Normalize(c1)
	n2 := Normalize(c2)
	if !requireExact && (n1 == "" || n2 == "") {
		return true
	}
	return n1 != "" && n1 == n2
}

// Normalize lowercases, trims, and collapses internal whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
