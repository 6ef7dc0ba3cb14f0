// Package money converts statement amount strings into exact minor-unit
// integers. All arithmetic goes through decimal so no value ever passes
// through a binary float.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var minorFactor = decimal.NewFromInt(100)

// ParseMinorUnits parses a statement amount like "-12,34" (comma decimal
// separator, optional sign) into minor units, sign-inverted for the ledger
// convention: a statement debit comes out positive. The fractional part is
// truncated toward zero after scaling.
func ParseMinorUnits(s string) (int64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d.Mul(minorFactor).Neg().IntPart(), nil
}

// FormatMajorUnits renders minor units as a two-decimal major-unit string,
// e.g. 1250 -> "12.50".
func FormatMajorUnits(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}
