// Package money provides fixed-point currency amounts with 2-decimal
// precision. Amounts are stored as integer cents so ledger summation never
// accumulates floating-point drift; floats appear only at the JSON boundary.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	dErrors "brandgate/pkg/domain-errors"
)

// Amount is a monetary value in cents.
type Amount int64

// Zero is the zero amount.
const Zero Amount = 0

// FromCents builds an Amount from an integer number of cents.
func FromCents(cents int64) Amount { return Amount(cents) }

// FromFloat converts a floating-point currency value to cents, rounding
// half-away-from-zero. Use only at system boundaries that cross a floating
// representation; never for settlement arithmetic.
func FromFloat(v float64) Amount {
	return Amount(math.Round(v * 100))
}

// Parse reads a decimal string such as "50", "50.5" or "50.00" into cents.
// More than two fractional digits is rejected rather than silently rounded.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "amount is required")
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if intPart == "" && fracPart == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid amount")
	}
	if len(fracPart) > 2 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "amount precision is limited to 2 decimal places")
	}
	// Signs and spaces inside either part would survive ParseInt below, so
	// only bare digits are allowed past this point.
	if !allDigits(intPart) || !allDigits(fracPart) {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid amount")
	}
	if intPart == "" {
		intPart = "0"
	}
	for len(fracPart) < 2 {
		fracPart += "0"
	}

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid amount")
	}
	cents, err := strconv.ParseInt(fracPart, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid amount")
	}

	total := units*100 + cents
	if neg {
		total = -total
	}
	return Amount(total), nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Cents returns the raw integer cent count.
func (a Amount) Cents() int64 { return int64(a) }

// Float64 renders the amount as a float. Boundary use only.
func (a Amount) Float64() float64 { return float64(a) / 100 }

// IsPositive reports whether the amount is strictly greater than zero.
func (a Amount) IsPositive() bool { return a > 0 }

// Add returns the exact sum of two amounts.
func (a Amount) Add(b Amount) Amount { return a + b }

// String renders the amount with two decimal places, e.g. "50.00".
func (a Amount) String() string {
	cents := int64(a)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// MarshalJSON renders the amount as a JSON number with two decimals so API
// payloads read naturally ("amount": 50.00).
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
