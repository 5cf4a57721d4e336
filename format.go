package scicalc

import (
	"math"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"
)

const (
	// displayDigits is the number of significant digits results are rounded
	// to before display.
	displayDigits = 15
	// sciDigits is the most fractional mantissa digits shown in scientific
	// notation.
	sciDigits = 10
	// exactDigits is enough fractional digits in e notation to write any
	// float64 exactly.
	exactDigits = 767
)

var (
	plainMax = decimal.RequireFromString("999999999999999")
	plainMin = decimal.New(1, -6)
)

// Format converts a result to its display string. NaN is "NaN" and the
// infinities are "∞" and "-∞". Other values are rounded half-up to 15
// significant digits; integers up to 999999999999999 in magnitude and other
// values with magnitude in [1e-6, 999999999999999] are written in plain
// decimal without trailing zeros, and anything else in scientific notation
// like 1.2345678901E-7 with at most 10 fractional digits.
func Format(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "∞"
	case math.IsInf(x, -1):
		return "-∞"
	}
	d := exact(x)
	if d.IsZero() {
		return "0"
	}
	d = d.Round(int32(displayDigits - 1 - magnitude(d)))
	abs := d.Abs()
	if abs.Cmp(plainMax) <= 0 && (d.Equal(d.Truncate(0)) || abs.Cmp(plainMin) >= 0) {
		return d.String()
	}
	return scientific(x)
}

// exact returns the exact decimal value of x, which must be finite.
func exact(x float64) decimal.Decimal {
	return decimal.RequireFromString(new(big.Float).SetFloat64(x).Text('e', exactDigits))
}

// magnitude returns the decimal exponent of the most significant digit of a
// nonzero d.
func magnitude(d decimal.Decimal) int {
	c := d.Coefficient()
	return len(c.Abs(c).String()) + int(d.Exponent()) - 1
}

// scientific formats a nonzero finite x as a mantissa in [1, 10) with up to
// sciDigits fractional digits, rounded half-even, and a decimal exponent.
func scientific(x float64) string {
	d := decimal.NewFromFloat(x)
	d = d.RoundBank(int32(sciDigits - magnitude(d)))
	// Rounding can carry into a new digit, e.g. 9.99999999999 to 10.
	m := magnitude(d)
	return d.Shift(int32(-m)).String() + "E" + strconv.Itoa(m)
}
