package convert

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aretw0/strata/pkg/domain"
)

// MaxPrecision caps the number of decimals a converted value is displayed with.
const MaxPrecision = 10

// plainNumber accepts a signed decimal, optionally grouped by thousands with an
// apostrophe or a space between each group of three digits, and an optional exponent.
var plainNumber = regexp.MustCompile(`^[+-]?(?:\d+|\d{1,3}(?:['\x{2019} \x{00a0}\x{202f}]\d{3})+)?(?:\.\d*)?(?:[eE][+-]?\d+)?$`)

var thousandsSeparators = strings.NewReplacer("'", "", "\u2019", "", " ", "", "\u00a0", "", "\u202f", "")

// ParseNumber reads a user-typed number and the number of decimals it was typed with.
// Apostrophes and spaces are accepted as thousands separators ("2'600'000.5").
// Anything else, empty input included, is reported as domain.ErrUnparsable.
func ParseNumber(input string) (float64, int, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, 0, fmt.Errorf("%w: empty", domain.ErrUnparsable)
	}
	d, err := parseDecimal(s)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", domain.ErrUnparsable, input)
	}
	v, _ := d.Float64()
	if math.IsInf(v, 0) {
		return 0, 0, fmt.Errorf("%w: %q out of range", domain.ErrUnparsable, input)
	}
	return v, decimalsOf(d), nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if !plainNumber.MatchString(s) || !strings.ContainsAny(s, "0123456789") {
		return decimal.Decimal{}, fmt.Errorf("not a plain decimal: %q", s)
	}
	mantissa, exp, hasExp := strings.Cut(strings.TrimPrefix(thousandsSeparators.Replace(s), "+"), "e")
	if !hasExp {
		mantissa, exp, hasExp = strings.Cut(mantissa, "E")
	}
	if i := strings.IndexByte(mantissa, '.'); i >= 0 {
		if i == len(mantissa)-1 {
			mantissa = mantissa[:i]
		}
		if strings.TrimLeft(mantissa[:i], "+-") == "" {
			mantissa = mantissa[:i] + "0" + mantissa[i:]
		}
	}
	if strings.TrimLeft(mantissa, "+-") == "" {
		return decimal.Decimal{}, fmt.Errorf("missing digits: %q", s)
	}
	if hasExp {
		mantissa += "e" + exp
	}
	return decimal.NewFromString(mantissa)
}

// Decimals counts the digits after the decimal point of a plain decimal literal,
// trailing zeros included. An exponent shifts the count ("1.25e1" has 1).
func Decimals(s string) int {
	d, err := parseDecimal(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return decimalsOf(d)
}

func decimalsOf(d decimal.Decimal) int {
	n := -int(d.Exponent())
	switch {
	case n < 0:
		return 0
	case n > MaxPrecision:
		return MaxPrecision
	}
	return n
}

// Round rounds v half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	r, _ := decimal.NewFromFloat(v).Round(int32(max(decimals, 0))).Float64()
	return r
}

// Format renders v with exactly the given number of decimals.
func Format(v float64, decimals int) string {
	return decimal.NewFromFloat(v).StringFixed(int32(max(decimals, 0)))
}
