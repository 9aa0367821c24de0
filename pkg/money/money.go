package money

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// numericPrefix matches the leading number of a field, the way a browser's
// parseFloat reads "12abc" as 12.
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// maxScale caps the fraction digits kept from user input.
const maxScale = 12

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// Parse reads a user-entered amount such as "60,000" or "1,250.50".
// Thousands separators are stripped and anything that is not a number
// coerces to zero.
func Parse(raw string) Money {
	m, _ := TryParse(raw)
	return m
}

// TryParse is Parse that also reports whether the text started with a
// finite number. Values beyond float64 range ("1e999999") count as no number.
func TryParse(raw string) (Money, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	match := numericPrefix.FindString(cleaned)
	if match == "" {
		return Zero(), false
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsInf(f, 0) {
		return Zero(), false
	}
	if f == 0 {
		return Zero(), true
	}
	d, err := decimal.NewFromString(match)
	if err != nil {
		return Zero(), false
	}
	if d.Exponent() < -maxScale {
		d = d.Round(maxScale)
	}
	return Money{d}, true
}

// DigitsOnly drops every character that is not 0-9.
func DigitsOnly(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Round rounds the money amount to cents
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Percent applies a percentage (10 means 10%).
func (m Money) Percent(pct decimal.Decimal) Money {
	return Money{m.Decimal.Mul(pct).Div(decimal.NewFromInt(100))}
}

// IsPositive checks if the amount is positive
func (m Money) IsPositive() bool {
	return m.Decimal.IsPositive()
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the amount with two fraction digits.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Whole renders the amount rounded to whole dollars with thousands
// separators, e.g. 617679.88 -> "617,680".
func (m Money) Whole() string {
	return groupThousands(m.Decimal.Round(0).StringFixed(0))
}

// Cents renders the amount with two fraction digits and thousands separators.
func (m Money) Cents() string {
	s := m.Decimal.StringFixed(2)
	dot := strings.IndexByte(s, '.')
	return groupThousands(s[:dot]) + s[dot:]
}

// Format renders the whole-dollar amount with a leading dollar sign.
func (m Money) Format() string {
	if m.Decimal.Round(0).IsNegative() {
		return "-$" + Money{m.Decimal.Neg()}.Whole()
	}
	return "$" + m.Whole()
}

func groupThousands(digits string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + digits
	}
	var b strings.Builder
	remainder := len(digits) % 3
	if remainder > 0 {
		b.WriteString(digits[:remainder])
	}
	for i := remainder; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return sign + b.String()
}
