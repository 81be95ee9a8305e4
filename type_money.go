package ledger

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in the ledger's single implicit currency.
// All arithmetic is exact decimal arithmetic; rounding to the currency's
// fraction happens only where the calculation rules call for it.
type Money struct {
	value decimal.Decimal
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | string | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			panic("invalid decimal literal " + v)
		}
		return d
	default:
		panic("unsupported type")
	}
}

func M[T float32 | float64 | int | int32 | int64 | string | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// ParseMoney parses an amount from its decimal string form, e.g. "1234.56".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{value: d}, nil
}

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }
func (m Money) Abs() Money                      { return Money{value: m.value.Abs()} }

// binary operators.
func (m Money) Add(n Money) Money   { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money   { return Money{value: m.value.Sub(n.value)} }
func (m Money) MulInt(n int) Money  { return Money{value: m.value.Mul(decimal.NewFromInt(int64(n)))} }
func (m Money) DivInt(n int) Money  { return Money{value: m.value.Div(decimal.NewFromInt(int64(n)))} }
func (m Money) Mul(d decimal.Decimal) Money { return Money{value: m.value.Mul(d)} }

// DivWhole returns how many whole multiples of n fit in m (integer division).
func (m Money) DivWhole(n Money) int {
	return int(m.value.Div(n.value).IntPart())
}

// Round returns the value rounded half away from zero to 2 decimal places,
// the precision every stored monetary amount carries.
func (m Money) Round() Money { return Money{value: m.value.Round(2)} }

// String returns the plain decimal representation rounded to 2 places.
func (m Money) String() string { return m.value.Round(2).StringFixed(2) }

// Display formats the amount with the currency's symbol and separators.
func (m Money) Display(currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		cur = money.GetCurrency(money.USD)
	}
	shifted := m.value.Shift(int32(cur.Fraction))
	return money.New(shifted.Round(0).IntPart(), cur.Code).Display()
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// Decimal exposes the underlying exact value.
func (m Money) Decimal() decimal.Decimal { return m.value }

func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.Round(2).MarshalJSON()
}

func (m *Money) UnmarshalJSON(data []byte) error {
	return m.value.UnmarshalJSON(data)
}
