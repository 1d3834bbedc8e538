package models

import (
	"github.com/shopspring/decimal"
)

// Money is a decimal amount stored as numeric(15,2). It is written to JSON as
// a string with exactly two decimal places and read from either a JSON number
// or a numeric string.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d.Round(2)}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}

func (m Money) String() string {
	return m.StringFixed(2)
}

func (m Money) Neg() Money {
	return Money{Decimal: m.Decimal.Neg()}
}

func (m Money) Abs() Money {
	return Money{Decimal: m.Decimal.Abs()}
}

func (m Money) Equal(o Money) bool {
	return m.Decimal.Equal(o.Decimal)
}
