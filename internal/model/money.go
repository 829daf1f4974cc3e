package model

import (
	"reflect"

	"bakery-backoffice/pkg/validator"

	"github.com/shopspring/decimal"
)

// Money is a currency amount stored as decimal(10,2).
// It always serializes with exactly two decimal places, e.g. "2.50".
type Money struct {
	decimal.Decimal
}

func init() {
	// Rules see Money as its decimal string so the "money" tag can check scale.
	validator.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if m, ok := field.Interface().(Money); ok {
			return m.Decimal.String()
		}
		return nil
	}, Money{})
}

// NewMoney parses a decimal string such as "100.00".
func NewMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// MustMoney is NewMoney for constants and tests.
func MustMoney(s string) Money {
	m, err := NewMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// MoneyPtr returns a pointer to m.
func MoneyPtr(m Money) *Money { return &m }

func (m Money) String() string {
	return m.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}
