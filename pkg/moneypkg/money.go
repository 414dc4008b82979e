// Package moneypkg provides common money related functionality for the ledger.
package moneypkg

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Symbol is the only supported currency symbol.
const Symbol = "$"

// ErrNotANumber indicates that the input cannot be read as an amount.
var ErrNotANumber = errors.New("not a valid number")

// Format renders d with the currency symbol and two decimal places.
func Format(d decimal.Decimal) string {
	return Symbol + d.StringFixed(2)
}

// Parse reads an amount typed by a user, with or without the currency symbol.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, Symbol)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrNotANumber
	}

	return d, nil
}
