// Package test provides shared test helpers.
package test

import (
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/randompkg"
)

// RandomAccount returns a random account with the given balance, PIN 1234 and no history.
func RandomAccount(balance string) domain.Account {
	return domain.Account{
		OwnerID: randompkg.Owner(),
		Name:    randompkg.Name(),
		Age:     randompkg.IntBetween(18, 90),
		Salary:  randompkg.MoneyAmountBetween(1_000, 10_000),
		Number:  randompkg.AccountNumber(),
		PIN:     domain.ObfuscatePIN("1234"),
		Balance: decimal.RequireFromString(balance),
	}
}
