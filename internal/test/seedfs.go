package test

import (
	"context"
	"testing"

	"github.com/spf13/afero"

	"github.com/go-petr/pet-ledger/internal/accountrepo"
	"github.com/go-petr/pet-ledger/internal/domain"
)

// SeedAccount stores a random account under number with the given PIN and balance.
func SeedAccount(t *testing.T, fs afero.Fs, number, pin, balance string) domain.Account {
	t.Helper()

	a := RandomAccount(balance)
	a.Number = number
	a.PIN = domain.ObfuscatePIN(pin)

	if err := accountrepo.NewRepoFS(fs).Save(context.Background(), a); err != nil {
		t.Fatalf("accountrepo.Save(%+v) returned error: %v", a, err)
	}

	return a
}
