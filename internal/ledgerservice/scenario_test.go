package ledgerservice

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/internal/accountrepo"
	"github.com/go-petr/pet-ledger/internal/actionlog"
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/frozenregistry"
)

type fsBackend struct {
	fs       afero.Fs
	repo     *accountrepo.RepoFS
	registry *frozenregistry.Registry
	service  *Service
}

func newFSBackend() fsBackend {
	fs := afero.NewMemMapFs()
	repo := accountrepo.NewRepoFS(fs)
	registry := frozenregistry.New(fs)

	return fsBackend{
		fs:       fs,
		repo:     repo,
		registry: registry,
		service:  New(repo, registry, actionlog.New(fs)),
	}
}

func requireBalance(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(decimal.RequireFromString(want)), "balance = %s, want %s", got, want)
}

func TestLedgerScenario(t *testing.T) {
	t.Parallel()

	b := newFSBackend()
	ctx := context.Background()

	a, err := b.service.Open(ctx, domain.CreateAccountParams{
		OwnerID: "o1", Name: "Ann", Age: 30, Salary: decimal.NewFromInt(2000),
		AccountNumber: "1001", PIN: "1234",
	})
	require.NoError(t, err)

	r, err := b.service.Open(ctx, domain.CreateAccountParams{
		OwnerID: "o2", Name: "Bob", Age: 40, Salary: decimal.NewFromInt(3000),
		AccountNumber: "2002", PIN: "5678",
	})
	require.NoError(t, err)

	bal, err := b.service.Deposit(ctx, &a, decimal.NewFromInt(100))
	require.NoError(t, err)
	requireBalance(t, "100", bal)

	bal, err = b.service.Withdraw(ctx, &a, decimal.NewFromInt(30))
	require.NoError(t, err)
	requireBalance(t, "70", bal)

	require.NoError(t, b.service.Transfer(ctx, &a, &r, decimal.NewFromInt(50)))
	requireBalance(t, "20", a.Balance)
	requireBalance(t, "50", r.Balance)

	_, err = b.service.Withdraw(ctx, &a, decimal.NewFromInt(25))
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	requireBalance(t, "20", a.Balance)

	require.Len(t, a.History, 3)
	require.Equal(t, domain.Transfer, a.History[2].Type)
	require.Equal(t, "2002", a.History[2].Recipient)
	require.Empty(t, r.History)

	stored, err := b.service.Load(ctx, "1001")
	require.NoError(t, err)
	requireBalance(t, "20", stored.Balance)
	require.Len(t, stored.History, 3)

	// The recipient is not persisted by a transfer.
	storedRecipient, err := b.service.Load(ctx, "2002")
	require.NoError(t, err)
	require.True(t, storedRecipient.Balance.IsZero())
	require.Empty(t, storedRecipient.History)

	lines, err := b.service.Statement(ctx, &a)
	require.NoError(t, err)

	got := slices.Collect(lines)
	require.Len(t, got, 3)
	require.True(t, strings.HasSuffix(got[0], ": Deposit, $100.00"), got[0])
	require.True(t, strings.HasSuffix(got[1], ": Withdrawal, $30.00"), got[1])
	require.True(t, strings.HasSuffix(got[2], ": Transfer, $50.00"), got[2])

	log, err := afero.ReadFile(b.fs, actionlog.AccountFileName("1001"))
	require.NoError(t, err)
	require.Contains(t, string(log), " - Withdraw: Failed - Insufficient balance\n")
	require.Contains(t, string(log), " - Print Statement: Success\n")
}

func TestFrozenAccountIsUntouched(t *testing.T) {
	t.Parallel()

	b := newFSBackend()
	ctx := context.Background()

	a, err := b.service.Open(ctx, domain.CreateAccountParams{
		OwnerID: "o1", Name: "Ann", AccountNumber: "1001", PIN: "1234",
	})
	require.NoError(t, err)

	_, err = b.service.Deposit(ctx, &a, decimal.NewFromInt(10))
	require.NoError(t, err)

	require.NoError(t, b.registry.Freeze(ctx, "1001"))

	before := a.Clone()
	other := domain.Account{Number: "2002"}

	_, err = b.service.Deposit(ctx, &a, decimal.NewFromInt(5))
	require.ErrorIs(t, err, domain.ErrAccountFrozen)
	_, err = b.service.Withdraw(ctx, &a, decimal.NewFromInt(5))
	require.ErrorIs(t, err, domain.ErrAccountFrozen)
	require.ErrorIs(t, b.service.Transfer(ctx, &a, &other, decimal.NewFromInt(5)), domain.ErrAccountFrozen)
	require.ErrorIs(t, b.service.ChangePIN(ctx, &a, "1234", "0000"), domain.ErrAccountFrozen)
	_, err = b.service.Balance(ctx, &a)
	require.ErrorIs(t, err, domain.ErrAccountFrozen)

	require.Equal(t, before.PIN, a.PIN)
	requireBalance(t, "10", a.Balance)
	require.Len(t, a.History, 1)
	require.True(t, other.Balance.IsZero())

	stored, err := b.service.Load(ctx, "1001")
	require.NoError(t, err)
	requireBalance(t, "10", stored.Balance)
	require.Equal(t, before.PIN, stored.PIN)

	log, err := afero.ReadFile(b.fs, actionlog.AccountFileName("1001"))
	require.NoError(t, err)
	require.Equal(t, 5, strings.Count(string(log), "Failed - Account is frozen"))

	require.NoError(t, b.registry.Unfreeze(ctx, "1001"))

	_, err = b.service.Deposit(ctx, &a, decimal.NewFromInt(5))
	require.NoError(t, err)
	requireBalance(t, "15", a.Balance)
}

func TestChangePINPersists(t *testing.T) {
	t.Parallel()

	b := newFSBackend()
	ctx := context.Background()

	a, err := b.service.Open(ctx, domain.CreateAccountParams{
		OwnerID: "o1", Name: "Ann", AccountNumber: "1001", PIN: "1234",
	})
	require.NoError(t, err)
	require.Equal(t, "4321", a.PIN)

	require.NoError(t, b.service.ChangePIN(ctx, &a, "1234", "9876"))

	stored, err := b.repo.Get(ctx, "1001")
	require.NoError(t, err)
	require.Equal(t, "6789", stored.PIN)
	require.True(t, stored.CheckPIN("9876"))
	require.Empty(t, stored.History)
}
