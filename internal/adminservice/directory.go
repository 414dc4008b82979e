// Package adminservice manages business logic layer of the administrator's account directory.
package adminservice

import (
	"context"
	"fmt"
	"iter"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/moneypkg"
	"github.com/go-petr/pet-ledger/pkg/validpkg"
)

// Action names written to the admin action log.
const (
	ActionCreate   = "Create Account"
	ActionDetails  = "Show Account Details"
	ActionTxs      = "Show Transactions"
	ActionSetLimit = "Set Transaction Limit"
	ActionFreeze   = "Freeze Account"
	ActionUnfreeze = "Unfreeze Account"
	ActionDelete   = "Delete Account"
)

const detailsAccountNo = "Account Number: "

// Repo provides data access layer interface needed by admin service layer.
//
//go:generate mockgen -source directory.go -destination directory_mock.go -package adminservice
type Repo interface {
	Get(ctx context.Context, number string) (domain.Account, error)
	Save(ctx context.Context, a domain.Account) error
}

// Registry changes the frozen status of accounts.
type Registry interface {
	Freeze(ctx context.Context, number string) error
	Unfreeze(ctx context.Context, number string) error
}

// ActionLog records administrator actions for audit.
type ActionLog interface {
	Admin(ctx context.Context, action, details string)
}

// Directory is the administrator's view of accounts.
//
// The owner directory and the transaction limits live in memory for the
// lifetime of the session only.
type Directory struct {
	repo     Repo
	registry Registry
	actions  ActionLog
	validate *validator.Validate

	accounts map[string]domain.Account // keyed by owner id
	limits   map[string]decimal.Decimal
}

// New returns an empty admin directory.
func New(repo Repo, frozen Registry, actions ActionLog) *Directory {
	return &Directory{
		repo:     repo,
		registry: frozen,
		actions:  actions,
		validate: validpkg.New(),
		accounts: make(map[string]domain.Account),
		limits:   make(map[string]decimal.Decimal),
	}
}

func (d *Directory) fail(ctx context.Context, action string, err error) error {
	d.actions.Admin(ctx, action, "Failed - "+errorspkg.Message(err))
	return err
}

// stored loads the account for number and checks the record belongs to it.
func (d *Directory) stored(ctx context.Context, number, action string) (domain.Account, error) {
	a, err := d.repo.Get(ctx, number)
	if err != nil {
		return domain.Account{}, d.fail(ctx, action, err)
	}

	if a.Number != number {
		return domain.Account{}, d.fail(ctx, action, domain.ErrAccountMismatch)
	}

	return a, nil
}

// CreateAccount opens an account on behalf of an owner and registers it in the directory.
//
// Only the in-memory directory is checked for the owner, an existing record
// under the same account number is overwritten.
func (d *Directory) CreateAccount(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if _, ok := d.accounts[arg.OwnerID]; ok {
		return domain.Account{}, d.fail(ctx, ActionCreate, domain.ErrDuplicateOwner)
	}

	if err := d.validate.StructExcept(arg, "PIN"); err != nil {
		if field, ok := validpkg.FailedField(err); ok {
			if fieldErr := domain.CreateParamsError(field); fieldErr != nil {
				return domain.Account{}, d.fail(ctx, ActionCreate, fieldErr)
			}
		}

		l.Error().Err(err).Send()

		return domain.Account{}, d.fail(ctx, ActionCreate, errorspkg.ErrInternal)
	}

	a := domain.Account{
		OwnerID: arg.OwnerID,
		Name:    arg.Name,
		Age:     arg.Age,
		Salary:  arg.Salary,
		Number:  arg.AccountNumber,
		PIN:     domain.ObfuscatePIN(arg.PIN),
		Balance: decimal.Zero,
	}

	if err := d.repo.Save(ctx, a); err != nil {
		return domain.Account{}, d.fail(ctx, ActionCreate, err)
	}

	d.accounts[a.OwnerID] = a

	d.actions.Admin(ctx, ActionCreate, fmt.Sprintf("Owner ID: %s, Account Number: %s", a.OwnerID, a.Number))

	return a, nil
}

// AccountDetails returns the stored account.
func (d *Directory) AccountDetails(ctx context.Context, number string) (domain.Account, error) {
	a, err := d.stored(ctx, number, ActionDetails)
	if err != nil {
		return domain.Account{}, err
	}

	d.actions.Admin(ctx, ActionDetails, detailsAccountNo+number)

	return a, nil
}

// Transactions returns the stored transaction lines of the account, oldest first.
func (d *Directory) Transactions(ctx context.Context, number string) (iter.Seq[string], error) {
	a, err := d.stored(ctx, number, ActionTxs)
	if err != nil {
		return nil, err
	}

	d.actions.Admin(ctx, ActionTxs, detailsAccountNo+number)

	return a.History.Lines(), nil
}

// SetTransactionLimit remembers a limit for the account. Limits are not enforced.
func (d *Directory) SetTransactionLimit(ctx context.Context, number string, limit decimal.Decimal) error {
	if limit.IsNegative() {
		return d.fail(ctx, ActionSetLimit, domain.ErrInvalidAmount)
	}

	if _, err := d.stored(ctx, number, ActionSetLimit); err != nil {
		return err
	}

	d.limits[number] = limit

	d.actions.Admin(ctx, ActionSetLimit, fmt.Sprintf("%s%s, Limit: %s", detailsAccountNo, number, moneypkg.Format(limit)))

	return nil
}

// TransactionLimit returns the limit set for the account in this session.
func (d *Directory) TransactionLimit(number string) (decimal.Decimal, bool) {
	limit, ok := d.limits[number]
	return limit, ok
}

// FreezeAccount lists the account in the frozen registry.
func (d *Directory) FreezeAccount(ctx context.Context, number string) error {
	if _, err := d.stored(ctx, number, ActionFreeze); err != nil {
		return err
	}

	if err := d.registry.Freeze(ctx, number); err != nil {
		return d.fail(ctx, ActionFreeze, err)
	}

	d.actions.Admin(ctx, ActionFreeze, detailsAccountNo+number)

	return nil
}

// UnfreezeAccount removes the account from the frozen registry.
func (d *Directory) UnfreezeAccount(ctx context.Context, number string) error {
	if _, err := d.stored(ctx, number, ActionUnfreeze); err != nil {
		return err
	}

	if err := d.registry.Unfreeze(ctx, number); err != nil {
		return d.fail(ctx, ActionUnfreeze, err)
	}

	d.actions.Admin(ctx, ActionUnfreeze, detailsAccountNo+number)

	return nil
}

// DeleteAccount drops the account from the in-memory directory.
// The stored record is kept and stays loadable.
func (d *Directory) DeleteAccount(ctx context.Context, number string) error {
	if _, err := d.stored(ctx, number, ActionDelete); err != nil {
		return err
	}

	owner := ""
	found := false

	for id, a := range d.accounts {
		if a.Number == number {
			owner, found = id, true
			break
		}
	}

	if !found {
		return d.fail(ctx, ActionDelete, domain.ErrAccountNotFound)
	}

	delete(d.accounts, owner)

	d.actions.Admin(ctx, ActionDelete, detailsAccountNo+number)

	return nil
}

// Owns reports whether the owner has an account registered in this session.
func (d *Directory) Owns(ownerID string) bool {
	_, ok := d.accounts[ownerID]
	return ok
}
