// Package ledgerservice manages business logic layer of a customer's account ledger.
package ledgerservice

import (
	"context"
	"fmt"
	"iter"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/moneypkg"
	"github.com/go-petr/pet-ledger/pkg/validpkg"
)

// Action names written to the per-account action log.
const (
	ActionOpen           = "Open Account"
	ActionDeposit        = "Deposit"
	ActionWithdraw       = "Withdraw"
	ActionTransfer       = "Transfer"
	ActionAddTransaction = "Add Transaction"
	ActionChangePIN      = "Change PIN"
	ActionBalance        = "Check Balance"
	ActionStatement      = "Print Statement"
	ActionHistory        = "Show Transaction History"
)

// Repo provides data access layer interface needed by ledger service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type Repo interface {
	Get(ctx context.Context, number string) (domain.Account, error)
	Save(ctx context.Context, a domain.Account) error
}

// Registry reports whether an account is frozen.
type Registry interface {
	IsFrozen(ctx context.Context, number string) (bool, error)
}

// ActionLog records account actions for audit.
type ActionLog interface {
	Account(ctx context.Context, number, action, details string)
}

// Service facilitates ledger service layer logic.
//
// Mutations are computed on a clone of the account, persisted, and only then
// copied into the caller's account.
type Service struct {
	repo     Repo
	registry Registry
	actions  ActionLog
	validate *validator.Validate
	now      func() time.Time
}

// New returns ledger service struct to manage account ledger business logic.
func New(repo Repo, frozen Registry, actions ActionLog) *Service {
	return &Service{
		repo:     repo,
		registry: frozen,
		actions:  actions,
		validate: validpkg.New(),
		now:      time.Now,
	}
}

func (s *Service) fail(ctx context.Context, number, action string, err error) error {
	s.actions.Account(ctx, number, action, "Failed - "+errorspkg.Message(err))
	return err
}

// checkFrozen fails the action when the account is listed in the frozen registry.
func (s *Service) checkFrozen(ctx context.Context, number, action string) error {
	frozen, err := s.registry.IsFrozen(ctx, number)
	if err != nil {
		return s.fail(ctx, number, action, err)
	}

	if frozen {
		return s.fail(ctx, number, action, domain.ErrAccountFrozen)
	}

	return nil
}

// Load returns the stored account for number.
func (s *Service) Load(ctx context.Context, number string) (domain.Account, error) {
	a, err := s.repo.Get(ctx, number)
	if err != nil {
		return domain.Account{}, err
	}

	if a.Number != number {
		zerolog.Ctx(ctx).Warn().Str("key", number).Str("stored", a.Number).Msg("account number mismatch")
		return domain.Account{}, domain.ErrAccountMismatch
	}

	return a, nil
}

// Open creates an account for a first-time user. The name is taken as entered.
func (s *Service) Open(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if err := s.validate.StructExcept(arg, "Name"); err != nil {
		if field, ok := validpkg.FailedField(err); ok {
			if fieldErr := domain.CreateParamsError(field); fieldErr != nil {
				return domain.Account{}, fieldErr
			}
		}

		l.Error().Err(err).Send()

		return domain.Account{}, errorspkg.ErrInternal
	}

	_, err := s.repo.Get(ctx, arg.AccountNumber)
	switch {
	case err == nil:
		return domain.Account{}, domain.ErrAccountExists
	case !errors.Is(err, domain.ErrAccountNotFound):
		return domain.Account{}, err
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

	if err := s.repo.Save(ctx, a); err != nil {
		return domain.Account{}, err
	}

	s.actions.Account(ctx, a.Number, ActionOpen, "Owner ID: "+a.OwnerID)

	return a, nil
}

// addTransaction appends a record to next and persists next.
func (s *Service) addTransaction(ctx context.Context, next *domain.Account, typ domain.TransactionType, amount decimal.Decimal, recipient string) error {
	next.History.Append(domain.Transaction{
		Date:      s.now().Truncate(time.Second),
		Type:      typ,
		Amount:    amount,
		Recipient: recipient,
	})

	if err := s.repo.Save(ctx, *next); err != nil {
		return err
	}

	if recipient == "" {
		recipient = "none"
	}

	s.actions.Account(ctx, next.Number, ActionAddTransaction,
		fmt.Sprintf("Type: %s, Amount: %s, Recipient: %s", typ, moneypkg.Format(amount), recipient))

	return nil
}

// AddTransaction appends a record to the account log without touching the balance.
func (s *Service) AddTransaction(ctx context.Context, acc *domain.Account, typ domain.TransactionType, amount decimal.Decimal, recipient string) error {
	if err := s.checkFrozen(ctx, acc.Number, ActionAddTransaction); err != nil {
		return err
	}

	if !typ.Valid() || (typ == domain.Transfer) != (recipient != "") {
		return s.fail(ctx, acc.Number, ActionAddTransaction, domain.ErrInvalidTransaction)
	}

	if !amount.IsPositive() {
		return s.fail(ctx, acc.Number, ActionAddTransaction, domain.ErrInvalidAmount)
	}

	next := acc.Clone()

	if err := s.addTransaction(ctx, &next, typ, amount, recipient); err != nil {
		return s.fail(ctx, acc.Number, ActionAddTransaction, err)
	}

	*acc = next

	return nil
}

// Deposit adds amount to the balance and returns the new balance.
func (s *Service) Deposit(ctx context.Context, acc *domain.Account, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := s.checkFrozen(ctx, acc.Number, ActionDeposit); err != nil {
		return decimal.Zero, err
	}

	if !amount.IsPositive() {
		return decimal.Zero, s.fail(ctx, acc.Number, ActionDeposit, domain.ErrInvalidAmount)
	}

	next := acc.Clone()
	next.Balance = next.Balance.Add(amount)

	if err := s.addTransaction(ctx, &next, domain.Deposit, amount, ""); err != nil {
		return decimal.Zero, s.fail(ctx, acc.Number, ActionDeposit, err)
	}

	*acc = next

	s.actions.Account(ctx, acc.Number, ActionDeposit,
		fmt.Sprintf("Amount: %s, New Balance: %s", moneypkg.Format(amount), moneypkg.Format(acc.Balance)))

	return acc.Balance, nil
}

// Withdraw subtracts amount from the balance and returns the new balance.
func (s *Service) Withdraw(ctx context.Context, acc *domain.Account, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := s.checkFrozen(ctx, acc.Number, ActionWithdraw); err != nil {
		return decimal.Zero, err
	}

	if !amount.IsPositive() {
		return decimal.Zero, s.fail(ctx, acc.Number, ActionWithdraw, domain.ErrInvalidAmount)
	}

	if amount.GreaterThan(acc.Balance) {
		return decimal.Zero, s.fail(ctx, acc.Number, ActionWithdraw, domain.ErrInsufficientFunds)
	}

	next := acc.Clone()
	next.Balance = next.Balance.Sub(amount)

	if err := s.addTransaction(ctx, &next, domain.Withdrawal, amount, ""); err != nil {
		return decimal.Zero, s.fail(ctx, acc.Number, ActionWithdraw, err)
	}

	*acc = next

	s.actions.Account(ctx, acc.Number, ActionWithdraw,
		fmt.Sprintf("Amount: %s, New Balance: %s", moneypkg.Format(amount), moneypkg.Format(acc.Balance)))

	return acc.Balance, nil
}

// Transfer moves amount from one account to another.
//
// Only the sender is checked against the frozen registry, receives the
// Transfer record and is persisted. The recipient's balance changes in memory
// only and its history is left as is.
func (s *Service) Transfer(ctx context.Context, from, to *domain.Account, amount decimal.Decimal) error {
	if err := s.checkFrozen(ctx, from.Number, ActionTransfer); err != nil {
		return err
	}

	if !amount.IsPositive() {
		return s.fail(ctx, from.Number, ActionTransfer, domain.ErrInvalidAmount)
	}

	if amount.GreaterThan(from.Balance) {
		return s.fail(ctx, from.Number, ActionTransfer, domain.ErrInsufficientFunds)
	}

	next := from.Clone()
	next.Balance = next.Balance.Sub(amount)

	if err := s.addTransaction(ctx, &next, domain.Transfer, amount, to.Number); err != nil {
		return s.fail(ctx, from.Number, ActionTransfer, err)
	}

	*from = next
	to.Balance = to.Balance.Add(amount)

	s.actions.Account(ctx, from.Number, ActionTransfer,
		fmt.Sprintf("Amount: %s, Recipient: %s", moneypkg.Format(amount), to.Number))

	return nil
}

// ChangePIN replaces the PIN after checking the current one. No transaction is recorded.
func (s *Service) ChangePIN(ctx context.Context, acc *domain.Account, current, next string) error {
	if err := s.checkFrozen(ctx, acc.Number, ActionChangePIN); err != nil {
		return err
	}

	if !acc.CheckPIN(current) {
		return s.fail(ctx, acc.Number, ActionChangePIN, domain.ErrWrongPIN)
	}

	if utf8.RuneCountInString(next) != domain.PINLength {
		return s.fail(ctx, acc.Number, ActionChangePIN, domain.ErrInvalidPINFormat)
	}

	changed := acc.Clone()
	changed.PIN = domain.ObfuscatePIN(next)

	if err := s.repo.Save(ctx, changed); err != nil {
		return s.fail(ctx, acc.Number, ActionChangePIN, err)
	}

	*acc = changed

	s.actions.Account(ctx, acc.Number, ActionChangePIN, "Success")

	return nil
}

// Balance returns the current balance.
func (s *Service) Balance(ctx context.Context, acc *domain.Account) (decimal.Decimal, error) {
	if err := s.checkFrozen(ctx, acc.Number, ActionBalance); err != nil {
		return decimal.Zero, err
	}

	s.actions.Account(ctx, acc.Number, ActionBalance, "Current Balance: "+moneypkg.Format(acc.Balance))

	return acc.Balance, nil
}

// Statement returns the statement lines, oldest first.
func (s *Service) Statement(ctx context.Context, acc *domain.Account) (iter.Seq[string], error) {
	return s.lines(ctx, acc, ActionStatement)
}

// History returns the transaction history lines, oldest first.
func (s *Service) History(ctx context.Context, acc *domain.Account) (iter.Seq[string], error) {
	return s.lines(ctx, acc, ActionHistory)
}

func (s *Service) lines(ctx context.Context, acc *domain.Account, action string) (iter.Seq[string], error) {
	if err := s.checkFrozen(ctx, acc.Number, action); err != nil {
		return nil, err
	}

	s.actions.Account(ctx, acc.Number, action, "Success")

	return acc.History.Clone().Lines(), nil
}
