package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount indicates a zero or negative amount.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrInsufficientFunds indicates that the account balance does not cover the amount.
	ErrInsufficientFunds = errors.New("insufficient balance")
	// ErrInvalidTransaction indicates an unknown type or a recipient set on a non-transfer record.
	ErrInvalidTransaction = errors.New("invalid transaction")
)

// TransactionType enumerates the kinds of ledger records.
type TransactionType string

// Supported transaction types.
const (
	Deposit        TransactionType = "Deposit"
	Withdrawal     TransactionType = "Withdrawal"
	Transfer       TransactionType = "Transfer"
	AddTransaction TransactionType = "Add Transaction"
)

// Valid reports whether t is one of the supported transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case Deposit, Withdrawal, Transfer, AddTransaction:
		return true
	default:
		return false
	}
}

// DateLayout is the second-precision layout used for transaction and action log dates.
const DateLayout = "2006-01-02 15:04:05"

// Transaction holds a single balance change of an account.
type Transaction struct {
	Date   time.Time
	Type   TransactionType
	Amount decimal.Decimal // must be positive
	// Recipient is the receiving account number, set for transfers only.
	Recipient string
}
