// Package domain provides defenitions of all ledger entities.
package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that no record exists for the account number.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountMismatch indicates that the stored record belongs to another account number.
	ErrAccountMismatch = errors.New("account number does not match the stored record")
	// ErrAccountFrozen indicates that the account is listed in the frozen registry.
	ErrAccountFrozen = errors.New("account is frozen")
	// ErrNotFrozen indicates that the account is not listed in the frozen registry.
	ErrNotFrozen = errors.New("account is not frozen")
	// ErrDuplicateOwner indicates that the owner already has an account in the directory.
	ErrDuplicateOwner = errors.New("an account already exists for this owner")
	// ErrInvalidName indicates that the name is empty or contains non-alphabetic characters.
	ErrInvalidName = errors.New("name must contain only letters")
	// ErrInvalidAge indicates a negative age.
	ErrInvalidAge = errors.New("age must not be negative")
	// ErrInvalidAccountNumber indicates an account number that cannot be used as a storage key.
	ErrInvalidAccountNumber = errors.New("invalid account number")
	// ErrMalformedRecord indicates that a stored record could not be decoded.
	ErrMalformedRecord = errors.New("malformed account record")
	// ErrWrongPIN indicates that the entered PIN does not match the stored one.
	ErrWrongPIN = errors.New("current PIN is incorrect")
	// ErrInvalidPINFormat indicates that the PIN is not exactly 4 characters long.
	ErrInvalidPINFormat = errors.New("PIN must be exactly 4 digits")
	// ErrAccountExists indicates that a record is already stored under the account number.
	ErrAccountExists = errors.New("account already exists")
)

// PINLength is the number of characters in a PIN.
const PINLength = 4

// Account holds one customer's ledger state.
//
// PIN is kept in its obfuscated form, see ObfuscatePIN.
type Account struct {
	OwnerID string
	Name    string
	Age     int
	Salary  decimal.Decimal
	Number  string
	PIN     string
	Balance decimal.Decimal
	History History
}

// CreateAccountParams is the input data to open an account.
type CreateAccountParams struct {
	OwnerID       string
	Name          string `validate:"required,alphaunicode"`
	Age           int    `validate:"gte=0"`
	Salary        decimal.Decimal
	AccountNumber string `validate:"required,accountnumber"`
	PIN           string `validate:"len=4"`
}

// CreateParamsError returns the error reported when the named
// CreateAccountParams field fails validation, or nil for an unknown field.
func CreateParamsError(field string) error {
	switch field {
	case "Name":
		return ErrInvalidName
	case "Age":
		return ErrInvalidAge
	case "AccountNumber":
		return ErrInvalidAccountNumber
	case "PIN":
		return ErrInvalidPINFormat
	default:
		return nil
	}
}

// Clone returns a copy of the account that shares no history storage with a.
func (a Account) Clone() Account {
	c := a
	c.History = a.History.Clone()
	return c
}

// CheckPIN reports whether pin matches the stored obfuscated PIN.
func (a Account) CheckPIN(pin string) bool {
	return a.PIN == ObfuscatePIN(pin)
}

// ObfuscatePIN returns the storage form of a PIN: its characters in reverse order.
//
// This is a reversible obfuscation kept for compatibility with the record format,
// not a security measure.
func ObfuscatePIN(pin string) string {
	r := []rune(pin)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}

	return string(r)
}
