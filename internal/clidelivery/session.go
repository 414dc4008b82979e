// Package clidelivery manages the interactive terminal delivery layer.
package clidelivery

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/moneypkg"
)

// Ledger provides the customer operations needed by the session.
type Ledger interface {
	Load(ctx context.Context, number string) (domain.Account, error)
	Open(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Deposit(ctx context.Context, acc *domain.Account, amount decimal.Decimal) (decimal.Decimal, error)
	Withdraw(ctx context.Context, acc *domain.Account, amount decimal.Decimal) (decimal.Decimal, error)
	Transfer(ctx context.Context, from, to *domain.Account, amount decimal.Decimal) error
	ChangePIN(ctx context.Context, acc *domain.Account, current, next string) error
	Balance(ctx context.Context, acc *domain.Account) (decimal.Decimal, error)
	Statement(ctx context.Context, acc *domain.Account) (iter.Seq[string], error)
	History(ctx context.Context, acc *domain.Account) (iter.Seq[string], error)
}

// Admin provides the administrator operations needed by the session.
type Admin interface {
	Owns(ownerID string) bool
	CreateAccount(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	AccountDetails(ctx context.Context, number string) (domain.Account, error)
	Transactions(ctx context.Context, number string) (iter.Seq[string], error)
	SetTransactionLimit(ctx context.Context, number string, limit decimal.Decimal) error
	FreezeAccount(ctx context.Context, number string) error
	UnfreezeAccount(ctx context.Context, number string) error
	DeleteAccount(ctx context.Context, number string) error
}

const userMenu = `
1. Deposit
2. Check Balance
3. Print Statement
4. Transfer
5. Withdraw
6. Change PIN
7. View Transaction History
8. Exit`

const adminMenu = `
1. Create Account
2. Show Account Details
3. Show Transactions
4. Set Transaction Limit
5. Freeze Account
6. Unfreeze Account
7. Delete Account
8. Exit`

const frozenNotice = "Sorry, your account is frozen. Contact admin to unfreeze the account."

// Session is one interactive run over a line-oriented input and an output.
type Session struct {
	in     *bufio.Scanner
	out    io.Writer
	ledger Ledger
	admin  Admin
}

// New returns a session reading answers from in and writing prompts to out.
func New(in io.Reader, out io.Writer, ledger Ledger, admin Admin) *Session {
	return &Session{
		in:     bufio.NewScanner(in),
		out:    out,
		ledger: ledger,
		admin:  admin,
	}
}

func (s *Session) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Session) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}

// ask prints prompt and returns the next trimmed input line, io.EOF when input ends.
func (s *Session) ask(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)

	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", errors.Wrap(err, "read input")
		}
		return "", io.EOF
	}

	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Session) askAmount(prompt string) (decimal.Decimal, bool, error) {
	answer, err := s.ask(prompt)
	if err != nil {
		return decimal.Zero, false, err
	}

	amount, err := moneypkg.Parse(answer)
	if err != nil {
		s.printf("Invalid input: %s.\n", err)
		return decimal.Zero, false, nil
	}

	return amount, true, nil
}

func (s *Session) askInt(prompt string) (int, bool, error) {
	answer, err := s.ask(prompt)
	if err != nil {
		return 0, false, err
	}

	n, err := strconv.Atoi(answer)
	if err != nil {
		s.printf("Invalid input: %s.\n", moneypkg.ErrNotANumber)
		return 0, false, nil
	}

	return n, true, nil
}

func (s *Session) printErr(err error) {
	if errors.Is(err, domain.ErrAccountFrozen) {
		s.println(frozenNotice)
		return
	}

	s.println("Error: " + errorspkg.Message(err) + ".")
}

// printLines prints every line of seq, or empty when there is none.
func (s *Session) printLines(seq iter.Seq[string], empty string) {
	n := 0
	for line := range seq {
		s.println(line)
		n++
	}

	if n == 0 {
		s.println(empty)
	}
}

// Run drives the session until the user exits or the input ends.
func (s *Session) Run(ctx context.Context) error {
	err := s.run(ctx)
	if errors.Is(err, io.EOF) {
		s.println()
		return nil
	}

	return err
}

func (s *Session) run(ctx context.Context) error {
	s.println("*****************Welcome to the Banking System***********************")

	name, err := s.ask("HELLO! Please enter your name first: ")
	if err != nil {
		return err
	}

	role, err := s.ask("Are you a user or an admin? (User/Admin): ")
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().Str("role", role).Msg("session started")

	switch strings.ToLower(role) {
	case "user":
		return s.runUser(ctx, name)
	case "admin":
		s.printf("Welcome, Admin %s!\n", name)
		return s.runAdmin(ctx)
	default:
		s.println("Invalid user type. Please restart and choose User or Admin.")
		return nil
	}
}

func (s *Session) runUser(ctx context.Context, name string) error {
	number, err := s.ask("Please enter your account number: ")
	if err != nil {
		return err
	}

	acc, err := s.ledger.Load(ctx, number)
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		opened, ok, err := s.offerOpen(ctx, name, number)
		if err != nil || !ok {
			return err
		}
		acc = opened
	case err != nil:
		s.printErr(err)
		return nil
	}

	s.printf("Welcome, %s!\n", name)

	for {
		s.println(userMenu)

		choice, err := s.ask("Enter your choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = s.deposit(ctx, &acc)
		case "2":
			err = s.balance(ctx, &acc)
		case "3":
			err = s.statement(ctx, &acc)
		case "4":
			err = s.transfer(ctx, &acc)
		case "5":
			err = s.withdraw(ctx, &acc)
		case "6":
			err = s.changePIN(ctx, &acc)
		case "7":
			err = s.history(ctx, &acc)
		case "8":
			s.println("Thank you for using the banking system. Goodbye!")
			return nil
		default:
			s.println("Invalid choice. Please try again.")
		}

		if err != nil {
			return err
		}
	}
}

// offerOpen lets a first-time user open an account under number.
func (s *Session) offerOpen(ctx context.Context, name, number string) (domain.Account, bool, error) {
	s.printf("No account found with number %s.\n", number)

	answer, err := s.ask("Would you like to open one? (yes/no): ")
	if err != nil {
		return domain.Account{}, false, err
	}

	if !strings.EqualFold(answer, "yes") && !strings.EqualFold(answer, "y") {
		s.println("Please create an account first.")
		return domain.Account{}, false, nil
	}

	ownerID, err := s.ask("Enter your owner ID: ")
	if err != nil {
		return domain.Account{}, false, err
	}

	age, ok, err := s.askInt("Enter your age: ")
	if err != nil || !ok {
		return domain.Account{}, false, err
	}

	salary, ok, err := s.askAmount("Enter your salary: ")
	if err != nil || !ok {
		return domain.Account{}, false, err
	}

	pin, err := s.ask("Choose a 4 digit PIN: ")
	if err != nil {
		return domain.Account{}, false, err
	}

	acc, err := s.ledger.Open(ctx, domain.CreateAccountParams{
		OwnerID:       ownerID,
		Name:          name,
		Age:           age,
		Salary:        salary,
		AccountNumber: number,
		PIN:           pin,
	})
	if err != nil {
		s.printErr(err)
		return domain.Account{}, false, nil
	}

	s.printf("Account %s opened successfully.\n", acc.Number)

	return acc, true, nil
}

func (s *Session) deposit(ctx context.Context, acc *domain.Account) error {
	amount, ok, err := s.askAmount("Enter amount to deposit: ")
	if err != nil || !ok {
		return err
	}

	balance, err := s.ledger.Deposit(ctx, acc, amount)
	if err != nil {
		s.printErr(err)
		return nil
	}

	s.printf("Successful deposit of %s. Current balance is: %s\n", moneypkg.Format(amount), moneypkg.Format(balance))

	return nil
}

func (s *Session) withdraw(ctx context.Context, acc *domain.Account) error {
	amount, ok, err := s.askAmount("Enter amount to withdraw: ")
	if err != nil || !ok {
		return err
	}

	balance, err := s.ledger.Withdraw(ctx, acc, amount)
	if err != nil {
		s.printErr(err)
		return nil
	}

	s.printf("Withdrawal of %s is successful. Current balance is: %s\n", moneypkg.Format(amount), moneypkg.Format(balance))

	return nil
}

func (s *Session) transfer(ctx context.Context, acc *domain.Account) error {
	number, err := s.ask("Enter recipient's account number: ")
	if err != nil {
		return err
	}

	recipient, err := s.ledger.Load(ctx, number)
	if err != nil {
		s.printErr(err)
		return nil
	}

	amount, ok, err := s.askAmount("Enter amount to transfer: ")
	if err != nil || !ok {
		return err
	}

	if err := s.ledger.Transfer(ctx, acc, &recipient, amount); err != nil {
		s.printErr(err)
		return nil
	}

	s.printf("Transfer of %s to %s is successful.\n", moneypkg.Format(amount), recipient.Number)

	return nil
}

func (s *Session) balance(ctx context.Context, acc *domain.Account) error {
	balance, err := s.ledger.Balance(ctx, acc)
	if err != nil {
		s.printErr(err)
		return nil
	}

	s.printf("Your current balance is: %s\n", moneypkg.Format(balance))

	return nil
}

func (s *Session) statement(ctx context.Context, acc *domain.Account) error {
	lines, err := s.ledger.Statement(ctx, acc)
	if err != nil {
		s.printErr(err)
		return nil
	}

	s.printf("Statement for Account Number %s:\n", acc.Number)
	s.printLines(lines, "No transactions found for corresponding account number.")

	return nil
}

func (s *Session) history(ctx context.Context, acc *domain.Account) error {
	lines, err := s.ledger.History(ctx, acc)
	if err != nil {
		s.printErr(err)
		return nil
	}

	s.printf("Transaction History for Account Number: %s:\n", acc.Number)
	s.printLines(lines, "No transactions found.")

	return nil
}

func (s *Session) changePIN(ctx context.Context, acc *domain.Account) error {
	current, err := s.ask("Enter your current PIN: ")
	if err != nil {
		return err
	}

	next, err := s.ask("Please enter your new PIN: ")
	if err != nil {
		return err
	}

	if err := s.ledger.ChangePIN(ctx, acc, current, next); err != nil {
		s.printErr(err)
		return nil
	}

	s.println("PIN changed successfully.")

	return nil
}
