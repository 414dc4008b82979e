package clidelivery

import (
	"context"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/moneypkg"
)

func (s *Session) runAdmin(ctx context.Context) error {
	for {
		s.println(adminMenu)

		choice, err := s.ask("Enter your choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = s.createAccount(ctx)
		case "2":
			err = s.accountDetails(ctx)
		case "3":
			err = s.transactions(ctx)
		case "4":
			err = s.setLimit(ctx)
		case "5":
			err = s.withNumber(ctx, s.admin.FreezeAccount, "Account %s has been frozen.\n")
		case "6":
			err = s.withNumber(ctx, s.admin.UnfreezeAccount, "Account %s has been unfrozen.\n")
		case "7":
			err = s.withNumber(ctx, s.admin.DeleteAccount, "Account %s has been deleted.\n")
		case "8":
			s.println("Exiting admin panel. Goodbye!")
			return nil
		default:
			s.println("Invalid choice. Please try again.")
		}

		if err != nil {
			return err
		}
	}
}

func (s *Session) createAccount(ctx context.Context) error {
	ownerID, err := s.ask("Enter the owner's ID: ")
	if err != nil {
		return err
	}

	if s.admin.Owns(ownerID) {
		// Let the directory record the refusal.
		_, err := s.admin.CreateAccount(ctx, domain.CreateAccountParams{OwnerID: ownerID})
		s.printErr(err)
		return nil
	}

	name, err := s.ask("Enter name: ")
	if err != nil {
		return err
	}

	age, ok, err := s.askInt("Enter age: ")
	if err != nil || !ok {
		return err
	}

	salary, ok, err := s.askAmount("Enter salary: ")
	if err != nil || !ok {
		return err
	}

	number, err := s.ask("Enter account number: ")
	if err != nil {
		return err
	}

	pin, err := s.ask("Enter the PIN: ")
	if err != nil {
		return err
	}

	acc, err := s.admin.CreateAccount(ctx, domain.CreateAccountParams{
		OwnerID:       ownerID,
		Name:          name,
		Age:           age,
		Salary:        salary,
		AccountNumber: number,
		PIN:           pin,
	})
	if err != nil {
		s.printErr(err)
		return nil
	}

	s.printf("Account '%s' created successfully.\n", acc.Number)

	return nil
}

func (s *Session) accountDetails(ctx context.Context) error {
	number, err := s.ask("Enter the account number to display details: ")
	if err != nil {
		return err
	}

	acc, err := s.admin.AccountDetails(ctx, number)
	if err != nil {
		s.printErr(err)
		return nil
	}

	s.println("Account details:")
	s.printf("Owner ID: %s, Name: %s, Age: %d, Salary: %s, Account Number: %s\n",
		acc.OwnerID, acc.Name, acc.Age, moneypkg.Format(acc.Salary), acc.Number)

	return nil
}

func (s *Session) transactions(ctx context.Context) error {
	number, err := s.ask("Enter the account number to fetch transactions: ")
	if err != nil {
		return err
	}

	lines, err := s.admin.Transactions(ctx, number)
	if err != nil {
		s.printErr(err)
		return nil
	}

	s.printf("Transaction History for Account Number: %s:\n", number)
	s.printLines(lines, "No transaction history found.")

	return nil
}

func (s *Session) setLimit(ctx context.Context) error {
	number, err := s.ask("Enter the account number: ")
	if err != nil {
		return err
	}

	limit, ok, err := s.askAmount("Enter the transaction limit: ")
	if err != nil || !ok {
		return err
	}

	if err := s.admin.SetTransactionLimit(ctx, number, limit); err != nil {
		s.printErr(err)
		return nil
	}

	s.printf("Transaction limit for account %s is set to %s.\n", number, moneypkg.Format(limit))

	return nil
}

// withNumber asks for an account number and runs op on it.
func (s *Session) withNumber(ctx context.Context, op func(context.Context, string) error, success string) error {
	number, err := s.ask("Enter the account number: ")
	if err != nil {
		return err
	}

	if err := op(ctx, number); err != nil {
		s.printErr(err)
		return nil
	}

	s.printf(success, number)

	return nil
}
