package domain

import (
	"slices"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestHistoryLines(t *testing.T) {
	t.Parallel()

	date := time.Date(2024, 3, 1, 9, 30, 15, 0, time.Local)

	var h History
	h.Append(Transaction{Date: date, Type: Deposit, Amount: decimal.RequireFromString("100")})
	h.Append(Transaction{Date: date.Add(time.Minute), Type: Transfer, Amount: decimal.RequireFromString("12.5"), Recipient: "42"})

	want := []string{
		"2024-03-01 09:30:15: Deposit, $100.00",
		"2024-03-01 09:31:15: Transfer, $12.50",
	}

	got := slices.Collect(h.Lines())
	if !slices.Equal(got, want) {
		t.Fatalf("Lines() = %q, want %q", got, want)
	}

	// The sequence is restartable.
	again := slices.Collect(h.Lines())
	if !slices.Equal(again, want) {
		t.Fatalf("second Lines() = %q, want %q", again, want)
	}
}

func TestHistoryLinesEarlyStop(t *testing.T) {
	t.Parallel()

	var h History
	for i := 0; i < 3; i++ {
		h.Append(Transaction{Date: time.Now(), Type: Deposit, Amount: decimal.NewFromInt(1)})
	}

	n := 0
	for range h.Lines() {
		n++
		break
	}

	if n != 1 {
		t.Errorf("ranged %d lines, want 1", n)
	}
}

func TestHistoryClone(t *testing.T) {
	t.Parallel()

	var h History
	h.Append(Transaction{Type: Deposit, Amount: decimal.NewFromInt(1)})

	c := h.Clone()
	c.Append(Transaction{Type: Withdrawal, Amount: decimal.NewFromInt(1)})
	c[0].Type = AddTransaction

	if len(h) != 1 || h[0].Type != Deposit {
		t.Errorf("original history changed: %+v", h)
	}
}
