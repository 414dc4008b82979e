package domain

import (
	"fmt"
	"iter"
	"slices"
)

// History is the append-only, chronologically ordered transaction log of an account.
type History []Transaction

// Append adds t at the end of the log.
func (h *History) Append(t Transaction) {
	*h = append(*h, t)
}

// Clone returns a copy of the log with its own backing array.
func (h History) Clone() History {
	return slices.Clone(h)
}

// Lines yields one formatted line per transaction, oldest first.
//
// The sequence is recomputed from the log on every range, so it can be consumed
// any number of times.
func (h History) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, t := range h {
			if !yield(FormatTransaction(t)) {
				return
			}
		}
	}
}

// FormatTransaction renders t as "<date>: <type>, $<amount>".
func FormatTransaction(t Transaction) string {
	return fmt.Sprintf("%s: %s, $%s", t.Date.Format(DateLayout), t.Type, t.Amount.StringFixed(2))
}
