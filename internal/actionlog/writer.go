// Package actionlog appends human-readable audit lines for account and admin actions.
package actionlog

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/fspkg"
)

// AdminFileName is the admin action log.
const AdminFileName = "admin_log.txt"

// Writer appends action lines to flat files. The logs are never read back.
type Writer struct {
	fs  afero.Fs
	now func() time.Time
}

// New returns a Writer storing logs in fs.
func New(fs afero.Fs) *Writer {
	return &Writer{fs: fs, now: time.Now}
}

// AccountFileName returns the action log file for the account number.
func AccountFileName(number string) string {
	return "log_" + number + ".txt"
}

// Line formats a single action log line.
func Line(at time.Time, action, details string) string {
	return fmt.Sprintf("%s - %s: %s", at.Format(domain.DateLayout), action, details)
}

// Account records an action performed on the account.
func (w *Writer) Account(ctx context.Context, number, action, details string) {
	w.append(ctx, AccountFileName(number), action, details)
}

// Admin records an administrator action.
func (w *Writer) Admin(ctx context.Context, action, details string) {
	w.append(ctx, AdminFileName, action, details)
}

// append never fails the caller, a lost audit line is only reported.
func (w *Writer) append(ctx context.Context, name, action, details string) {
	if err := fspkg.AppendLine(w.fs, name, Line(w.now(), action, details)); err != nil {
		zerolog.Ctx(ctx).Error().Stack().Err(err).Str("action", action).Send()
	}
}
