package actionlog

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func newTestWriter(fs afero.Fs) *Writer {
	w := New(fs)
	w.now = func() time.Time {
		return time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)
	}

	return w
}

func TestAccount(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	w := newTestWriter(fs)
	ctx := context.Background()

	w.Account(ctx, "1001", "Deposit", "Deposited $100.00")
	w.Account(ctx, "1001", "Withdraw", "Failed - Insufficient funds")
	w.Account(ctx, "2002", "Check Balance", "Balance: $0.00")

	data, err := afero.ReadFile(fs, "log_1001.txt")
	require.NoError(t, err)
	require.Equal(t,
		"2024-03-09 14:05:07 - Deposit: Deposited $100.00\n"+
			"2024-03-09 14:05:07 - Withdraw: Failed - Insufficient funds\n",
		string(data))

	data, err = afero.ReadFile(fs, "log_2002.txt")
	require.NoError(t, err)
	require.Equal(t, "2024-03-09 14:05:07 - Check Balance: Balance: $0.00\n", string(data))
}

func TestAdmin(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	w := newTestWriter(fs)

	w.Admin(context.Background(), "Freeze Account", "Account 1001 frozen")

	data, err := afero.ReadFile(fs, AdminFileName)
	require.NoError(t, err)
	require.Equal(t, "2024-03-09 14:05:07 - Freeze Account: Account 1001 frozen\n", string(data))
}

func TestWriteFailureIsLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())

	w := newTestWriter(afero.NewReadOnlyFs(afero.NewMemMapFs()))

	require.NotPanics(t, func() {
		w.Admin(ctx, "Create Account", "Account 1001 created")
	})
	require.Contains(t, buf.String(), `"action":"Create Account"`)
}
