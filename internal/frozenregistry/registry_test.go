package frozenregistry

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
)

func requireFrozen(t *testing.T, r *Registry, number string, want bool) {
	t.Helper()

	got, err := r.IsFrozen(context.Background(), number)
	require.NoError(t, err)
	require.Equal(t, want, got, "IsFrozen(%q)", number)
}

func TestFreezeUnfreeze(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	r := New(fs)
	ctx := context.Background()

	requireFrozen(t, r, "1001", false)

	require.NoError(t, r.Freeze(ctx, "1001"))
	require.NoError(t, r.Freeze(ctx, "2002"))

	requireFrozen(t, r, "1001", true)
	requireFrozen(t, r, "2002", true)
	requireFrozen(t, r, "3003", false)

	require.NoError(t, r.Unfreeze(ctx, "1001"))

	requireFrozen(t, r, "1001", false)
	requireFrozen(t, r, "2002", true)

	data, err := afero.ReadFile(fs, FileName)
	require.NoError(t, err)
	require.Equal(t, "2002\n", string(data))
}

func TestFreezeTwiceNeedsTwoUnfreezes(t *testing.T) {
	t.Parallel()

	r := New(afero.NewMemMapFs())
	ctx := context.Background()

	require.NoError(t, r.Freeze(ctx, "1001"))
	require.NoError(t, r.Freeze(ctx, "1001"))

	require.NoError(t, r.Unfreeze(ctx, "1001"))
	requireFrozen(t, r, "1001", true)

	require.NoError(t, r.Unfreeze(ctx, "1001"))
	requireFrozen(t, r, "1001", false)
}

func TestUnfreezeNotFrozen(t *testing.T) {
	t.Parallel()

	r := New(afero.NewMemMapFs())
	ctx := context.Background()

	// No registry file yet.
	require.ErrorIs(t, r.Unfreeze(ctx, "1001"), domain.ErrNotFrozen)

	require.NoError(t, r.Freeze(ctx, "2002"))
	require.ErrorIs(t, r.Unfreeze(ctx, "1001"), domain.ErrNotFrozen)
	requireFrozen(t, r, "2002", true)
}

func TestRegistryStorageFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	base := afero.NewMemMapFs()
	require.NoError(t, New(base).Freeze(ctx, "1001"))

	ro := New(afero.NewReadOnlyFs(base))

	require.ErrorIs(t, ro.Freeze(ctx, "2002"), errorspkg.ErrInternal)
	require.ErrorIs(t, ro.Unfreeze(ctx, "1001"), errorspkg.ErrInternal)

	frozen, err := ro.IsFrozen(ctx, "1001")
	require.NoError(t, err)
	require.True(t, frozen)
}
