// Package accountrepo manages repository layer of account records.
package accountrepo

import (
	"bytes"
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/validpkg"
)

// RepoFS facilitates account repository layer logic over flat files.
//
// Each account lives in its own account_<number>.txt file. There is no locking,
// concurrent writers from several processes would corrupt records.
type RepoFS struct {
	fs afero.Fs
}

// NewRepoFS returns account RepoFS.
func NewRepoFS(fs afero.Fs) *RepoFS {
	return &RepoFS{fs: fs}
}

// FileName returns the record file name for the account number.
func FileName(number string) (string, error) {
	if !validpkg.IsAccountNumber(number) {
		return "", domain.ErrInvalidAccountNumber
	}

	return "account_" + number + ".txt", nil
}

// Get returns the account stored under the given number.
func (r *RepoFS) Get(ctx context.Context, number string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var a domain.Account

	name, err := FileName(number)
	if err != nil {
		return a, domain.ErrAccountNotFound
	}

	data, err := afero.ReadFile(r.fs, name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(errors.Wrapf(err, "read %q", name)).Send()

		return a, errorspkg.ErrInternal
	}

	a, err = Decode(bytes.NewReader(data))
	if err != nil {
		l.Error().Stack().Err(err).Str("file", name).Send()

		if errors.Is(err, domain.ErrMalformedRecord) {
			return domain.Account{}, err
		}

		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}

// Save writes the account record, replacing any previous version.
func (r *RepoFS) Save(ctx context.Context, a domain.Account) error {
	l := zerolog.Ctx(ctx)

	name, err := FileName(a.Number)
	if err != nil {
		return err
	}

	data, err := Encode(a)
	if err != nil {
		l.Error().Stack().Err(err).Str("file", name).Send()
		return errorspkg.ErrInternal
	}

	if err := afero.WriteFile(r.fs, name, data, 0o644); err != nil {
		l.Error().Stack().Err(errors.Wrapf(err, "write %q", name)).Send()
		return errorspkg.ErrInternal
	}

	return nil
}
