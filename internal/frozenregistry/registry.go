// Package frozenregistry keeps the durable list of frozen account numbers.
package frozenregistry

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/fspkg"
)

// FileName is the registry file, one account number per line.
const FileName = "frozen_accounts.txt"

// Registry is the frozen-account registry backed by a flat file.
type Registry struct {
	fs afero.Fs
}

// New returns a registry stored in fs.
func New(fs afero.Fs) *Registry {
	return &Registry{fs: fs}
}

// list returns the registry lines; a missing file yields found == false.
func (r *Registry) list() (numbers []string, found bool, err error) {
	data, err := afero.ReadFile(r.fs, FileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "read %q", FileName)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		numbers = append(numbers, line)
	}

	return numbers, true, nil
}

// IsFrozen reports whether the account number is listed.
func (r *Registry) IsFrozen(ctx context.Context, number string) (bool, error) {
	numbers, _, err := r.list()
	if err != nil {
		zerolog.Ctx(ctx).Error().Stack().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	for _, n := range numbers {
		if n == number {
			return true, nil
		}
	}

	return false, nil
}

// Freeze appends the account number to the registry.
//
// Duplicates are not checked: freezing twice writes two lines, and a single
// Unfreeze then leaves the account frozen.
func (r *Registry) Freeze(ctx context.Context, number string) error {
	if err := fspkg.AppendLine(r.fs, FileName, number); err != nil {
		zerolog.Ctx(ctx).Error().Stack().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

// Unfreeze removes the first occurrence of the account number and rewrites the registry.
func (r *Registry) Unfreeze(ctx context.Context, number string) error {
	l := zerolog.Ctx(ctx)

	numbers, found, err := r.list()
	if err != nil {
		l.Error().Stack().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if !found {
		l.Debug().Str("file", FileName).Msg("no frozen accounts")
		return domain.ErrNotFrozen
	}

	idx := -1
	for i, n := range numbers {
		if n == number {
			idx = i
			break
		}
	}

	if idx < 0 {
		return domain.ErrNotFrozen
	}

	numbers = append(numbers[:idx], numbers[idx+1:]...)

	var sb strings.Builder
	for _, n := range numbers {
		sb.WriteString(n)
		sb.WriteByte('\n')
	}

	if err := afero.WriteFile(r.fs, FileName, []byte(sb.String()), 0o644); err != nil {
		l.Error().Stack().Err(errors.Wrapf(err, "write %q", FileName)).Send()
		return errorspkg.ErrInternal
	}

	return nil
}
