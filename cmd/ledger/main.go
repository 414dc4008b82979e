// Package main runs the interactive single-user banking ledger.
package main

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/go-petr/pet-ledger/internal/accountrepo"
	"github.com/go-petr/pet-ledger/internal/actionlog"
	"github.com/go-petr/pet-ledger/internal/adminservice"
	"github.com/go-petr/pet-ledger/internal/clidelivery"
	"github.com/go-petr/pet-ledger/internal/frozenregistry"
	"github.com/go-petr/pet-ledger/internal/ledgerservice"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
	"github.com/go-petr/pet-ledger/pkg/fspkg"
	"github.com/go-petr/pet-ledger/pkg/logpkg"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		log.Fatal().Err(err).Msg("ledger stopped")
	}
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "ledger",
		Short:         "Interactive banking ledger for customers and administrators",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath, in, out)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "./configs", "directory holding app.env")

	return cmd
}

func run(ctx context.Context, configPath string, in io.Reader, out io.Writer) error {
	config, err := configpkg.Load(configPath)
	if err != nil {
		return errors.Wrap(err, "cannot load config")
	}

	ctx, logger := logpkg.WithSession(ctx, logpkg.New(config))

	fs, err := fspkg.Setup(config.DataDir)
	if err != nil {
		return errors.Wrap(err, "cannot set up data dir")
	}

	repo := accountrepo.NewRepoFS(fs)
	registry := frozenregistry.New(fs)
	actions := actionlog.New(fs)

	session := clidelivery.New(in, out,
		ledgerservice.New(repo, registry, actions),
		adminservice.New(repo, registry, actions),
	)

	logger.Debug().Str("data_dir", config.DataDir).Msg("session ready")

	return session.Run(ctx)
}
