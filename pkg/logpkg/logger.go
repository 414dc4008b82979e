// Package logpkg builds the application zerolog logger.
package logpkg

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/go-petr/pet-ledger/pkg/configpkg"
)

// New returns a logger configured for the given environment.
//
// Diagnostics go to stderr so they do not mix with the interactive prompt on stdout.
func New(config configpkg.Config) zerolog.Logger {
	return NewWithWriter(config, os.Stderr)
}

// NewWithWriter is New with an explicit output.
func NewWithWriter(config configpkg.Config, output io.Writer) zerolog.Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	logLevel, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil || logLevel == zerolog.NoLevel {
		logLevel = zerolog.WarnLevel
	}

	log := zerolog.New(output).
		Level(logLevel).
		With().
		Timestamp().
		Logger()

	if config.Environment == configpkg.EnvDevelopment {
		log = log.
			Output(zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}).
			Level(zerolog.TraceLevel).
			With().
			Caller().
			Logger()
	}

	return log
}

// WithSession tags logger with a fresh session id and attaches it to ctx,
// where zerolog.Ctx finds it.
func WithSession(ctx context.Context, logger zerolog.Logger) (context.Context, zerolog.Logger) {
	logger = logger.With().Str("session_id", uuid.NewString()).Logger()
	return logger.WithContext(ctx), logger
}
