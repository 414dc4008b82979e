package logpkg

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/pkg/configpkg"
)

func TestNewLevel(t *testing.T) {
	testCases := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{"Debug", "debug", zerolog.DebugLevel},
		{"Error", "error", zerolog.ErrorLevel},
		{"Empty", "", zerolog.WarnLevel},
		{"Garbage", "loud", zerolog.WarnLevel},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewWithWriter(configpkg.Config{LogLevel: tc.level}, &buf)
			require.Equal(t, tc.want, l.GetLevel())
		})
	}
}

func TestNewDevelopment(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(configpkg.Config{Environment: configpkg.EnvDevelopment, LogLevel: "error"}, &buf)
	require.Equal(t, zerolog.TraceLevel, l.GetLevel())
}

func TestWithSession(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter(configpkg.Config{LogLevel: "info"}, &buf)

	ctx, l := WithSession(context.Background(), base)
	l.Info().Msg("hello")

	zerolog.Ctx(ctx).Info().Msg("from context")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var ids []string
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))

		id, ok := entry["session_id"].(string)
		require.True(t, ok, "session_id missing in %s", line)

		_, err := uuid.Parse(id)
		require.NoError(t, err)

		ids = append(ids, id)
	}

	require.Equal(t, ids[0], ids[1])
}
