package moneypkg

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	require.Equal(t, "$100.00", Format(decimal.NewFromInt(100)))
	require.Equal(t, "$0.50", Format(decimal.RequireFromString("0.5")))
	require.Equal(t, "$12.35", Format(decimal.RequireFromString("12.345")))
}

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: "100", want: "100"},
		{in: " 30.25 ", want: "30.25"},
		{in: "$5", want: "5"},
		{in: "-1", want: "-1"},
		{in: "abc", wantErr: ErrNotANumber},
		{in: "", wantErr: ErrNotANumber},
	}

	for _, tc := range testCases {
		got, err := Parse(tc.in)
		if tc.wantErr != nil {
			require.ErrorIs(t, err, tc.wantErr, "Parse(%q)", tc.in)
			continue
		}

		require.NoError(t, err, "Parse(%q)", tc.in)
		require.True(t, got.Equal(decimal.RequireFromString(tc.want)), "Parse(%q) = %s, want %s", tc.in, got, tc.want)
	}
}
