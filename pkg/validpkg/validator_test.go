package validpkg

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestIsAccountNumber(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in   string
		want bool
	}{
		{"12345", true},
		{"ACC-01", true},
		{"", false},
		{"..", false},
		{"../etc", false},
		{"a/b", false},
		{`a\b`, false},
		{"12\n3", false},
		{" 12", false},
	}

	for _, tc := range testCases {
		if got := IsAccountNumber(tc.in); got != tc.want {
			t.Errorf("IsAccountNumber(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNewRegistersAccountNumber(t *testing.T) {
	t.Parallel()

	type input struct {
		Number string `validate:"accountnumber"`
	}

	v := New()

	require.NoError(t, v.Struct(input{Number: "1001"}))

	err := v.Struct(input{Number: "x/y"})

	var ve validator.ValidationErrors
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "Number", ve[0].Field())
	require.Equal(t, "accountnumber", ve[0].Tag())
}

func TestFailedField(t *testing.T) {
	t.Parallel()

	type input struct {
		Name string `validate:"required"`
		Age  int    `validate:"gte=0"`
	}

	v := New()

	field, ok := FailedField(v.Struct(input{Name: "Ann", Age: -1}))
	require.True(t, ok)
	require.Equal(t, "Age", field)

	_, ok = FailedField(nil)
	require.False(t, ok)

	_, ok = FailedField(errors.New("boom"))
	require.False(t, ok)
}
