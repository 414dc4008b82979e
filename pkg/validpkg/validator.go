// Package validpkg provides the shared struct validator and custom rules.
package validpkg

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// New returns a validator with all custom rules registered.
func New() *validator.Validate {
	v := validator.New()

	// Registration only fails on an empty tag or a nil func.
	_ = v.RegisterValidation("accountnumber", ValidAccountNumber)

	return v
}

// ValidAccountNumber validates whether the value can be used as an account storage key.
var ValidAccountNumber validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return IsAccountNumber(s)
	}
	return false
}

// IsAccountNumber returns true if s is non-empty and free of path separators,
// line breaks and surrounding whitespace.
func IsAccountNumber(s string) bool {
	if s == "" || s == "." || s == ".." || strings.TrimSpace(s) != s {
		return false
	}

	return !strings.ContainsAny(s, "/\\\r\n\x00")
}

// FailedField returns the struct field name of the first failed rule in err.
func FailedField(err error) (string, bool) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return "", false
	}

	return ve[0].Field(), true
}
