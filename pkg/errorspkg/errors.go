// Package errorspkg provides common app errors.
package errorspkg

import (
	"errors"
	"unicode"
	"unicode/utf8"
)

// ErrInternal indicates a storage or other unexpected failure.
// The cause is logged where it happens and never shown to the user.
var ErrInternal = errors.New("internal error, please try again later")

// Message renders err as a sentence for action logs and the terminal.
func Message(err error) string {
	msg := err.Error()

	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}

	return string(unicode.ToUpper(r)) + msg[size:]
}
