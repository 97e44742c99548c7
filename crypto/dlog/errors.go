package dlog

import (
	"errors"
	"fmt"

	"github.com/thechriswalker/go-dlog/crypto/modular"
)

// ErrNotFound means the search space was exhausted without a match. This is
// distinct from a logarithm of 0, which is returned as a value.
var ErrNotFound = errors.New("No discrete logarithm within search bound")

// NoInverseError is returned when a value that must be inverted shares a
// factor with the modulus.
type NoInverseError = modular.NoInverseError

// InvalidPreconditionError means the inputs do not describe a problem these
// algorithms can solve, e.g. the base does not have the claimed order.
type InvalidPreconditionError struct {
	Reason string
}

func (e *InvalidPreconditionError) Error() string {
	return "Invalid discrete log problem: " + e.Reason
}

func invalidf(format string, args ...interface{}) error {
	return &InvalidPreconditionError{Reason: fmt.Sprintf(format, args...)}
}

// LevelError wraps a failure in one of the Pohlig-Hellman subproblems
type LevelError struct {
	Level int
	Err   error
}

func (e *LevelError) Error() string {
	return fmt.Sprintf("Pohlig-Hellman level %d: %s", e.Level, e.Err)
}

func (e *LevelError) Unwrap() error {
	return e.Err
}
