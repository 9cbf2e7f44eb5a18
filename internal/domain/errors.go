package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

// Domain failures come in two families: malformed input rejected before any
// field is assigned, and operations that are not permitted from the current
// lifecycle state. Callers discriminate with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrIllegalState = errors.New("illegal state")

	// ErrInvalidTransition wraps ErrIllegalState so that a transition
	// failure also matches the broader state-error family.
	ErrInvalidTransition = fmt.Errorf("invalid state transition: %w", ErrIllegalState)
)

func validationf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrValidation, format, args...)
}

func illegalStatef(format string, args ...interface{}) error {
	return errors.Wrapf(ErrIllegalState, format, args...)
}

func transitionf(from, to CopyStatus) error {
	return errors.Wrapf(ErrInvalidTransition, "%s -> %s", from, to)
}
