package errs

import (
	"errors"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("already exists")
	ErrNotEligible = errors.New("member is not eligible to borrow")
)
