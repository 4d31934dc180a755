package reports

import "errors"

var (
	// ErrInternal is returned for unexpected repository failures.
	ErrInternal = errors.New("service: internal error")
)
