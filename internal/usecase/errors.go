package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnresolvedReference   = errors.New("unresolved reference")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
