// Package apperr defines the error kinds shared by repositories, services and
// handlers. Callers classify with errors.Is and must not parse messages.
package apperr

import "errors"

var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrAlreadyVoted = errors.New("already voted in this poll")
	ErrPollExpired  = errors.New("poll has expired")
	ErrUnauthorized = errors.New("unauthorized")
	ErrDependency   = errors.New("dependency unavailable")
	ErrInternal     = errors.New("internal error")
)
