package usecase

import "errors"

// Domain errors. Handlers map these to HTTP statuses with errors.Is,
// so services wrap them with context instead of inventing strings.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrCapacity     = errors.New("not enough seats available")
	ErrUnavailable  = errors.New("train is not available for this date")
	ErrState        = errors.New("operation not allowed in the current reservation status")
	ErrInvalidInput = errors.New("invalid input")
)
