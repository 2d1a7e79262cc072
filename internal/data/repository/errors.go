package repository

import "errors"

var (
	// ErrInsufficientSeats means a conditional seat debit matched no
	// row: the train no longer has enough free seats.
	ErrInsufficientSeats = errors.New("insufficient seats available")

	// ErrDuplicate means a uniqueness constraint rejected the write.
	ErrDuplicate = errors.New("duplicate record")
)
