package models

import "errors"

var (
	// ErrStorageUnavailable marks failures to reach the database. A request that
	// hits it is aborted as a whole.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrInvalidPromotion is returned by the promotion constructors.
	ErrInvalidPromotion = errors.New("invalid promotion")

	// ErrInvalidRequest wraps caller mistakes that map to a 400.
	ErrInvalidRequest = errors.New("invalid request")
)
