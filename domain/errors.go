package domain

import "errors"

var (
	// ErrRiderNotFound: the requested rider does not exist in the
	// preference store. For the selector this is a normal outcome, not
	// a failure.
	ErrRiderNotFound = errors.New("rider not found")

	ErrMotoNotFound = errors.New("moto not found")

	// ErrInvalidProfile: the submitted rider profile failed validation.
	ErrInvalidProfile = errors.New("invalid rider profile")

	// ErrNoAssignment: the rider exists but no ideal has been computed yet.
	ErrNoAssignment = errors.New("no ideal assignment")

	// ErrDataUnavailable: the catalog store could not be read. Distinct
	// from an empty ranking, which is valid.
	ErrDataUnavailable = errors.New("catalog data unavailable")

	// ErrPersistenceError: the ideal assignment write failed. The computed
	// ranking may still be usable, but callers must not assume it was saved.
	ErrPersistenceError = errors.New("failed to persist ideal assignment")
)
