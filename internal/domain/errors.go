package domain

import "errors"

var (
	// ErrMemberNotFound signals that a member id matches no row.
	ErrMemberNotFound = errors.New("member not found")
	// ErrMinistryNotFound signals that a ministry id matches no row.
	ErrMinistryNotFound = errors.New("ministry not found")

	// ErrQueryFailed is the single condition every corpus-layer failure is
	// converted to at the service boundary. Raw driver errors never reach
	// the caller.
	ErrQueryFailed = errors.New("query failed")
)
