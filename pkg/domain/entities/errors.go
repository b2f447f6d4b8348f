package entities

import "errors"

var (
	// ErrConfiguration is returned for an invalid planning policy.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrInvalidArgument is returned when a caller passes a negative amount or
	// a production run shorter than the minimum.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrCapacityExceeded is returned when production days would pass the days in a month.
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrState is returned when an operation is not valid for the record's current state.
	ErrState = errors.New("invalid state")
)
