package tminuslib

import "errors"

var (
	ErrInvalidTarget = errors.New("target is neither a millisecond timestamp nor a recognized date/time")

	ErrCountdownNotFound = errors.New("countdown you are looking for is not found")
	ErrCountdownExists   = errors.New("a countdown with this name already exists")
	ErrNameEmpty         = errors.New("countdown name cannot be empty")
)
