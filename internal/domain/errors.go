package domain

import "errors"

var (
	// ErrNotFound signals a missing string record.
	ErrNotFound = errors.New("string does not exist")
	// ErrAlreadyExists signals that the value has already been analyzed and stored.
	ErrAlreadyExists = errors.New("string already exists")
	// ErrInvalidInput signals a malformed or policy-rejected value or parameter.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflictingFilters signals filters that no record could ever satisfy together.
	ErrConflictingFilters = errors.New("conflicting filters")
	// ErrUnrecognizedQuery signals a natural language query with no known phrase.
	ErrUnrecognizedQuery = errors.New("unable to parse natural language query")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
)
