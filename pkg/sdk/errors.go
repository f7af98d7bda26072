package strdex

import "github.com/kailas-cloud/strdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound           = domain.ErrNotFound
	ErrAlreadyExists      = domain.ErrAlreadyExists
	ErrInvalidInput       = domain.ErrInvalidInput
	ErrConflictingFilters = domain.ErrConflictingFilters
	ErrUnrecognizedQuery  = domain.ErrUnrecognizedQuery
)
