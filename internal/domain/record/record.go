package record

import (
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/strdex/internal/domain/analysis"
)

// DefaultMaxValueBytes is the default upper bound on a stored value.
const DefaultMaxValueBytes = 65536 // 64KB

// Record is a stored string with its computed properties (immutable value object).
type Record struct {
	id         string
	value      string
	properties analysis.Report
	createdAt  time.Time
}

// New validates the value and builds a record from its report.
// Value: non-empty, at most maxBytes bytes (0 disables the limit).
func New(value string, props analysis.Report, createdAt time.Time, maxBytes int) (Record, error) {
	if value == "" {
		return Record{}, errors.New("value is required")
	}
	if maxBytes > 0 && len(value) > maxBytes {
		return Record{}, fmt.Errorf("value too large (max %d bytes)", maxBytes)
	}
	return Record{
		id:         props.Hash(),
		value:      value,
		properties: props,
		createdAt:  createdAt.UTC(),
	}, nil
}

// Reconstruct creates a Record without validation (tests, hydration).
func Reconstruct(value string, props analysis.Report, createdAt time.Time) Record {
	return Record{id: props.Hash(), value: value, properties: props, createdAt: createdAt.UTC()}
}

// ID returns the content hash.
func (r Record) ID() string { return r.id }

// Value returns the original text, verbatim.
func (r Record) Value() string { return r.value }

// Properties returns the computed property report.
func (r Record) Properties() analysis.Report { return r.properties }

// CreatedAt returns the insertion time in UTC.
func (r Record) CreatedAt() time.Time { return r.createdAt }
