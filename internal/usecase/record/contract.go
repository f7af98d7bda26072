package record

import (
	"context"

	"github.com/kailas-cloud/strdex/internal/domain/analysis"
	"github.com/kailas-cloud/strdex/internal/domain/nlquery"
	domrec "github.com/kailas-cloud/strdex/internal/domain/record"
)

// Repository defines the storage contract for string records.
type Repository interface {
	Insert(ctx context.Context, rec domrec.Record) error
	Get(ctx context.Context, id string) (domrec.Record, error)
	List(ctx context.Context) ([]domrec.Record, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// Analyzer computes value properties and identities.
type Analyzer interface {
	Analyze(value string) analysis.Report
	ID(value string) string
}

// QueryParser turns natural language into filter predicates.
type QueryParser interface {
	Parse(query string) nlquery.Interpretation
}
