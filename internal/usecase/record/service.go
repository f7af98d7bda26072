package record

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/strdex/internal/domain"
	"github.com/kailas-cloud/strdex/internal/domain/filter"
	"github.com/kailas-cloud/strdex/internal/domain/nlquery"
	domrec "github.com/kailas-cloud/strdex/internal/domain/record"
	"github.com/kailas-cloud/strdex/internal/logger"
	"github.com/kailas-cloud/strdex/internal/metrics"
)

// Listing is a filtered view of the store.
type Listing struct {
	Records []domrec.Record
	Count   int
	Filter  filter.Filter
}

// Interpreted is a Listing produced from a natural language query.
type Interpreted struct {
	Listing
	Interpretation nlquery.Interpretation
}

// Service handles string analysis, storage and filtered retrieval.
type Service struct {
	repo               Repository
	analyzer           Analyzer
	parser             QueryParser
	now                func() time.Time
	maxValueBytes      int
	rejectUnrecognized bool
}

// New creates a record service.
func New(repo Repository, analyzer Analyzer, parser QueryParser) *Service {
	return &Service{
		repo:          repo,
		analyzer:      analyzer,
		parser:        parser,
		now:           time.Now,
		maxValueBytes: domrec.DefaultMaxValueBytes,
	}
}

// WithMaxValueBytes caps accepted value size. 0 disables the cap.
func (s *Service) WithMaxValueBytes(n int) *Service {
	if n >= 0 {
		s.maxValueBytes = n
	}
	return s
}

// WithRejectUnrecognized makes natural language queries without any known phrase
// fail with domain.ErrUnrecognizedQuery instead of matching everything.
func (s *Service) WithRejectUnrecognized(reject bool) *Service {
	s.rejectUnrecognized = reject
	return s
}

// WithClock overrides the creation timestamp source.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Create analyzes value and stores it.
// Returns domain.ErrInvalidInput for rejected values and domain.ErrAlreadyExists for duplicates.
func (s *Service) Create(ctx context.Context, value string) (domrec.Record, error) {
	props := s.analyzer.Analyze(value)
	rec, err := domrec.New(value, props, s.now(), s.maxValueBytes)
	if err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		observe("create", err)
		return domrec.Record{}, err
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		observe("create", err)
		return domrec.Record{}, fmt.Errorf("insert record: %w", err)
	}

	observe("create", nil)
	metrics.StringLengthChars.Observe(float64(props.Length()))
	s.syncStored(ctx)

	logger.FromContext(ctx).Debug("string analyzed",
		zap.String("id", rec.ID()),
		zap.Int("length", props.Length()),
		zap.Bool("is_palindrome", props.IsPalindrome()),
	)
	return rec, nil
}

// Get looks up a record by its value. The lookup is case-sensitive: the ID is the hash of the raw value.
func (s *Service) Get(ctx context.Context, value string) (domrec.Record, error) {
	rec, err := s.repo.Get(ctx, s.analyzer.ID(value))
	observe("get", err)
	if err != nil {
		return domrec.Record{}, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// Delete removes a record by its value.
func (s *Service) Delete(ctx context.Context, value string) error {
	err := s.repo.Delete(ctx, s.analyzer.ID(value))
	observe("delete", err)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	s.syncStored(ctx)
	return nil
}

// Count returns the number of stored records.
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

// List returns the records matching p, in store order.
// Invalid or contradictory parameters yield domain.ErrInvalidInput.
func (s *Service) List(ctx context.Context, p filter.Params) (Listing, error) {
	f, err := filter.New(p)
	if err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		observe("list", err)
		return Listing{}, err
	}
	countPredicates("structured", f)
	return s.list(ctx, f)
}

// ListByNaturalLanguage parses query and lists the matching records.
// An empty query is domain.ErrInvalidInput. Parsed predicates that no record can
// satisfy together yield domain.ErrConflictingFilters.
func (s *Service) ListByNaturalLanguage(ctx context.Context, query string) (Interpreted, error) {
	if strings.TrimSpace(query) == "" {
		observe("list", domain.ErrInvalidInput)
		return Interpreted{}, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}

	in := s.parser.Parse(query)
	log := logger.FromContext(ctx)

	if in.Empty() {
		metrics.NaturalLanguageQueriesTotal.WithLabelValues("unrecognized").Inc()
		log.Debug("natural language query not recognized", zap.String("query", query))
		if s.rejectUnrecognized {
			return Interpreted{Interpretation: in}, fmt.Errorf("parse %q: %w", query, domain.ErrUnrecognizedQuery)
		}
	}

	f, err := filter.New(in.Params())
	if err != nil {
		metrics.NaturalLanguageQueriesTotal.WithLabelValues("conflicting").Inc()
		log.Debug("natural language query produced conflicting filters",
			zap.String("query", query), zap.Error(err))
		return Interpreted{Interpretation: in}, fmt.Errorf("%w: %w", domain.ErrConflictingFilters, err)
	}
	if !in.Empty() {
		metrics.NaturalLanguageQueriesTotal.WithLabelValues("parsed").Inc()
	}
	countPredicates("natural_language", f)

	listing, err := s.list(ctx, f)
	if err != nil {
		return Interpreted{Interpretation: in}, err
	}
	return Interpreted{Listing: listing, Interpretation: in}, nil
}

func (s *Service) list(ctx context.Context, f filter.Filter) (Listing, error) {
	recs, err := s.repo.List(ctx)
	if err != nil {
		observe("list", err)
		return Listing{}, fmt.Errorf("list records: %w", err)
	}

	matched := make([]domrec.Record, 0, len(recs))
	for _, rec := range recs {
		if f.Matches(rec) {
			matched = append(matched, rec)
		}
	}

	observe("list", nil)
	return Listing{Records: matched, Count: len(matched), Filter: f}, nil
}

func (s *Service) syncStored(ctx context.Context) {
	if n, err := s.repo.Count(ctx); err == nil {
		metrics.StringsStored.Set(float64(n))
	}
}

func observe(op string, err error) {
	metrics.StringOperationsTotal.WithLabelValues(op, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrAlreadyExists):
		return "conflict"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	default:
		return "error"
	}
}

func countPredicates(source string, f filter.Filter) {
	for _, name := range f.Names() {
		metrics.FilterPredicatesTotal.WithLabelValues(source, name).Inc()
	}
}
