package strdex

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/strdex/internal/domain/filter"
	domrec "github.com/kailas-cloud/strdex/internal/domain/record"
)

// StringService analyzes, stores and queries strings.
type StringService struct {
	svc stringUseCase
	obs *observer
}

// Create analyzes value and stores it.
// Returns ErrAlreadyExists if the value is already stored and ErrInvalidInput if it is empty or too large.
func (s *StringService) Create(ctx context.Context, value string) (_ String, err error) {
	start := time.Now()
	defer func() { s.obs.observe("string.create", start, err) }()

	rec, err := s.svc.Create(ctx, value)
	if err != nil {
		return String{}, fmt.Errorf("create string: %w", err)
	}
	return fromRecord(rec), nil
}

// Get returns the stored analysis of value. Lookup is case-sensitive.
func (s *StringService) Get(ctx context.Context, value string) (_ String, err error) {
	start := time.Now()
	defer func() { s.obs.observe("string.get", start, err) }()

	rec, err := s.svc.Get(ctx, value)
	if err != nil {
		return String{}, fmt.Errorf("get string: %w", err)
	}
	return fromRecord(rec), nil
}

// Delete removes value. Returns ErrNotFound if it is not stored.
func (s *StringService) Delete(ctx context.Context, value string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("string.delete", start, err) }()

	if err = s.svc.Delete(ctx, value); err != nil {
		return fmt.Errorf("delete string: %w", err)
	}
	return nil
}

// Count returns the number of stored strings.
func (s *StringService) Count(ctx context.Context) (int, error) {
	n, err := s.svc.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count strings: %w", err)
	}
	return n, nil
}

// List returns the strings matching every set field of f.
func (s *StringService) List(ctx context.Context, f Filter) (_ ListResult, err error) {
	start := time.Now()
	defer func() { s.obs.observe("string.list", start, err) }()

	listing, err := s.svc.List(ctx, toParams(f))
	if err != nil {
		return ListResult{}, fmt.Errorf("list strings: %w", err)
	}
	return ListResult{
		Strings: fromRecords(listing.Records),
		Count:   listing.Count,
		Applied: fromFilter(listing.Filter),
	}, nil
}

// Query interprets a natural language query such as "palindromic strings longer
// than 5 characters" and lists the matching strings.
func (s *StringService) Query(ctx context.Context, query string) (_ QueryResult, err error) {
	start := time.Now()
	defer func() { s.obs.observe("string.query", start, err) }()

	res, err := s.svc.ListByNaturalLanguage(ctx, query)
	if err != nil {
		return QueryResult{}, fmt.Errorf("query strings: %w", err)
	}

	phrases := make([]string, 0, len(res.Interpretation.Recognized()))
	for _, m := range res.Interpretation.Recognized() {
		phrases = append(phrases, m.Phrase)
	}
	p := res.Interpretation.Params()
	return QueryResult{
		ListResult: ListResult{
			Strings: fromRecords(res.Records),
			Count:   res.Count,
			Applied: fromFilter(res.Filter),
		},
		Original: res.Interpretation.Original(),
		Parsed: Filter{
			IsPalindrome:      p.IsPalindrome,
			MinLength:         p.MinLength,
			MaxLength:         p.MaxLength,
			WordCount:         p.WordCount,
			ContainsCharacter: p.ContainsCharacter,
		},
		Recognized: phrases,
	}, nil
}

func fromRecord(rec domrec.Record) String {
	p := rec.Properties()
	return String{
		ID:    rec.ID(),
		Value: rec.Value(),
		Properties: Properties{
			Length:             p.Length(),
			IsPalindrome:       p.IsPalindrome(),
			UniqueCharacters:   p.UniqueCharacters(),
			WordCount:          p.WordCount(),
			SHA256Hash:         p.Hash(),
			CharacterFrequency: p.Frequency(),
		},
		CreatedAt: rec.CreatedAt(),
	}
}

func fromRecords(recs []domrec.Record) []String {
	out := make([]String, len(recs))
	for i, rec := range recs {
		out[i] = fromRecord(rec)
	}
	return out
}

func toParams(f Filter) filter.Params {
	return filter.Params{
		IsPalindrome:      f.IsPalindrome,
		MinLength:         f.MinLength,
		MaxLength:         f.MaxLength,
		WordCount:         f.WordCount,
		ContainsCharacter: f.ContainsCharacter,
	}
}

func fromFilter(f filter.Filter) Filter {
	out := Filter{
		IsPalindrome: f.IsPalindrome(),
		MinLength:    f.MinLength(),
		MaxLength:    f.MaxLength(),
		WordCount:    f.WordCount(),
	}
	if c := f.ContainsCharacter(); c != nil {
		s := string(*c)
		out.ContainsCharacter = &s
	}
	return out
}
