package chi

import (
	"time"

	"github.com/kailas-cloud/strdex/internal/domain/filter"
	"github.com/kailas-cloud/strdex/internal/domain/nlquery"
	domrec "github.com/kailas-cloud/strdex/internal/domain/record"
)

// ErrorCode is the machine-readable error code in ErrorResponse.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest          ErrorCode = "bad_request"
	ErrorCodeValidationFailed    ErrorCode = "validation_failed"
	ErrorCodeUnprocessable       ErrorCode = "unprocessable_entity"
	ErrorCodeStringNotFound      ErrorCode = "string_not_found"
	ErrorCodeStringAlreadyExists ErrorCode = "string_already_exists"
	ErrorCodeConflictingFilters  ErrorCode = "conflicting_filters"
	ErrorCodeUnrecognizedQuery   ErrorCode = "unrecognized_query"
	ErrorCodeUnauthorized        ErrorCode = "unauthorized"
	ErrorCodeRateLimited         ErrorCode = "rate_limited"
	ErrorCodeInternalError       ErrorCode = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// PropertiesResponse is the JSON form of an analysis report.
type PropertiesResponse struct {
	Length                int            `json:"length"`
	IsPalindrome          bool           `json:"is_palindrome"`
	UniqueCharacters      int            `json:"unique_characters"`
	WordCount             int            `json:"word_count"`
	SHA256Hash            string         `json:"sha256_hash"`
	CharacterFrequencyMap map[string]int `json:"character_frequency_map"`
}

// StringResponse is the JSON form of a stored record.
type StringResponse struct {
	ID         string             `json:"id"`
	Value      string             `json:"value"`
	Properties PropertiesResponse `json:"properties"`
	CreatedAt  time.Time          `json:"created_at"`
}

// Filters echoes the predicates that were applied. Absent predicates are omitted.
type Filters struct {
	IsPalindrome      *bool   `json:"is_palindrome,omitempty"`
	MinLength         *int    `json:"min_length,omitempty"`
	MaxLength         *int    `json:"max_length,omitempty"`
	WordCount         *int    `json:"word_count,omitempty"`
	ContainsCharacter *string `json:"contains_character,omitempty"`
}

// StringListResponse is the body of GET /strings.
type StringListResponse struct {
	Data           []StringResponse `json:"data"`
	Count          int              `json:"count"`
	FiltersApplied Filters          `json:"filters_applied"`
}

// InterpretedQuery echoes how a natural language query was understood.
type InterpretedQuery struct {
	Original      string   `json:"original"`
	ParsedFilters Filters  `json:"parsed_filters"`
	Recognized    []string `json:"recognized_phrases"`
}

// NaturalLanguageResponse is the body of GET /strings/filter-by-natural-language.
type NaturalLanguageResponse struct {
	Data             []StringResponse `json:"data"`
	Count            int              `json:"count"`
	InterpretedQuery InterpretedQuery `json:"interpreted_query"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Records int               `json:"records"`
}

func recordToResponse(rec domrec.Record) StringResponse {
	p := rec.Properties()
	freq := make(map[string]int, p.UniqueCharacters())
	for r, n := range p.Frequency() {
		freq[string(r)] = n
	}
	return StringResponse{
		ID:    rec.ID(),
		Value: rec.Value(),
		Properties: PropertiesResponse{
			Length:                p.Length(),
			IsPalindrome:          p.IsPalindrome(),
			UniqueCharacters:      p.UniqueCharacters(),
			WordCount:             p.WordCount(),
			SHA256Hash:            p.Hash(),
			CharacterFrequencyMap: freq,
		},
		CreatedAt: rec.CreatedAt(),
	}
}

func recordsToResponse(recs []domrec.Record) []StringResponse {
	out := make([]StringResponse, len(recs))
	for i, rec := range recs {
		out[i] = recordToResponse(rec)
	}
	return out
}

func filterToResponse(f filter.Filter) Filters {
	out := Filters{
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

func paramsToResponse(p filter.Params) Filters {
	return Filters{
		IsPalindrome:      p.IsPalindrome,
		MinLength:         p.MinLength,
		MaxLength:         p.MaxLength,
		WordCount:         p.WordCount,
		ContainsCharacter: p.ContainsCharacter,
	}
}

func interpretationToResponse(in nlquery.Interpretation) InterpretedQuery {
	phrases := make([]string, 0, len(in.Recognized()))
	for _, m := range in.Recognized() {
		phrases = append(phrases, m.Phrase)
	}
	return InterpretedQuery{
		Original:      in.Original(),
		ParsedFilters: paramsToResponse(in.Params()),
		Recognized:    phrases,
	}
}
