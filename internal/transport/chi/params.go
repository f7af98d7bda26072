package chi

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/strdex/internal/domain/filter"
)

// listStringsParams are the query parameters of GET /strings.
type listStringsParams struct {
	IsPalindrome      *bool   `form:"is_palindrome"`
	MinLength         *int    `form:"min_length"`
	MaxLength         *int    `form:"max_length"`
	WordCount         *int    `form:"word_count"`
	ContainsCharacter *string `form:"contains_character"`
}

// bindListStringsParams binds and type-checks the optional filter parameters.
func bindListStringsParams(r *http.Request) (filter.Params, error) {
	var p listStringsParams
	q := r.URL.Query()

	bindings := []struct {
		name string
		dest any
	}{
		{"is_palindrome", &p.IsPalindrome},
		{"min_length", &p.MinLength},
		{"max_length", &p.MaxLength},
		{"word_count", &p.WordCount},
		{"contains_character", &p.ContainsCharacter},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			return filter.Params{}, fmt.Errorf("invalid format for parameter %s: %w", b.name, err)
		}
	}

	return filter.Params{
		IsPalindrome:      p.IsPalindrome,
		MinLength:         p.MinLength,
		MaxLength:         p.MaxLength,
		WordCount:         p.WordCount,
		ContainsCharacter: p.ContainsCharacter,
	}, nil
}

// bindNaturalLanguageQuery binds the required "query" parameter.
func bindNaturalLanguageQuery(r *http.Request) (string, error) {
	var query string
	if err := runtime.BindQueryParameter("form", true, true, "query", r.URL.Query(), &query); err != nil {
		return "", fmt.Errorf("invalid format for parameter query: %w", err)
	}
	return query, nil
}

// pathValue returns the decoded {value} path segment. chi matches on RawPath when
// the request carried escapes the default encoding would not produce (e.g. %2F),
// and only then is the segment still escaped.
func pathValue(r *http.Request) (string, error) {
	v := chi.URLParam(r, "value")
	if r.URL.RawPath == "" {
		return v, nil
	}
	decoded, err := url.PathUnescape(v)
	if err != nil {
		return "", fmt.Errorf("invalid path value: %w", err)
	}
	return decoded, nil
}
