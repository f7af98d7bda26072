package filter

import (
	"fmt"
	"unicode/utf8"

	"github.com/kailas-cloud/strdex/internal/domain/analysis"
	"github.com/kailas-cloud/strdex/internal/domain/record"
)

// Filter is a conjunction of optional predicates over a record's properties.
// A nil field places no constraint.
type Filter struct {
	isPalindrome      *bool
	minLength         *int
	maxLength         *int
	wordCount         *int
	containsCharacter *rune
}

// Params carries raw predicate values as received from a caller.
type Params struct {
	IsPalindrome      *bool
	MinLength         *int
	MaxLength         *int
	WordCount         *int
	ContainsCharacter *string
}

// ConflictError reports bounds that exclude every record.
type ConflictError struct {
	MinLength int
	MaxLength int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("min_length %d is greater than max_length %d", e.MinLength, e.MaxLength)
}

// New validates and creates a Filter.
// Lengths and word count must be non-negative; contains_character must be exactly one character.
// Returns *ConflictError when min_length > max_length.
func New(p Params) (Filter, error) {
	if p.MinLength != nil && *p.MinLength < 0 {
		return Filter{}, fmt.Errorf("min_length must be non-negative, got %d", *p.MinLength)
	}
	if p.MaxLength != nil && *p.MaxLength < 0 {
		return Filter{}, fmt.Errorf("max_length must be non-negative, got %d", *p.MaxLength)
	}
	if p.WordCount != nil && *p.WordCount < 0 {
		return Filter{}, fmt.Errorf("word_count must be non-negative, got %d", *p.WordCount)
	}

	f := Filter{
		isPalindrome: cloneBool(p.IsPalindrome),
		minLength:    cloneInt(p.MinLength),
		maxLength:    cloneInt(p.MaxLength),
		wordCount:    cloneInt(p.WordCount),
	}

	if p.ContainsCharacter != nil {
		s := *p.ContainsCharacter
		if utf8.RuneCountInString(s) != 1 {
			return Filter{}, fmt.Errorf("contains_character must be a single character, got %q", s)
		}
		r, _ := utf8.DecodeRuneInString(s)
		f.containsCharacter = &r
	}

	if f.minLength != nil && f.maxLength != nil && *f.minLength > *f.maxLength {
		return Filter{}, &ConflictError{MinLength: *f.minLength, MaxLength: *f.maxLength}
	}
	return f, nil
}

// IsPalindrome returns the palindrome predicate.
func (f Filter) IsPalindrome() *bool { return cloneBool(f.isPalindrome) }

// MinLength returns the inclusive lower length bound.
func (f Filter) MinLength() *int { return cloneInt(f.minLength) }

// MaxLength returns the inclusive upper length bound.
func (f Filter) MaxLength() *int { return cloneInt(f.maxLength) }

// WordCount returns the exact word count predicate.
func (f Filter) WordCount() *int { return cloneInt(f.wordCount) }

// ContainsCharacter returns the required character.
func (f Filter) ContainsCharacter() *rune {
	if f.containsCharacter == nil {
		return nil
	}
	r := *f.containsCharacter
	return &r
}

// IsEmpty reports whether the filter has no predicates.
func (f Filter) IsEmpty() bool {
	return f.isPalindrome == nil && f.minLength == nil && f.maxLength == nil &&
		f.wordCount == nil && f.containsCharacter == nil
}

// Matches reports whether every present predicate holds for rec.
func (f Filter) Matches(rec record.Record) bool {
	props := rec.Properties()

	if f.isPalindrome != nil && props.IsPalindrome() != *f.isPalindrome {
		return false
	}
	if f.minLength != nil && props.Length() < *f.minLength {
		return false
	}
	if f.maxLength != nil && props.Length() > *f.maxLength {
		return false
	}
	if f.wordCount != nil && props.WordCount() != *f.wordCount {
		return false
	}
	if f.containsCharacter != nil && !analysis.ContainsFolded(rec.Value(), *f.containsCharacter) {
		return false
	}
	return true
}

// Names returns the names of the present predicates in a fixed order.
func (f Filter) Names() []string {
	var names []string
	if f.isPalindrome != nil {
		names = append(names, "is_palindrome")
	}
	if f.minLength != nil {
		names = append(names, "min_length")
	}
	if f.maxLength != nil {
		names = append(names, "max_length")
	}
	if f.wordCount != nil {
		names = append(names, "word_count")
	}
	if f.containsCharacter != nil {
		names = append(names, "contains_character")
	}
	return names
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

func cloneInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
