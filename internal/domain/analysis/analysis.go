// Package analysis computes the descriptive properties of a string value.
package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"maps"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Hasher derives the content hash of a value. The result doubles as the record ID,
// so implementations must be deterministic across runs and machines.
type Hasher interface {
	Hash(value string) string
}

// HasherFunc adapts a plain function to Hasher.
type HasherFunc func(value string) string

// Hash calls f(value).
func (f HasherFunc) Hash(value string) string { return f(value) }

// SHA256 hashes the raw UTF-8 bytes of the value and returns lowercase hex.
var SHA256 Hasher = HasherFunc(func(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
})

// Report is the immutable property set computed for a value.
type Report struct {
	length           int
	isPalindrome     bool
	uniqueCharacters int
	wordCount        int
	hash             string
	frequency        map[rune]int
}

// Reconstruct creates a Report without computation (test fixtures, hydration).
func Reconstruct(
	length int, isPalindrome bool, uniqueCharacters, wordCount int,
	hash string, frequency map[rune]int,
) Report {
	return Report{
		length:           length,
		isPalindrome:     isPalindrome,
		uniqueCharacters: uniqueCharacters,
		wordCount:        wordCount,
		hash:             hash,
		frequency:        maps.Clone(frequency),
	}
}

// Length returns the number of Unicode scalar values.
func (r Report) Length() int { return r.length }

// IsPalindrome reports whether the folded rune sequence reads the same both ways.
func (r Report) IsPalindrome() bool { return r.isPalindrome }

// UniqueCharacters returns the number of distinct folded characters.
func (r Report) UniqueCharacters() int { return r.uniqueCharacters }

// WordCount returns the number of whitespace-delimited words.
func (r Report) WordCount() int { return r.wordCount }

// Hash returns the content hash.
func (r Report) Hash() string { return r.hash }

// Frequency returns a copy of the folded character frequency map.
func (r Report) Frequency() map[rune]int {
	if r.frequency == nil {
		return map[rune]int{}
	}
	return maps.Clone(r.frequency)
}

// Analyzer computes Reports.
type Analyzer struct {
	hasher Hasher
}

// New creates an Analyzer. A nil hasher falls back to SHA256.
func New(hasher Hasher) *Analyzer {
	if hasher == nil {
		hasher = SHA256
	}
	return &Analyzer{hasher: hasher}
}

// ID returns the record identifier for value without computing the full report.
func (a *Analyzer) ID(value string) string {
	return a.hasher.Hash(value)
}

// Analyze computes the property report. Total: every input, including "", yields a report.
func (a *Analyzer) Analyze(value string) Report {
	folded := make([]rune, 0, utf8.RuneCountInString(value))
	for _, r := range value {
		folded = append(folded, Fold(r))
	}

	frequency := make(map[rune]int, len(folded))
	for _, r := range folded {
		frequency[r]++
	}

	return Report{
		length:           len(folded),
		isPalindrome:     isPalindrome(folded),
		uniqueCharacters: len(frequency),
		wordCount:        len(strings.Fields(value)),
		hash:             a.hasher.Hash(value),
		frequency:        frequency,
	}
}

// Fold maps a rune to its case-insensitive form. It is one-to-one on rune count,
// which keeps frequency totals equal to the length.
func Fold(r rune) rune {
	return unicode.ToLower(r)
}

// ContainsFolded reports whether value contains ch under Fold.
func ContainsFolded(value string, ch rune) bool {
	target := Fold(ch)
	for _, r := range value {
		if Fold(r) == target {
			return true
		}
	}
	return false
}

func isPalindrome(runes []rune) bool {
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		if runes[i] != runes[j] {
			return false
		}
	}
	return true
}
