package strdex

import "time"

// Properties are the values computed for a string on Create.
type Properties struct {
	Length             int // Unicode characters, not bytes
	IsPalindrome       bool
	UniqueCharacters   int
	WordCount          int
	SHA256Hash         string
	CharacterFrequency map[rune]int // keys are lower-cased
}

// String is a stored, analyzed value.
type String struct {
	ID         string
	Value      string
	Properties Properties
	CreatedAt  time.Time
}

// Filter selects strings by their properties. Nil fields are unconstrained.
type Filter struct {
	IsPalindrome      *bool
	MinLength         *int
	MaxLength         *int
	WordCount         *int
	ContainsCharacter *string // exactly one character, case-insensitive
}

// ListResult is the outcome of a filtered listing, in insertion order.
type ListResult struct {
	Strings []String
	Count   int
	Applied Filter
}

// QueryResult is a ListResult produced from a natural language query.
type QueryResult struct {
	ListResult
	Original   string
	Parsed     Filter
	Recognized []string // phrases the parser understood
}
