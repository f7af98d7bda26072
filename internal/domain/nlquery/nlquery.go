// Package nlquery translates a small fixed vocabulary of English phrases into
// structured string filters.
//
// The parser is lexical: the query is lower-cased and split into tokens, then an
// ordered rule table is tried at each token position. The first rule that matches
// consumes its tokens and sets a predicate; when none match, the token is skipped.
// Parsing never fails. A query made only of unknown words yields empty Params.
//
// Vocabulary and conventions:
//
//	palindrome | palindromes | palindromic       is_palindrome = true
//	non|not palindrome...                        is_palindrome = false
//	single|one|<n> word(s)                       word_count = n
//	longer|more|greater than <n> [characters]    min_length = n+1
//	shorter|fewer|less than <n> [characters]     max_length = n-1
//	at least <n> [characters]                    min_length = n
//	at most <n> [characters]                     max_length = n
//	containing|contains|with the letter <x>      contains_character = x
//	containing <x>                               contains_character = x (x a single letter)
//	first|second|...|fifth|last vowel            contains_character = a|e|i|o|u
//
// Repeated length bounds tighten (the larger minimum and smaller maximum win).
// Comparatives followed by "word"/"words" are recognised but produce no predicate.
package nlquery

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kailas-cloud/strdex/internal/domain/filter"
)

// Interpretation is the parse result: the original text, the derived predicates
// and the phrases that produced them.
type Interpretation struct {
	original   string
	params     filter.Params
	recognized []Match
}

// Match is one recognised phrase.
type Match struct {
	Rule   string
	Phrase string
}

// Original returns the query text as received.
func (i Interpretation) Original() string { return i.original }

// Params returns the derived predicates.
func (i Interpretation) Params() filter.Params { return i.params }

// Recognized returns the matched phrases in query order.
func (i Interpretation) Recognized() []Match {
	out := make([]Match, len(i.recognized))
	copy(out, i.recognized)
	return out
}

// Empty reports whether no phrase in the query was recognised.
func (i Interpretation) Empty() bool { return len(i.recognized) == 0 }

// Rule inspects tokens at position i. It returns the number of tokens consumed,
// or 0 to decline. A rule may consume tokens without setting a predicate.
type Rule struct {
	Name  string
	Apply func(tokens []string, i int, p *filter.Params) int
}

// Parser applies an ordered rule table.
type Parser struct {
	rules []Rule
}

// NewParser creates a Parser over rules. Without rules, DefaultRules is used.
func NewParser(rules ...Rule) *Parser {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Parser{rules: rules}
}

// Parse interprets query with the default rule table.
func Parse(query string) Interpretation {
	return defaultParser.Parse(query)
}

var defaultParser = NewParser()

// Parse interprets query. It never fails.
func (p *Parser) Parse(query string) Interpretation {
	tokens := Tokenize(query)
	in := Interpretation{original: query}

	for i := 0; i < len(tokens); {
		consumed := 0
		for _, r := range p.rules {
			if n := r.Apply(tokens, i, &in.params); n > 0 {
				in.recognized = append(in.recognized, Match{
					Rule:   r.Name,
					Phrase: strings.Join(tokens[i:i+n], " "),
				})
				consumed = n
				break
			}
		}
		if consumed == 0 {
			consumed = 1
		}
		i += consumed
	}
	return in
}

// Tokenize lower-cases query and splits it on whitespace and hyphens.
// Punctuation is trimmed from token edges; a lone punctuation character is kept.
func Tokenize(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		t := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if t == "" && utf8.RuneCountInString(f) == 1 {
			t = f
		}
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// DefaultRules returns the built-in rule table in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "not_palindrome", Apply: notPalindrome},
		{Name: "palindrome", Apply: palindrome},
		{Name: "word_count", Apply: wordCount},
		{Name: "comparative_length", Apply: comparativeLength},
		{Name: "bounded_length", Apply: boundedLength},
		{Name: "contains_character", Apply: containsCharacter},
		{Name: "named_vowel", Apply: namedVowel},
	}
}

var (
	palindromeWords = set("palindrome", "palindromes", "palindromic")
	negations       = set("non", "not")
	wordUnits       = set("word", "words")
	charUnits       = set("character", "characters", "char", "chars", "letter", "letters")
	greaterWords    = set("longer", "more", "greater")
	lesserWords     = set("shorter", "fewer", "less")
	containsVerbs   = set("containing", "contains", "contain", "with", "having")
	characterNouns  = set("letter", "character", "char")
	vowelNouns      = set("vowel")

	numberWords = map[string]int{
		"zero": 0, "one": 1, "single": 1, "two": 2, "three": 3, "four": 4, "five": 5,
		"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	}

	vowelOrdinals = map[string]string{
		"first": "a", "second": "e", "third": "i", "fourth": "o", "fifth": "u", "last": "u",
	}
)

func notPalindrome(tokens []string, i int, p *filter.Params) int {
	if at(tokens, i, negations) && at(tokens, i+1, palindromeWords) {
		v := false
		p.IsPalindrome = &v
		return 2
	}
	return 0
}

func palindrome(tokens []string, i int, p *filter.Params) int {
	if at(tokens, i, palindromeWords) {
		v := true
		p.IsPalindrome = &v
		return 1
	}
	return 0
}

// wordCount: "single word", "one word", "3 words".
func wordCount(tokens []string, i int, p *filter.Params) int {
	n, ok := number(tokens, i)
	if !ok || !at(tokens, i+1, wordUnits) {
		return 0
	}
	p.WordCount = &n
	return 2
}

// comparativeLength: "longer than 10 characters", "shorter than 5".
func comparativeLength(tokens []string, i int, p *filter.Params) int {
	greater := at(tokens, i, greaterWords)
	lesser := at(tokens, i, lesserWords)
	if (!greater && !lesser) || i+1 >= len(tokens) || tokens[i+1] != "than" {
		return 0
	}
	n, ok := number(tokens, i+2)
	if !ok {
		return 0
	}

	consumed := 3
	switch {
	case at(tokens, i+3, wordUnits):
		return consumed + 1
	case at(tokens, i+3, charUnits):
		consumed++
	}

	if greater {
		raiseMin(p, n+1)
	} else {
		lowerMax(p, n-1)
	}
	return consumed
}

// boundedLength: "at least 5 characters", "at most 20".
func boundedLength(tokens []string, i int, p *filter.Params) int {
	if i+1 >= len(tokens) || tokens[i] != "at" {
		return 0
	}
	bound := tokens[i+1]
	if bound != "least" && bound != "most" {
		return 0
	}
	n, ok := number(tokens, i+2)
	if !ok {
		return 0
	}

	consumed := 3
	switch {
	case at(tokens, i+3, wordUnits):
		return consumed + 1
	case at(tokens, i+3, charUnits):
		consumed++
	}

	if bound == "least" {
		raiseMin(p, n)
	} else {
		lowerMax(p, n)
	}
	return consumed
}

// containsCharacter: "containing the letter z", "contains the character q", "containing z".
func containsCharacter(tokens []string, i int, p *filter.Params) int {
	if !at(tokens, i, containsVerbs) {
		return 0
	}

	j := i + 1
	if j < len(tokens) && tokens[j] == "the" {
		j++
	}
	if at(tokens, j, characterNouns) {
		if j+1 < len(tokens) && utf8.RuneCountInString(tokens[j+1]) == 1 {
			c := tokens[j+1]
			p.ContainsCharacter = &c
			return j + 2 - i
		}
		return 0
	}

	// Bare form only for a letter directly after the verb, so "with 3 words" is left alone.
	// "a" followed by more words reads as an article.
	if j == i+1 && j < len(tokens) && tokens[i] != "with" && tokens[i] != "having" {
		if tokens[j] == "a" && j+1 < len(tokens) {
			return 0
		}
		r, size := utf8.DecodeRuneInString(tokens[j])
		if size == len(tokens[j]) && unicode.IsLetter(r) {
			c := tokens[j]
			p.ContainsCharacter = &c
			return 2
		}
	}
	return 0
}

// namedVowel: "first vowel" resolves to "a"; ordinals continue through a, e, i, o, u.
func namedVowel(tokens []string, i int, p *filter.Params) int {
	if i >= len(tokens) || !at(tokens, i+1, vowelNouns) {
		return 0
	}
	v, ok := vowelOrdinals[tokens[i]]
	if !ok {
		return 0
	}
	p.ContainsCharacter = &v
	return 2
}

func raiseMin(p *filter.Params, n int) {
	if p.MinLength == nil || n > *p.MinLength {
		p.MinLength = &n
	}
}

func lowerMax(p *filter.Params, n int) {
	if p.MaxLength == nil || n < *p.MaxLength {
		p.MaxLength = &n
	}
}

func number(tokens []string, i int) (int, bool) {
	if i < 0 || i >= len(tokens) {
		return 0, false
	}
	if n, ok := numberWords[tokens[i]]; ok {
		return n, true
	}
	n, err := strconv.Atoi(tokens[i])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func at(tokens []string, i int, words map[string]struct{}) bool {
	if i < 0 || i >= len(tokens) {
		return false
	}
	_, ok := words[tokens[i]]
	return ok
}

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
