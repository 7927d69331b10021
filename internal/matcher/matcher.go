// Package matcher decides whether a keyword occurs in a message. The router
// only depends on the KeywordMatcher interface so strategies can be swapped
// without touching the cascade.
package matcher

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sahilm/fuzzy"
)

// KeywordMatcher reports whether keyword occurs in text. Both arguments
// are expected to be lowercase already.
type KeywordMatcher interface {
	Contains(text, keyword string) bool
}

// Strategy names accepted by New.
const (
	StrategySubstring   = "substring"
	StrategySimilarity  = "similarity"
	StrategySubsequence = "subsequence"
)

// MinFuzzyLen is the shortest keyword, in runes, that the similarity and
// subsequence strategies compare approximately. Shorter keywords only
// match as exact substrings.
const MinFuzzyLen = 4

// DefaultThreshold is the similarity ratio a word must reach to count as
// a match.
const DefaultThreshold = 0.8

// New builds a matcher by strategy name.
func New(strategy string, threshold float64) (KeywordMatcher, error) {
	switch strategy {
	case "", StrategySubstring:
		return Substring{}, nil
	case StrategySimilarity:
		return Similarity{Threshold: threshold}, nil
	case StrategySubsequence:
		return Subsequence{}, nil
	default:
		return nil, fmt.Errorf("unknown match strategy %q", strategy)
	}
}

// Any reports whether any keyword matches.
func Any(m KeywordMatcher, text string, keywords []string) bool {
	_, ok := First(m, text, keywords)
	return ok
}

// First returns the first keyword, in slice order, that matches.
func First(m KeywordMatcher, text string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if m.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}

// All returns every matching keyword once, in slice order.
func All(m KeywordMatcher, text string, keywords []string) []string {
	var out []string
	seen := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		if !seen[kw] && m.Contains(text, kw) {
			seen[kw] = true
			out = append(out, kw)
		}
	}
	return out
}

// Substring is plain substring containment. It matches inside words, so
// "mad" is found in "made".
type Substring struct{}

// Contains implements KeywordMatcher.
func (Substring) Contains(text, keyword string) bool {
	return keyword != "" && strings.Contains(text, keyword)
}

// Similarity accepts exact substrings, and otherwise compares the keyword
// against every run of words of the same length using the
// Ratcliff/Obershelp ratio.
type Similarity struct {
	Threshold float64
}

// Contains implements KeywordMatcher.
func (s Similarity) Contains(text, keyword string) bool {
	if (Substring{}).Contains(text, keyword) {
		return true
	}
	if utf8.RuneCountInString(keyword) < MinFuzzyLen {
		return false
	}
	threshold := s.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	kwWords := strings.Fields(keyword)
	if len(kwWords) == 0 {
		return false
	}
	for _, window := range windows(Words(text), len(kwWords)) {
		if Ratio(keyword, window) >= threshold {
			return true
		}
	}
	return false
}

// Ratio is the similarity of a and b in [0, 1], computed over runes.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// Subsequence tolerates stray characters inside a word: the keyword's
// letters must appear in order within a run of words, and the run may be
// at most MaxExtra runes longer than the keyword.
type Subsequence struct {
	MaxExtra int
}

// Contains implements KeywordMatcher.
func (s Subsequence) Contains(text, keyword string) bool {
	if (Substring{}).Contains(text, keyword) {
		return true
	}
	if utf8.RuneCountInString(keyword) < MinFuzzyLen {
		return false
	}
	maxExtra := s.MaxExtra
	if maxExtra <= 0 {
		maxExtra = 2
	}

	n := len(strings.Fields(keyword))
	if n == 0 {
		return false
	}
	candidates := windows(Words(text), n)
	kwLen := len([]rune(keyword))
	for _, m := range fuzzy.Find(keyword, candidates) {
		if len([]rune(m.Str))-kwLen <= maxExtra {
			return true
		}
	}
	return false
}

// Words splits text on anything that is not a letter, digit, apostrophe
// or hyphen.
func Words(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '-'
	})
}

// windows returns every run of n consecutive words joined by a space.
func windows(words []string, n int) []string {
	if n <= 0 || len(words) < n {
		return nil
	}
	out := make([]string, 0, len(words)-n+1)
	for i := 0; i+n <= len(words); i++ {
		out = append(out, strings.Join(words[i:i+n], " "))
	}
	return out
}
