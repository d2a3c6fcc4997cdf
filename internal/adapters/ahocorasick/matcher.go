// Package ahocorasick finds many phrases in a text in a single pass using an
// Aho-Corasick automaton. It wraps the petar-dambovaliev/aho-corasick library
// for O(n + m + z) matching.
//
// Matching is byte-exact; callers normalize patterns and text the same way
// (match.Normalize) before building or scanning.
package ahocorasick

import (
	"unicode"
	"unicode/utf8"

	aho "github.com/petar-dambovaliev/aho-corasick"
)

// Match is one pattern occurrence with byte offsets into the scanned text.
type Match struct {
	Pattern int // index into the patterns the Scanner was built from
	Start   int // byte offset start (inclusive)
	End     int // byte offset end (exclusive)
}

// Scanner is an immutable automaton over a fixed pattern set. Safe for
// concurrent use.
type Scanner struct {
	automaton aho.AhoCorasick
	patterns  []string
}

// NewScanner builds a scanner from patterns. Empty patterns never match.
func NewScanner(patterns []string) *Scanner {
	p := make([]string, len(patterns))
	copy(p, patterns)
	s := &Scanner{patterns: p}
	if len(p) > 0 {
		builder := aho.NewAhoCorasickBuilder(aho.Opts{
			DFA: true,
		})
		s.automaton = builder.Build(p)
	}
	return s
}

// Scan returns every occurrence of every pattern in text, overlaps included.
func (s *Scanner) Scan(text string) []Match {
	if len(s.patterns) == 0 || text == "" {
		return nil
	}
	iter := s.automaton.IterOverlappingByte([]byte(text))
	var matches []Match
	for next := iter.Next(); next != nil; next = iter.Next() {
		m := *next
		if m.End() <= m.Start() {
			continue
		}
		matches = append(matches, Match{
			Pattern: m.Pattern(),
			Start:   m.Start(),
			End:     m.End(),
		})
	}
	return matches
}

// ScanWords is Scan restricted to whole-word occurrences: the runes on either
// side of a match must not be letters or digits, so "rash" does not match
// inside "crash" or "rashes".
func (s *Scanner) ScanWords(text string) []Match {
	all := s.Scan(text)
	words := all[:0]
	for _, m := range all {
		if WordBounded(text, m.Start, m.End) {
			words = append(words, m)
		}
	}
	return words
}

// PatternCount returns the number of patterns in the automaton.
func (s *Scanner) PatternCount() int {
	return len(s.patterns)
}

// Pattern returns the pattern string at the given index.
func (s *Scanner) Pattern(idx int) string {
	if idx < 0 || idx >= len(s.patterns) {
		return ""
	}
	return s.patterns[idx]
}

// WordBounded reports whether text[start:end] is delimited by non-word runes
// or the ends of text.
func WordBounded(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
