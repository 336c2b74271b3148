package pattern

import (
	"regexp/syntax"
	"sort"
	"strings"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/resub"
)

// maxLiteralDepth guards literal expansion against deeply nested patterns.
const maxLiteralDepth = 100

// extractLiterals expands re into the exact set of strings it matches.
//
// It succeeds only when the pattern is built from literals, small character
// classes, concatenation and alternation, and the result is a set of
// non-empty, case-sensitive literals in which no literal occurs inside
// another. Under that condition at most one literal can match at any
// position, and of two matches the one that starts first also ends first,
// so a multi-pattern matcher that reports the earliest-ending match returns
// the same leftmost match as the regex engine.
//
// Examples:
//
//	"foo|bar"     → ["foo", "bar"]
//	"ab[cd]"      → ["abc", "abd"]
//	"foo|foobar"  → not literal (prefix)
//	"abcd|bc"     → not literal (substring)
//	"(foo|bar)"   → not literal (capture)
//	"(?i)foo"     → not literal (case folding)
func extractLiterals(re *syntax.Regexp, config Config) ([][]byte, bool) {
	x := literalExpander{config: config}
	set, ok := x.expand(re, 0)
	if !ok || len(set) == 0 {
		return nil, false
	}

	for _, s := range set {
		if s == "" {
			return nil, false
		}
	}
	if nested(set) {
		return nil, false
	}

	lits := make([][]byte, len(set))
	for i, s := range set {
		lits[i] = []byte(s)
	}
	return lits, true
}

// nested reports whether any literal of set occurs inside another one.
// A repeated literal counts as nested.
func nested(set []string) bool {
	byLen := make([]string, len(set))
	copy(byLen, set)
	sort.Slice(byLen, func(i, j int) bool { return len(byLen[i]) < len(byLen[j]) })
	for i, short := range byLen {
		for _, long := range byLen[i+1:] {
			if strings.Contains(long, short) {
				return true
			}
		}
	}
	return false
}

type literalExpander struct {
	config Config
}

func (x *literalExpander) expand(re *syntax.Regexp, depth int) ([]string, bool) {
	if depth > maxLiteralDepth {
		return nil, false
	}

	switch re.Op {
	case syntax.OpLiteral:
		if re.Flags&syntax.FoldCase != 0 {
			return nil, false
		}
		return []string{string(re.Rune)}, true

	case syntax.OpEmptyMatch:
		return []string{""}, true

	case syntax.OpCharClass:
		return x.expandClass(re)

	case syntax.OpConcat:
		out := []string{""}
		for _, sub := range re.Sub {
			part, ok := x.expand(sub, depth+1)
			if !ok || len(out)*len(part) > x.config.MaxLiterals {
				return nil, false
			}
			next := make([]string, 0, len(out)*len(part))
			for _, a := range out {
				for _, b := range part {
					next = append(next, a+b)
				}
			}
			out = next
		}
		return out, true

	case syntax.OpAlternate:
		var out []string
		for _, sub := range re.Sub {
			part, ok := x.expand(sub, depth+1)
			if !ok || len(out)+len(part) > x.config.MaxLiterals {
				return nil, false
			}
			out = append(out, part...)
		}
		return dedupe(out), true

	default:
		// Captures, repetition, anchors and any-char are not literal.
		return nil, false
	}
}

// expandClass expands a class such as [a-d] into its members, if small.
// Case-folded classes arrive here already folded into explicit ranges.
func (x *literalExpander) expandClass(re *syntax.Regexp) ([]string, bool) {
	size := 0
	for i := 0; i+1 < len(re.Rune); i += 2 {
		size += int(re.Rune[i+1]-re.Rune[i]) + 1
		if size > x.config.MaxClassSize {
			return nil, false
		}
	}
	out := make([]string, 0, size)
	for i := 0; i+1 < len(re.Rune); i += 2 {
		for r := re.Rune[i]; r <= re.Rune[i+1]; r++ {
			out = append(out, string(r))
		}
	}
	return out, len(out) > 0
}

// dedupe removes repeated strings, keeping first occurrences in order.
func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// literalMatcher finds the leftmost occurrence of any literal in a set
// using an Aho-Corasick automaton. The automaton is immutable after Build
// and safe for concurrent searches.
type literalMatcher struct {
	auto     *ahocorasick.Automaton
	literals [][]byte
}

func newLiteralMatcher(literals [][]byte) (*literalMatcher, error) {
	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		builder.AddPattern(lit)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &literalMatcher{auto: auto, literals: literals}, nil
}

func (l *literalMatcher) matchAt(subject []byte, start int, m *resub.SubmatchSet) bool {
	// Every literal is non-empty, so nothing can match at the very end.
	if start >= len(subject) {
		return false
	}
	hit := l.auto.Find(subject, start)
	if hit == nil {
		return false
	}
	m.SetGroup(0, hit.Start, hit.End)
	return true
}
