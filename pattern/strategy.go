package pattern

import "regexp/syntax"

// Strategy names the engine a compiled pattern runs on.
//
// Strategy selection is automatic unless Config.Strategy forces one:
//   - UseLiteral: capture-free alternations of plain literals
//   - UseStdlib: every other pattern RE2 syntax accepts
//   - UseBacktrack: patterns RE2 syntax rejects (look-around, \1 ...)
//
// UseRE2 is never chosen automatically.
type Strategy int

const (
	// UseAuto picks a strategy from the pattern. Only meaningful in Config.
	UseAuto Strategy = iota

	// UseLiteral runs an Aho-Corasick automaton over the literal set.
	// Selected for:
	//   - Alternations such as `foo|bar|baz`, including small classes
	//     (`ab[cd]`) that expand to at most MaxLiterals literals
	//   - No capture groups, no case folding, no empty alternative
	//   - No literal a prefix of another, so the leftmost match is unique
	UseLiteral

	// UseStdlib runs Go's regexp package. Linear time, RE2 syntax.
	UseStdlib

	// UseBacktrack runs a backtracking engine in RE2-compatible mode.
	// Selected for patterns with look-around or back-references when
	// EnableBacktrack is set. Worst case is exponential; see
	// Config.MatchTimeout.
	UseBacktrack

	// UseRE2 runs the RE2 C++ library compiled to WebAssembly. Same syntax
	// and results as UseStdlib; useful to check a rewrite against RE2
	// itself. Only used when forced.
	UseRE2
)

// String returns a human-readable name for the strategy.
func (s Strategy) String() string {
	switch s {
	case UseAuto:
		return "auto"
	case UseLiteral:
		return "literal"
	case UseStdlib:
		return "stdlib"
	case UseBacktrack:
		return "backtrack"
	case UseRE2:
		return "re2"
	default:
		return "unknown"
	}
}

// ParseStrategy returns the strategy with the given String name.
func ParseStrategy(name string) (Strategy, bool) {
	for s := UseAuto; s <= UseRE2; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return UseAuto, false
}

// syntaxFlags returns the regexp/syntax parse flags for config.
func syntaxFlags(config Config) syntax.Flags {
	flags := syntax.Perl
	if config.CaseInsensitive {
		flags |= syntax.FoldCase
	}
	if config.Multiline {
		flags &^= syntax.OneLine
	}
	if config.DotNL {
		flags |= syntax.DotNL
	}
	return flags
}

// selectStrategy picks the engine for a pattern that parsed as RE2 syntax.
// It returns the literal set when UseLiteral is chosen.
func selectStrategy(re *syntax.Regexp, config Config) (Strategy, [][]byte) {
	if config.Strategy != UseAuto {
		if config.Strategy == UseLiteral {
			lits, ok := extractLiterals(re, config)
			if !ok {
				return UseLiteral, nil
			}
			return UseLiteral, lits
		}
		return config.Strategy, nil
	}

	if config.EnableLiteral {
		if lits, ok := extractLiterals(re, config); ok && len(lits) >= config.MinLiterals {
			return UseLiteral, lits
		}
	}
	return UseStdlib, nil
}

// needsContext reports whether a match at some position depends on the
// text before it: ^ and \A depend on being at the start, (?m)^ and \b on
// the previous character. Patterns without such assertions can be searched
// on a suffix of the subject without changing the result.
func needsContext(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpBeginLine, syntax.OpBeginText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return true
	}
	for _, sub := range re.Sub {
		if needsContext(sub) {
			return true
		}
	}
	return false
}
