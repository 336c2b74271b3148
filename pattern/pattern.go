// Package pattern compiles regular expressions into resub.Pattern values.
//
// A compiled Regexp runs on one of three engines, chosen from the pattern:
//   - Aho-Corasick for alternations of plain literals (`foo|bar|baz`)
//   - Go's regexp package for everything else in RE2 syntax
//   - a backtracking engine for look-around and back-references
//
// The RE2 library itself (compiled to WebAssembly) can be selected with
// Config.Strategy = UseRE2.
//
// Matching semantics are leftmost-first (Perl) on every engine, and look-
// behind assertions such as \b and ^ see the real text before the search
// offset, so GlobalReplace gives the same result whichever engine runs.
//
// Example:
//
//	re := pattern.MustCompile(`(\w+)@(\w+)\.com`)
//	fmt.Println(re.Strategy()) // "stdlib"
//	out, _, _ := resub.ReplaceString("kim@example.com", re, `\2:\1`)
//	fmt.Println(out) // "example:kim"
package pattern

import (
	"regexp/syntax"
	"sync/atomic"

	"github.com/coregx/resub"
)

// matcher is the engine behind a Regexp.
type matcher interface {
	matchAt(subject []byte, start int, m *resub.SubmatchSet) bool
}

// Regexp is a compiled pattern. It implements resub.Pattern and
// resub.Preparer and is safe for concurrent use.
type Regexp struct {
	expr      string
	strategy  Strategy
	numGroups int
	names     []string
	literals  [][]byte
	m         matcher
	bt        *backtrackMatcher
	timeouts  uint64
}

var (
	_ resub.Pattern  = (*Regexp)(nil)
	_ resub.Preparer = (*Regexp)(nil)
)

// Compile compiles expr with the default configuration.
//
// Syntax is RE2 (the same as Go's regexp), extended with look-around and
// back-references, which run on the backtracking engine.
func Compile(expr string) (*Regexp, error) {
	return CompileWithConfig(expr, DefaultConfig())
}

// MustCompile is like Compile but panics if the pattern is invalid.
//
// Example:
//
//	var dateRe = pattern.MustCompile(`(\d+)-(\d+)-(\d+)`)
func MustCompile(expr string) *Regexp {
	re, err := Compile(expr)
	if err != nil {
		panic("pattern: Compile(`" + expr + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles expr with a custom configuration.
//
// Example:
//
//	config := pattern.DefaultConfig()
//	config.CaseInsensitive = true
//	re, err := pattern.CompileWithConfig(`hello`, config)
func CompileWithConfig(expr string, config Config) (*Regexp, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	r := &Regexp{expr: expr}
	tree, err := syntax.Parse(expr, syntaxFlags(config))
	if err != nil {
		// Not RE2 syntax; the backtracking engine may still accept it.
		allowed := config.Strategy == UseBacktrack ||
			(config.Strategy == UseAuto && config.EnableBacktrack)
		if !allowed || r.useBacktrack(expr, config, nil) != nil {
			return nil, &CompileError{Pattern: expr, Err: err}
		}
		return r, nil
	}

	strategy, lits := selectStrategy(tree, config)
	switch strategy {
	case UseLiteral:
		if lits == nil {
			return nil, &CompileError{Pattern: expr, Err: ErrNotLiteral}
		}
		lm, err := newLiteralMatcher(lits)
		if err != nil {
			return nil, &CompileError{Pattern: expr, Err: err}
		}
		r.strategy = UseLiteral
		r.literals = lits
		r.names = []string{""}
		r.m = lm

	case UseBacktrack:
		if err := r.useBacktrack(expr, config, tree); err != nil {
			return nil, &CompileError{Pattern: expr, Err: err}
		}

	case UseRE2:
		if err := r.usePrefix(UseRE2, tree, compileRE2); err != nil {
			return nil, &CompileError{Pattern: expr, Err: err}
		}

	default:
		if err := r.usePrefix(UseStdlib, tree, compileStdlib); err != nil {
			return nil, &CompileError{Pattern: expr, Err: err}
		}
	}
	return r, nil
}

func (r *Regexp) usePrefix(s Strategy, tree *syntax.Regexp, compile func(string) (searcher, error)) error {
	pm, err := newPrefixMatcher(tree, compile)
	if err != nil {
		return err
	}
	r.strategy = s
	r.names = pm.subexpNames()
	r.numGroups = len(r.names) - 1
	r.m = pm
	return nil
}

func (r *Regexp) useBacktrack(expr string, config Config, tree *syntax.Regexp) error {
	bt, err := newBacktrackMatcher(expr, config, &r.timeouts)
	if err != nil {
		return err
	}
	if tree != nil {
		bt.alignGroups(tree)
	}
	r.strategy = UseBacktrack
	r.names = bt.names
	r.numGroups = bt.numGroups()
	r.m = bt
	r.bt = bt
	return nil
}

// String returns the source text used to compile the pattern.
func (r *Regexp) String() string {
	return r.expr
}

// Strategy returns the engine the pattern runs on.
func (r *Regexp) Strategy() Strategy {
	return r.strategy
}

// NumGroups returns the number of capture groups, not counting the whole
// match. It implements resub.Pattern.
func (r *Regexp) NumGroups() int {
	return r.numGroups
}

// SubexpNames returns the names of the capture groups; names[0] is the
// whole match and always empty, unnamed groups have empty names.
// The slice is shared and must not be modified.
func (r *Regexp) SubexpNames() []string {
	return r.names
}

// Literals returns the literal set of a UseLiteral pattern, or nil.
// The slices are shared and must not be modified.
func (r *Regexp) Literals() [][]byte {
	return r.literals
}

// Timeouts returns how many match attempts ran out of Config.MatchTimeout.
func (r *Regexp) Timeouts() uint64 {
	return atomic.LoadUint64(&r.timeouts)
}

// MatchAt implements resub.Pattern.
func (r *Regexp) MatchAt(subject []byte, start int, m *resub.SubmatchSet) bool {
	if start < 0 || start > len(subject) {
		return false
	}
	return r.m.matchAt(subject, start, m)
}

// Prepare implements resub.Preparer. Patterns on the backtracking engine
// decode subject once here; the others return r unchanged.
func (r *Regexp) Prepare(subject []byte) resub.Pattern {
	if r.bt == nil {
		return r
	}
	return &prepared{numGroups: r.numGroups, b: r.bt.bind(subject)}
}

// prepared is a backtracking pattern bound to one subject.
type prepared struct {
	numGroups int
	b         *boundBacktrack
}

func (p *prepared) NumGroups() int {
	return p.numGroups
}

func (p *prepared) MatchAt(subject []byte, start int, m *resub.SubmatchSet) bool {
	if start < 0 || start > len(subject) {
		return false
	}
	return p.b.matchAt(subject, start, m)
}

// Match reports whether subject contains a match of r.
func (r *Regexp) Match(subject []byte) bool {
	m := resub.NewSubmatchSet(subject, r.numGroups+1)
	return r.MatchAt(subject, 0, m)
}

// MatchString reports whether s contains a match of r.
func (r *Regexp) MatchString(s string) bool {
	return r.Match([]byte(s))
}
