package resub

import (
	"sync/atomic"
	"unicode/utf8"
)

// Engine performs template substitutions using externally supplied
// patterns.
//
// An Engine holds only its configuration, a pool of submatch buffers and
// statistics counters. It is safe for concurrent use; every call gets its
// own SubmatchSet and builds a fresh result.
type Engine struct {
	config Config
	sets   submatchPool
	stats  Stats
}

// Stats tracks engine activity.
//
// Counters are updated atomically, so they may be read while operations
// are in flight.
type Stats struct {
	// MatchAttempts counts calls to Pattern.MatchAt.
	MatchAttempts uint64

	// Matches counts successful match attempts.
	Matches uint64

	// EmptyMatches counts matches that consumed no input.
	EmptyMatches uint64

	// Replacements counts template expansions written to results.
	Replacements uint64

	// TemplateErrors counts operations rejected because of their template.
	TemplateErrors uint64
}

// New creates an Engine with the given configuration.
func New(config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Engine{config: config}, nil
}

// MustNew is like New but panics if the configuration is invalid.
func MustNew(config Config) *Engine {
	e, err := New(config)
	if err != nil {
		panic(err)
	}
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Stats returns a snapshot of the engine statistics.
func (e *Engine) Stats() Stats {
	return Stats{
		MatchAttempts:  atomic.LoadUint64(&e.stats.MatchAttempts),
		Matches:        atomic.LoadUint64(&e.stats.Matches),
		EmptyMatches:   atomic.LoadUint64(&e.stats.EmptyMatches),
		Replacements:   atomic.LoadUint64(&e.stats.Replacements),
		TemplateErrors: atomic.LoadUint64(&e.stats.TemplateErrors),
	}
}

// ResetStats resets the statistics to zero.
func (e *Engine) ResetStats() {
	atomic.StoreUint64(&e.stats.MatchAttempts, 0)
	atomic.StoreUint64(&e.stats.Matches, 0)
	atomic.StoreUint64(&e.stats.EmptyMatches, 0)
	atomic.StoreUint64(&e.stats.Replacements, 0)
	atomic.StoreUint64(&e.stats.TemplateErrors, 0)
}

// Replace replaces the leftmost match of p in subject with the expansion of
// template.
//
// If p does not match, Replace returns subject itself and false. Otherwise
// the result is a newly allocated slice holding the text before the match,
// the expanded template and the text after the match. subject is never
// modified.
//
// A template that is malformed or references a group p does not have is
// reported as a *TemplateError, whether or not p matches, and the result
// is nil.
//
// Example:
//
//	re := pattern.MustCompile(`(\d+)-(\d+)-(\d+)`)
//	out, ok, err := engine.Replace([]byte("2024-01-02"), re, `\3/\2/\1`)
//	// out = "02/01/2024", ok = true, err = nil
func (e *Engine) Replace(subject []byte, p Pattern, template string) ([]byte, bool, error) {
	t, err := e.prepareTemplate(template, p)
	if err != nil {
		return nil, false, err
	}

	m := e.sets.get(subject, p.NumGroups()+1)
	defer e.sets.put(m)

	if !e.matchAt(bind(p, subject), subject, 0, m) {
		return subject, false, nil
	}
	start, end := m.Range()

	out := make([]byte, 0, len(subject)+len(template))
	out = append(out, subject[:start]...)
	out = t.Expand(out, m)
	out = append(out, subject[end:]...)
	atomic.AddUint64(&e.stats.Replacements, 1)
	return out, true, nil
}

// GlobalReplace replaces every non-overlapping match of p in subject,
// scanning left to right, and returns the rewritten text together with the
// number of replacements made.
//
// After an empty match at offset s the expansion is written, then the
// character at s is copied unchanged and scanning resumes after it, so the
// scan always makes progress. The size of that step is set by
// Config.Advance. An empty match at the very end of subject is expanded
// and ends the scan.
//
// If nothing matches, GlobalReplace returns subject itself and 0.
// Template errors are reported as in Replace.
//
// Example:
//
//	re := pattern.MustCompile(`,`)
//	out, n, _ := engine.GlobalReplace([]byte("a,b,,c"), re, ";")
//	// out = "a;b;;c", n = 3
func (e *Engine) GlobalReplace(subject []byte, p Pattern, template string) ([]byte, int, error) {
	t, err := e.prepareTemplate(template, p)
	if err != nil {
		return nil, 0, err
	}

	m := e.sets.get(subject, p.NumGroups()+1)
	defer e.sets.put(m)
	bound := bind(p, subject)

	var out []byte
	count := 0
	cursor := 0
	for cursor <= len(subject) {
		if e.config.MaxReplacements > 0 && count >= e.config.MaxReplacements {
			break
		}
		if !e.matchAt(bound, subject, cursor, m) {
			break
		}
		start, end := m.Range()

		if out == nil {
			out = make([]byte, 0, len(subject)+len(template))
		}
		out = append(out, subject[cursor:start]...)
		out = t.Expand(out, m)
		count++

		if end > start {
			cursor = end
			continue
		}
		// Empty match: copy one character through so the next search
		// starts past it.
		if start == len(subject) {
			cursor = start + 1
			break
		}
		step := e.step(subject[start:])
		out = append(out, subject[start:start+step]...)
		cursor = start + step
	}

	if count == 0 {
		return subject, 0, nil
	}
	if cursor < len(subject) {
		out = append(out, subject[cursor:]...)
	}
	atomic.AddUint64(&e.stats.Replacements, uint64(count))
	return out, count, nil
}

// Extract expands template against the leftmost match of p in subject and
// returns only the expansion; the rest of subject is discarded.
//
// If p does not match, Extract returns nil and false.
//
// Example:
//
//	re := pattern.MustCompile(`(\w+)@(\w+)\.com`)
//	out, ok, _ := engine.Extract([]byte("mail kim@example.com now"), re, `\2!\1`)
//	// out = "example!kim", ok = true
func (e *Engine) Extract(subject []byte, p Pattern, template string) ([]byte, bool, error) {
	t, err := e.prepareTemplate(template, p)
	if err != nil {
		return nil, false, err
	}

	m := e.sets.get(subject, p.NumGroups()+1)
	defer e.sets.put(m)

	if !e.matchAt(bind(p, subject), subject, 0, m) {
		return nil, false, nil
	}
	out := t.Expand(make([]byte, 0, len(template)), m)
	atomic.AddUint64(&e.stats.Replacements, 1)
	return out, true, nil
}

// ReplaceString is like Replace but operates on strings.
// When nothing matches the original string is returned.
func (e *Engine) ReplaceString(subject string, p Pattern, template string) (string, bool, error) {
	out, ok, err := e.Replace([]byte(subject), p, template)
	if err != nil || !ok {
		return stringResult(subject, err), false, err
	}
	return string(out), true, nil
}

// GlobalReplaceString is like GlobalReplace but operates on strings.
// When nothing matches the original string is returned.
func (e *Engine) GlobalReplaceString(subject string, p Pattern, template string) (string, int, error) {
	out, n, err := e.GlobalReplace([]byte(subject), p, template)
	if err != nil || n == 0 {
		return stringResult(subject, err), 0, err
	}
	return string(out), n, nil
}

// ExtractString is like Extract but operates on strings.
func (e *Engine) ExtractString(subject string, p Pattern, template string) (string, bool, error) {
	out, ok, err := e.Extract([]byte(subject), p, template)
	return string(out), ok, err
}

// stringResult returns subject unless the operation failed.
func stringResult(subject string, err error) string {
	if err != nil {
		return ""
	}
	return subject
}

// prepareTemplate parses template and checks it against p's groups.
func (e *Engine) prepareTemplate(template string, p Pattern) (*Template, error) {
	t, err := ParseTemplate(template)
	if err == nil {
		err = t.Check(p.NumGroups() + 1)
	}
	if err != nil {
		atomic.AddUint64(&e.stats.TemplateErrors, 1)
		return nil, err
	}
	return t, nil
}

// matchAt runs one match attempt and enforces the Pattern contract.
func (e *Engine) matchAt(p Pattern, subject []byte, start int, m *SubmatchSet) bool {
	atomic.AddUint64(&e.stats.MatchAttempts, 1)
	m.Reset(subject)
	if !p.MatchAt(subject, start, m) {
		return false
	}
	s, end := m.Range()
	if s < start || end < s || end > len(subject) {
		panic("resub: pattern reported a match outside the searched range")
	}
	atomic.AddUint64(&e.stats.Matches, 1)
	if s == end {
		atomic.AddUint64(&e.stats.EmptyMatches, 1)
	}
	return true
}

// step returns the length of the character at the start of rest.
// rest must not be empty.
func (e *Engine) step(rest []byte) int {
	if e.config.Advance == AdvanceByte {
		return 1
	}
	_, size := utf8.DecodeRune(rest)
	return size
}

// bind gives a Preparer the chance to specialize itself to subject.
func bind(p Pattern, subject []byte) Pattern {
	if pr, ok := p.(Preparer); ok {
		return pr.Prepare(subject)
	}
	return p
}
