package pattern

import (
	"regexp/syntax"
	"sort"
	"strconv"
	"sync/atomic"

	"github.com/dlclark/regexp2"

	"github.com/coregx/resub"
	"github.com/coregx/resub/internal/conv"
)

// backtrackMatcher runs regexp2, a backtracking engine, in RE2-compatible
// mode. It serves patterns Go's regexp rejects, such as look-around and
// back-references.
//
// regexp2 works on runes while resub works on bytes, so every search decodes
// the subject and translates offsets through a rune-to-byte table. Prepare
// does that once per subject instead of once per attempt.
type backtrackMatcher struct {
	re *regexp2.Regexp

	// groups[i] is the regexp2 group number that fills slot i.
	groups []int
	names  []string

	timeouts *uint64
}

func newBacktrackMatcher(expr string, config Config, timeouts *uint64) (*backtrackMatcher, error) {
	opts := regexp2.RegexOptions(regexp2.RE2)
	if config.CaseInsensitive {
		opts |= regexp2.IgnoreCase
	}
	if config.Multiline {
		opts |= regexp2.Multiline
	}
	if config.DotNL {
		opts |= regexp2.Singleline
	}
	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return nil, err
	}
	if config.MatchTimeout > 0 {
		re.MatchTimeout = config.MatchTimeout
	}

	numbers := re.GetGroupNumbers()
	sort.Ints(numbers)
	b := &backtrackMatcher{
		re:       re,
		groups:   numbers,
		names:    make([]string, len(numbers)),
		timeouts: timeouts,
	}
	for i, n := range numbers {
		if i == 0 {
			continue
		}
		if name := re.GroupNameFromNumber(n); name != strconv.Itoa(n) {
			b.names[i] = name
		}
	}
	return b, nil
}

func (b *backtrackMatcher) numGroups() int {
	return len(b.groups) - 1
}

func (b *backtrackMatcher) matchAt(subject []byte, start int, m *resub.SubmatchSet) bool {
	return b.bind(subject).matchAt(subject, start, m)
}

// bind decodes subject once for a run of match attempts.
func (b *backtrackMatcher) bind(subject []byte) *boundBacktrack {
	runes, offsets := conv.RuneOffsets(subject)
	return &boundBacktrack{backtrackMatcher: b, runes: runes, offsets: offsets}
}

// boundBacktrack is a backtrackMatcher specialized to one subject.
type boundBacktrack struct {
	*backtrackMatcher
	runes   []rune
	offsets []int
}

func (b *boundBacktrack) matchAt(subject []byte, start int, m *resub.SubmatchSet) bool {
	at := conv.ByteToRune(b.offsets, start)
	if at > len(b.runes) {
		return false
	}
	match, err := b.re.FindRunesMatchStartingAt(b.runes, at)
	if err != nil {
		// The only runtime error regexp2 reports is a timeout.
		atomic.AddUint64(b.timeouts, 1)
		return false
	}
	if match == nil {
		return false
	}
	for slot, num := range b.groups {
		g := match.GroupByNumber(num)
		if g == nil || len(g.Captures) == 0 {
			m.ClearGroup(slot)
			continue
		}
		m.SetGroup(slot, b.offsets[g.Index], b.offsets[g.Index+g.Length])
	}
	return true
}

// alignGroups renumbers slots to follow the left-to-right order of tree,
// the RE2 parse of the same pattern.
//
// regexp2 numbers unnamed groups first and named groups after them, while
// RE2 numbers all groups by the position of their opening parenthesis.
// Named groups are found by name; the remaining regexp2 numbers go to the
// unnamed groups in order, which is correct under either numbering.
func (b *backtrackMatcher) alignGroups(tree *syntax.Regexp) {
	caps := captureNames(tree, nil)
	if len(caps) != b.numGroups() {
		return
	}

	named := make(map[int]bool)
	groups := make([]int, len(caps)+1)
	for i, name := range caps {
		if name == "" {
			continue
		}
		n := b.re.GroupNumberFromName(name)
		if n < 0 {
			return
		}
		groups[i+1] = n
		named[n] = true
	}
	var free []int
	for _, n := range b.groups[1:] {
		if !named[n] {
			free = append(free, n)
		}
	}
	for i, name := range caps {
		if name == "" {
			groups[i+1], free = free[0], free[1:]
		}
	}
	b.groups = groups
	b.names = append([]string{""}, caps...)
}

// captureNames lists the names of the capture groups of re in order of
// their opening parenthesis; unnamed groups have empty names.
func captureNames(re *syntax.Regexp, names []string) []string {
	if re.Op == syntax.OpCapture {
		names = append(names, re.Name)
	}
	for _, sub := range re.Sub {
		names = captureNames(sub, names)
	}
	return names
}
