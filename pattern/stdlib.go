package pattern

import (
	"regexp"
	"regexp/syntax"
	"unicode/utf8"

	"github.com/coregx/resub"
)

// searcher is the part of the regexp API a prefixMatcher needs. Go's
// regexp and go-re2 both provide it.
type searcher interface {
	FindSubmatchIndex(b []byte) []int
	SubexpNames() []string
}

// prefixMatcher runs an engine that can only search from the start of a
// text.
//
// A search from offset start runs on subject[start:]. That is exact for
// patterns whose matches do not depend on earlier text. For the others (^,
// \A, (?m)^, \b, \B) a second program is compiled:
//
//	^(?s:.)(?s:.*?)(pattern)
//
// and run on the text starting one character before start. The leading
// character gives the assertions their real left context, the lazy gap
// selects the leftmost start at or after start, and group 1 carries the
// match itself. The pattern's own \A can never hold inside the gap program
// because it is never at offset 0 there, which is right for any start > 0.
type prefixMatcher struct {
	head searcher
	tail searcher
}

func newPrefixMatcher(re *syntax.Regexp, compile func(string) (searcher, error)) (*prefixMatcher, error) {
	expr := re.String()
	head, err := compile(expr)
	if err != nil {
		return nil, err
	}
	p := &prefixMatcher{head: head}
	if needsContext(re) {
		p.tail, err = compile(`^(?s:.)(?s:.*?)(` + expr + `)`)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

func compileStdlib(expr string) (searcher, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return re, nil
}

func (p *prefixMatcher) matchAt(subject []byte, start int, m *resub.SubmatchSet) bool {
	if start == 0 || p.tail == nil {
		loc := p.head.FindSubmatchIndex(subject[start:])
		if loc == nil {
			return false
		}
		m.Load(loc, start)
		return true
	}

	_, width := utf8.DecodeLastRune(subject[:start])
	base := start - width
	text := subject[base:]
	if _, w := utf8.DecodeRune(text); w != width {
		// start splits an encoded character (byte stepping). The leading
		// (?s:.) would swallow it whole and skip start, so a space stands
		// in for the byte before start: like any byte >= 0x80 it is neither
		// a word character nor a newline.
		base = start - 1
		text = make([]byte, 1+len(subject)-start)
		text[0] = ' '
		copy(text[1:], subject[start:])
	}
	loc := p.tail.FindSubmatchIndex(text)
	if loc == nil {
		return false
	}
	// Drop the whole-program pair; group 1 is the match.
	m.Load(loc[2:], base)
	return true
}

func (p *prefixMatcher) subexpNames() []string {
	return p.head.SubexpNames()
}
