package resub

// Pattern is a compiled matcher supplied by a regex engine.
//
// Implementations must be stateless with respect to matching: the same
// Pattern may be used by many goroutines at once, and MatchAt may be called
// repeatedly on one subject with increasing start offsets without any state
// carrying over between calls.
//
// The github.com/coregx/resub/pattern package provides implementations
// backed by stdlib regexp, Aho-Corasick and a backtracking engine. Tests can
// supply their own.
type Pattern interface {
	// NumGroups returns the number of capture groups, not counting the
	// whole match. SubmatchSets passed to MatchAt have NumGroups()+1 slots.
	NumGroups() int

	// MatchAt searches subject for the leftmost match that starts at or
	// after start. On success it fills m (slot 0 with the whole match) and
	// returns true. On failure it returns false and m's contents are
	// unspecified.
	//
	// Text before start is context for look-behind assertions such as \b
	// but is never part of the match. start may equal len(subject), in
	// which case only an empty match is possible.
	MatchAt(subject []byte, start int, m *SubmatchSet) bool
}

// Preparer is implemented by patterns that can amortize per-subject work
// (such as decoding the subject into runes) across the match attempts of a
// single operation.
//
// The Engine calls Prepare once per operation and uses the returned Pattern
// for every attempt on that subject. The returned Pattern is owned by that
// operation and is only ever called with the same subject.
type Preparer interface {
	Prepare(subject []byte) Pattern
}
