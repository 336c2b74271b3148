package resub

import "sync"

// SubmatchSet holds the whole-match and capture-group spans of one match
// attempt.
//
// A set has exactly N slots, where N is the pattern's capture-group count
// plus one; slot 0 is the whole match. Slots are stored as index pairs in
// the same layout as regexp.FindSubmatchIndex, with -1 marking a slot the
// matcher left unset.
//
// The Engine allocates sets and passes them to Pattern.MatchAt to be filled.
// A set belongs to exactly one call at a time and must never be shared
// between concurrent match attempts.
type SubmatchSet struct {
	subject []byte
	slots   []int
}

// NewSubmatchSet returns a set with n slots (n >= 1), all unset, bound to
// subject.
func NewSubmatchSet(subject []byte, n int) *SubmatchSet {
	if n < 1 {
		panic("resub: submatch set needs at least one slot")
	}
	s := &SubmatchSet{slots: make([]int, 2*n)}
	s.Reset(subject)
	return s
}

// Len returns the number of slots, including the whole-match slot.
func (s *SubmatchSet) Len() int {
	return len(s.slots) / 2
}

// Subject returns the text the set's views borrow from.
func (s *SubmatchSet) Subject() []byte {
	return s.subject
}

// Reset binds the set to subject and marks every slot unset.
func (s *SubmatchSet) Reset(subject []byte) {
	s.subject = subject
	for i := range s.slots {
		s.slots[i] = -1
	}
}

// SetGroup records that group i matched subject[start:end].
//
// Panics if i is not a valid slot or the range does not lie within the
// subject.
func (s *SubmatchSet) SetGroup(i, start, end int) {
	s.checkSlot(i)
	if start < 0 || end < start || end > len(s.subject) {
		panic("resub: submatch range out of bounds")
	}
	s.slots[2*i] = start
	s.slots[2*i+1] = end
}

// ClearGroup marks group i as not participating in the match.
func (s *SubmatchSet) ClearGroup(i int) {
	s.checkSlot(i)
	s.slots[2*i] = -1
	s.slots[2*i+1] = -1
}

// Load fills the set from an index slice laid out like the result of
// regexp.FindSubmatchIndex, adding base to every set offset. This is the
// usual way to record a match found in subject[base:].
//
// Pairs beyond the set's length are ignored; slots beyond the length of loc
// are left unset.
func (s *SubmatchSet) Load(loc []int, base int) {
	for i := 0; i < s.Len(); i++ {
		if 2*i+1 >= len(loc) || loc[2*i] < 0 {
			s.ClearGroup(i)
			continue
		}
		s.SetGroup(i, base+loc[2*i], base+loc[2*i+1])
	}
}

// Group returns the view for slot i. Unset slots return an unset view.
//
// Panics if i is outside [0, Len()).
func (s *SubmatchSet) Group(i int) TextView {
	s.checkSlot(i)
	start := s.slots[2*i]
	if start < 0 {
		return unsetView
	}
	return TextView{src: s.subject, start: start, end: s.slots[2*i+1]}
}

// Range returns the whole-match span. Both values are -1 before the matcher
// has filled slot 0.
func (s *SubmatchSet) Range() (start, end int) {
	return s.slots[0], s.slots[1]
}

// Indices returns a copy of the slot offsets in regexp.FindSubmatchIndex
// layout.
func (s *SubmatchSet) Indices() []int {
	out := make([]int, len(s.slots))
	copy(out, s.slots)
	return out
}

func (s *SubmatchSet) checkSlot(i int) {
	if i < 0 || i >= s.Len() {
		panic("resub: submatch index out of range")
	}
}

// submatchPool recycles SubmatchSets between calls on an Engine.
// This follows the stdlib regexp pattern of pooling per-search state so a
// compiled pattern can serve concurrent callers without sharing buffers.
type submatchPool struct {
	pool sync.Pool
}

// get returns an exclusively owned set with n slots bound to subject.
func (p *submatchPool) get(subject []byte, n int) *SubmatchSet {
	s, _ := p.pool.Get().(*SubmatchSet)
	if s == nil {
		return NewSubmatchSet(subject, n)
	}
	if cap(s.slots) < 2*n {
		s.slots = make([]int, 2*n)
	}
	s.slots = s.slots[:2*n]
	s.Reset(subject)
	return s
}

// put returns a set to the pool. The set must not be used afterwards.
func (p *submatchPool) put(s *SubmatchSet) {
	if s == nil {
		return
	}
	// Drop the subject so the pool does not pin caller buffers.
	s.subject = nil
	p.pool.Put(s)
}
