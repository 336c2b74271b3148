package resub

// TextView is an immutable view over a range of a borrowed byte buffer.
//
// A TextView owns nothing: it refers to the buffer that was searched, so the
// buffer must stay valid (and unmodified) for as long as the view is used.
//
// A view is either set, covering src[start:end] (possibly empty), or unset.
// Unset views come from capture groups that did not take part in a match,
// e.g. the second group of `(a)|(b)` matched against "a". An unset view and
// an empty view have the same text but are distinct values.
//
// Example:
//
//	v := resub.NewTextView([]byte("hello world"), 6, 11)
//	println(v.String()) // "world"
//	println(v.Start(), v.End()) // 6, 11
type TextView struct {
	src   []byte
	start int
	end   int
}

// unsetView is the sentinel for a group that did not participate in a match.
var unsetView = TextView{start: -1, end: -1}

// NewTextView returns a view of src[start:end].
//
// Panics if the range is not within src; a bad range here is always a bug
// in the caller.
func NewTextView(src []byte, start, end int) TextView {
	if start < 0 || end < start || end > len(src) {
		panic("resub: text view range out of bounds")
	}
	return TextView{src: src, start: start, end: end}
}

// Start returns the inclusive start offset of the view, or -1 if unset.
func (v TextView) Start() int {
	return v.start
}

// End returns the exclusive end offset of the view, or -1 if unset.
func (v TextView) End() int {
	return v.end
}

// Len returns the length of the view in bytes. Unset views have length 0.
func (v TextView) Len() int {
	if !v.IsSet() {
		return 0
	}
	return v.end - v.start
}

// IsSet reports whether the view refers to a range of its buffer.
func (v TextView) IsSet() bool {
	return v.start >= 0
}

// IsEmpty reports whether the view covers no bytes.
// Both unset views and set zero-length views are empty.
func (v TextView) IsEmpty() bool {
	return v.Len() == 0
}

// Bytes returns the viewed bytes without copying.
//
// The returned slice aliases the underlying buffer and has its capacity
// clipped, so appending to it never writes into the buffer. Returns nil for
// an unset view.
func (v TextView) Bytes() []byte {
	if !v.IsSet() {
		return nil
	}
	return v.src[v.start:v.end:v.end]
}

// String returns a copy of the viewed text.
func (v TextView) String() string {
	return string(v.Bytes())
}
