package resub

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTextView(t *testing.T) {
	src := []byte("hello world")
	v := NewTextView(src, 6, 11)

	if got := v.String(); got != "world" {
		t.Errorf("String() = %q, want %q", got, "world")
	}
	if v.Start() != 6 || v.End() != 11 || v.Len() != 5 {
		t.Errorf("view = [%d:%d] len %d, want [6:11] len 5", v.Start(), v.End(), v.Len())
	}
	if !v.IsSet() || v.IsEmpty() {
		t.Errorf("IsSet() = %v, IsEmpty() = %v, want true, false", v.IsSet(), v.IsEmpty())
	}
}

func TestTextViewEmptyVersusUnset(t *testing.T) {
	empty := NewTextView([]byte("abc"), 1, 1)
	if !empty.IsSet() || !empty.IsEmpty() {
		t.Errorf("empty view: IsSet() = %v, IsEmpty() = %v", empty.IsSet(), empty.IsEmpty())
	}
	if empty.Bytes() == nil {
		t.Error("empty set view returned nil Bytes")
	}

	if unsetView.IsSet() {
		t.Error("unset view reports IsSet")
	}
	if unsetView.Bytes() != nil || unsetView.Len() != 0 {
		t.Errorf("unset view: Bytes() = %v, Len() = %d", unsetView.Bytes(), unsetView.Len())
	}
	if unsetView.Start() != -1 || unsetView.End() != -1 {
		t.Errorf("unset view range = [%d:%d], want [-1:-1]", unsetView.Start(), unsetView.End())
	}
}

func TestTextViewBytesDoesNotExposeBuffer(t *testing.T) {
	src := []byte("abcdef")
	v := NewTextView(src, 0, 3)
	b := append(v.Bytes(), 'X')
	if string(src) != "abcdef" {
		t.Errorf("append through view modified buffer: %q", src)
	}
	if string(b) != "abcX" {
		t.Errorf("append result = %q, want %q", b, "abcX")
	}
}

func TestNewTextViewOutOfRange(t *testing.T) {
	tests := []struct {
		start, end int
	}{
		{-1, 2},
		{2, 1},
		{0, 4},
	}
	for _, tt := range tests {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewTextView(%d, %d) did not panic", tt.start, tt.end)
				}
			}()
			NewTextView([]byte("abc"), tt.start, tt.end)
		}()
	}
}

func TestSubmatchSet(t *testing.T) {
	subject := []byte("user@example.com")
	m := NewSubmatchSet(subject, 3)

	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
	for i := 0; i < m.Len(); i++ {
		if m.Group(i).IsSet() {
			t.Errorf("new set: group %d is set", i)
		}
	}
	if s, e := m.Range(); s != -1 || e != -1 {
		t.Errorf("new set: Range() = %d, %d, want -1, -1", s, e)
	}

	m.SetGroup(0, 0, 16)
	m.SetGroup(1, 0, 4)
	if got := m.Group(1).String(); got != "user" {
		t.Errorf("Group(1) = %q, want %q", got, "user")
	}
	if diff := cmp.Diff([]int{0, 16, 0, 4, -1, -1}, m.Indices()); diff != "" {
		t.Errorf("Indices() mismatch (-want +got):\n%s", diff)
	}

	m.ClearGroup(1)
	if m.Group(1).IsSet() {
		t.Error("ClearGroup(1) left group set")
	}

	m.Reset([]byte("other"))
	if string(m.Subject()) != "other" {
		t.Errorf("Subject() after Reset = %q", m.Subject())
	}
	if s, _ := m.Range(); s != -1 {
		t.Errorf("Reset did not clear slot 0")
	}
}

func TestSubmatchSetLoad(t *testing.T) {
	subject := []byte("xx-ab-yy")
	m := NewSubmatchSet(subject, 4)

	// A match of `(a)|(b)(c)?` style: group 2 unset, group 3 absent from loc.
	m.Load([]int{0, 2, 0, 1, -1, -1}, 3)

	want := []int{3, 5, 3, 4, -1, -1, -1, -1}
	if diff := cmp.Diff(want, m.Indices()); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
	if got := m.Group(0).String(); got != "ab" {
		t.Errorf("Group(0) = %q, want %q", got, "ab")
	}
}

func TestSubmatchSetBoundsChecks(t *testing.T) {
	tests := []struct {
		name string
		fn   func(m *SubmatchSet)
	}{
		{"group index negative", func(m *SubmatchSet) { m.Group(-1) }},
		{"group index too large", func(m *SubmatchSet) { m.Group(2) }},
		{"set range past end", func(m *SubmatchSet) { m.SetGroup(0, 0, 4) }},
		{"set inverted range", func(m *SubmatchSet) { m.SetGroup(1, 2, 1) }},
		{"clear missing group", func(m *SubmatchSet) { m.ClearGroup(5) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn(NewSubmatchSet([]byte("abc"), 2))
		})
	}
}

func TestSubmatchPool(t *testing.T) {
	var p submatchPool

	small := p.get([]byte("abc"), 2)
	if small.Len() != 2 {
		t.Fatalf("get(2).Len() = %d", small.Len())
	}
	small.SetGroup(1, 0, 1)
	p.put(small)

	big := p.get([]byte("abcdef"), 5)
	if big.Len() != 5 {
		t.Fatalf("get(5).Len() = %d", big.Len())
	}
	for i := 0; i < big.Len(); i++ {
		if big.Group(i).IsSet() {
			t.Errorf("pooled set: group %d not reset", i)
		}
	}
	if string(big.Subject()) != "abcdef" {
		t.Errorf("pooled set subject = %q", big.Subject())
	}

	p.put(big)
	p.put(nil)
}
