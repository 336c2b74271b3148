package resub

// Template is a parsed replacement template.
//
// Template syntax:
//   - \0 is the whole match, \1 through \9 are capture groups
//   - \\ is a literal backslash
//   - every other byte is copied literally
//
// Any other escape, including a trailing backslash, is rejected by
// ParseTemplate. A Template is immutable and safe for concurrent use.
//
// Example:
//
//	t, err := resub.ParseTemplate(`\3/\2/\1`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	println(t.MaxGroup()) // 3
type Template struct {
	src   string
	parts []templatePart
	max   int
}

// templatePart is either a literal run (group < 0) or a group reference.
type templatePart struct {
	lit    string
	group  int
	offset int
}

// ParseTemplate parses a replacement template.
// Returns a *TemplateError if the template contains an invalid escape.
func ParseTemplate(template string) (*Template, error) {
	t := &Template{src: template}
	litStart := 0
	flush := func(end int) {
		if end > litStart {
			t.parts = append(t.parts, templatePart{lit: template[litStart:end], group: -1, offset: litStart})
		}
	}

	for i := 0; i < len(template); i++ {
		if template[i] != '\\' {
			continue
		}
		if i+1 >= len(template) {
			return nil, &TemplateError{
				Template:  template,
				Offset:    i,
				Group:     -1,
				NumGroups: -1,
				Reason:    "trailing backslash",
			}
		}
		next := template[i+1]
		switch {
		case next >= '0' && next <= '9':
			flush(i)
			g := int(next - '0')
			t.parts = append(t.parts, templatePart{group: g, offset: i})
			if g > t.max {
				t.max = g
			}
		case next == '\\':
			flush(i)
			t.parts = append(t.parts, templatePart{lit: `\`, group: -1, offset: i})
		default:
			return nil, &TemplateError{
				Template:  template,
				Offset:    i,
				Group:     -1,
				NumGroups: -1,
				Reason:    "invalid escape \\" + string(next),
			}
		}
		i++
		litStart = i + 1
	}
	flush(len(template))
	return t, nil
}

// MustParseTemplate is like ParseTemplate but panics if the template is invalid.
func MustParseTemplate(template string) *Template {
	t, err := ParseTemplate(template)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the template source.
func (t *Template) String() string {
	return t.src
}

// MaxGroup returns the highest group index the template references,
// or 0 if it references none.
func (t *Template) MaxGroup() int {
	return t.max
}

// Check verifies that every group reference is below numGroups, the number
// of slots of a SubmatchSet (capture groups plus the whole match).
// The first offending reference is reported as a *TemplateError.
func (t *Template) Check(numGroups int) error {
	if t.max < numGroups {
		return nil
	}
	for _, p := range t.parts {
		if p.group >= numGroups {
			return &TemplateError{
				Template:  t.src,
				Offset:    p.offset,
				Group:     p.group,
				NumGroups: numGroups,
				Reason:    "reference to missing group",
			}
		}
	}
	return nil
}

// Expand appends the template to dst, substituting group references with
// the text of the corresponding slot of m, and returns the extended slice.
// Unset slots expand to nothing.
//
// Panics if the template references a slot m does not have; call Check
// first.
func (t *Template) Expand(dst []byte, m *SubmatchSet) []byte {
	for _, p := range t.parts {
		if p.group < 0 {
			dst = append(dst, p.lit...)
			continue
		}
		dst = append(dst, m.Group(p.group).Bytes()...)
	}
	return dst
}
