// Package resub provides RE2-style Replace, GlobalReplace and Extract on top
// of any regex engine.
//
// resub does not compile or run regular expressions itself. A compiled
// matcher is passed in as a Pattern, and resub owns everything around it:
// the submatch buffers handed to the matcher, the replacement template
// language and the scanning loop that turns matches into a new text.
//
// Basic usage:
//
//	re := pattern.MustCompile(`(\d+)-(\d+)-(\d+)`)
//	out, ok, err := resub.ReplaceString("2024-01-02", re, `\3/\2/\1`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(out, ok) // "02/01/2024 true"
//
// Templates use RE2 rewrite syntax: \0 is the whole match, \1 through \9 are
// capture groups and \\ is a backslash. Templates are validated against the
// pattern before matching starts, so a bad template never yields a partial
// result.
//
// Semantics:
//   - Leftmost match; tie-breaking is up to the Pattern
//   - GlobalReplace never overlaps matches and always makes progress: after
//     an empty match one character is copied through unchanged
//   - When nothing matches, the subject itself is returned
//
// Any type with NumGroups and MatchAt can serve as a Pattern, which keeps
// the regex engine swappable and easy to fake in tests. See the pattern
// subpackage for ready-made implementations.
package resub

// defaultEngine backs the package-level functions.
var defaultEngine = MustNew(DefaultConfig())

// Replace replaces the leftmost match of p in subject using the default
// configuration. See Engine.Replace.
func Replace(subject []byte, p Pattern, template string) ([]byte, bool, error) {
	return defaultEngine.Replace(subject, p, template)
}

// ReplaceString is like Replace but operates on strings.
//
// Example:
//
//	re := pattern.MustCompile(`world`)
//	out, ok, _ := resub.ReplaceString("hello world", re, `\0!`)
//	// out = "hello world!", ok = true
func ReplaceString(subject string, p Pattern, template string) (string, bool, error) {
	return defaultEngine.ReplaceString(subject, p, template)
}

// GlobalReplace replaces every non-overlapping match of p in subject using
// the default configuration. See Engine.GlobalReplace.
func GlobalReplace(subject []byte, p Pattern, template string) ([]byte, int, error) {
	return defaultEngine.GlobalReplace(subject, p, template)
}

// GlobalReplaceString is like GlobalReplace but operates on strings.
//
// Example:
//
//	re := pattern.MustCompile(`x*`)
//	out, n, _ := resub.GlobalReplaceString("abc", re, "-")
//	// out = "-a-b-c-", n = 4
func GlobalReplaceString(subject string, p Pattern, template string) (string, int, error) {
	return defaultEngine.GlobalReplaceString(subject, p, template)
}

// Extract returns the expansion of template for the leftmost match of p.
// See Engine.Extract.
func Extract(subject []byte, p Pattern, template string) ([]byte, bool, error) {
	return defaultEngine.Extract(subject, p, template)
}

// ExtractString is like Extract but operates on strings.
func ExtractString(subject string, p Pattern, template string) (string, bool, error) {
	return defaultEngine.ExtractString(subject, p, template)
}

// CheckTemplate reports whether template is well formed and only
// references groups p has. It returns nil or a *TemplateError.
func CheckTemplate(template string, p Pattern) error {
	t, err := ParseTemplate(template)
	if err != nil {
		return err
	}
	return t.Check(p.NumGroups() + 1)
}

// MaxSubmatch returns the highest group index referenced by template,
// 0 if it references none, or -1 if the template is malformed.
//
// Example:
//
//	resub.MaxSubmatch(`\2 and \1`) // 2
//	resub.MaxSubmatch(`plain`)      // 0
func MaxSubmatch(template string) int {
	t, err := ParseTemplate(template)
	if err != nil {
		return -1
	}
	return t.MaxGroup()
}
