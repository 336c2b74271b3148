package pattern

// QuoteMeta returns a string that escapes all regular expression
// metacharacters inside the argument text; the returned string is a pattern
// matching the literal text.
//
// Example:
//
//	re := pattern.MustCompile(pattern.QuoteMeta("1.5+2"))
//	re.MatchString("1.5+2") // true
//	re.MatchString("155+2") // false
func QuoteMeta(s string) string {
	const special = `\.+*?()|[]{}^$`

	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, len(s)+n)
	j := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf[j] = '\\'
			j++
		}
		buf[j] = s[i]
		j++
	}
	return string(buf)
}

func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}
