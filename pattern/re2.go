package pattern

import re2 "github.com/wasilibs/go-re2"

// compileRE2 compiles expr with the RE2 library itself, run as WebAssembly.
// It has the same search API and syntax as Go's regexp, so it plugs into a
// prefixMatcher unchanged.
func compileRE2(expr string) (searcher, error) {
	re, err := re2.Compile(expr)
	if err != nil {
		return nil, err
	}
	return re, nil
}
