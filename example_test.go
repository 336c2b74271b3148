package resub_test

import (
	"fmt"

	"github.com/coregx/resub"
	"github.com/coregx/resub/pattern"
)

// ExampleReplaceString demonstrates a single substitution with
// back-references.
func ExampleReplaceString() {
	re := pattern.MustCompile(`(\d+)-(\d+)-(\d+)`)
	out, ok, err := resub.ReplaceString("due 2024-01-02", re, `\3/\2/\1`)
	if err != nil {
		panic(err)
	}
	fmt.Println(out, ok)
	// Output: due 02/01/2024 true
}

// ExampleGlobalReplaceString demonstrates replacing every match.
func ExampleGlobalReplaceString() {
	re := pattern.MustCompile(`,`)
	out, n, _ := resub.GlobalReplaceString("a,b,,c", re, ";")
	fmt.Println(out, n)
	// Output: a;b;;c 3
}

// ExampleGlobalReplaceString_emptyMatches shows how empty matches are
// interleaved with the text.
func ExampleGlobalReplaceString_emptyMatches() {
	re := pattern.MustCompile(`x*`)
	out, n, _ := resub.GlobalReplaceString("abc", re, "-")
	fmt.Println(out, n)
	// Output: -a-b-c- 4
}

// ExampleExtractString demonstrates rewriting only the matched text.
func ExampleExtractString() {
	re := pattern.MustCompile(`(\w+)@(\w+)\.com`)
	out, _, _ := resub.ExtractString("contact: kim@example.com", re, `\1 at \2`)
	fmt.Println(out)
	// Output: kim at example
}

// ExampleEngine demonstrates a custom configuration.
func ExampleEngine() {
	config := resub.DefaultConfig()
	config.MaxReplacements = 2
	engine := resub.MustNew(config)

	re := pattern.MustCompile(`\d`)
	out, n, _ := engine.GlobalReplaceString("1 2 3 4", re, "#")
	fmt.Println(out, n)
	// Output: # # 3 4 2
}

// ExampleCheckTemplate demonstrates validating a template up front.
func ExampleCheckTemplate() {
	re := pattern.MustCompile(`(a)(b)`)
	fmt.Println(resub.CheckTemplate(`\2\1`, re) == nil)
	fmt.Println(resub.CheckTemplate(`\9`, re) != nil)
	// Output:
	// true
	// true
}
