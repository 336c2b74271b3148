package pattern

import (
	"errors"
	"regexp/syntax"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStrategySelection(t *testing.T) {
	tests := []struct {
		pattern string
		want    Strategy
	}{
		// Literal alternations go to Aho-Corasick.
		{`foo|bar`, UseLiteral},
		{`foo|bar|baz`, UseLiteral},
		{`ab[cd]`, UseLiteral},
		{`a|b|c`, UseLiteral},
		{`[aeiou]`, UseLiteral},
		{`ab|bc`, UseLiteral},

		// Everything else in RE2 syntax runs on regexp.
		{`,`, UseStdlib},
		{`hello`, UseStdlib},
		{`foo|foobar`, UseStdlib},
		{`abcd|bc`, UseStdlib},
		{`abcde|cd`, UseStdlib},
		{`(foo|bar)`, UseStdlib},
		{`(?i)foo|bar`, UseStdlib},
		{`[a-z]x|y`, UseStdlib},
		{`x*`, UseStdlib},
		{`^foo|bar`, UseStdlib},
		{`\bfoo\b`, UseStdlib},
		{`(?m)^\w+`, UseStdlib},

		// Look-around and back-references need backtracking.
		{`foo(?=bar)`, UseBacktrack},
		{`(?<=a)b`, UseBacktrack},
		{`(\w)\1`, UseBacktrack},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			re, err := Compile(tt.pattern)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", tt.pattern, err)
			}
			if got := re.Strategy(); got != tt.want {
				t.Errorf("Compile(%q).Strategy() = %v, want %v", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestForcedStrategy(t *testing.T) {
	tests := []struct {
		pattern  string
		strategy Strategy
		wantErr  error
	}{
		{`foo|bar`, UseStdlib, nil},
		{`foo|bar`, UseBacktrack, nil},
		{`hello`, UseLiteral, nil},
		{`a.b`, UseLiteral, ErrNotLiteral},
		{`abcd|bc`, UseLiteral, ErrNotLiteral},
		{`(\w+)@(\w+)`, UseBacktrack, nil},
		{`\bfoo|bar`, UseRE2, nil},
	}

	for _, tt := range tests {
		config := DefaultConfig()
		config.Strategy = tt.strategy
		re, err := CompileWithConfig(tt.pattern, config)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CompileWithConfig(%q, %v) error = %v, want %v", tt.pattern, tt.strategy, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("CompileWithConfig(%q, %v) error: %v", tt.pattern, tt.strategy, err)
			continue
		}
		if re.Strategy() != tt.strategy {
			t.Errorf("CompileWithConfig(%q, %v).Strategy() = %v", tt.pattern, tt.strategy, re.Strategy())
		}
	}
}

func TestBacktrackDisabled(t *testing.T) {
	config := DefaultConfig()
	config.EnableBacktrack = false

	_, err := CompileWithConfig(`foo(?=bar)`, config)
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want *CompileError", err)
	}
	var se *syntax.Error
	if !errors.As(err, &se) {
		t.Errorf("error = %v, want wrapped *syntax.Error", err)
	}
	if ce.Pattern != `foo(?=bar)` {
		t.Errorf("CompileError.Pattern = %q", ce.Pattern)
	}
}

func TestForcedStdlibRejectsBacktrackSyntax(t *testing.T) {
	for _, s := range []Strategy{UseStdlib, UseRE2} {
		config := DefaultConfig()
		config.Strategy = s
		if _, err := CompileWithConfig(`(a)\1`, config); err == nil {
			t.Errorf("%v accepted a back-reference", s)
		}
	}
}

func TestInvalidPattern(t *testing.T) {
	for _, expr := range []string{`(`, `a**`, `[z-a]`, `(?<name`} {
		if _, err := Compile(expr); err == nil {
			t.Errorf("Compile(%q) succeeded, want error", expr)
		}
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile did not panic on invalid pattern")
		}
	}()
	MustCompile(`(`)
}

func TestParseStrategy(t *testing.T) {
	for s := UseAuto; s <= UseRE2; s++ {
		got, ok := ParseStrategy(s.String())
		if !ok || got != s {
			t.Errorf("ParseStrategy(%q) = %v, %v", s.String(), got, ok)
		}
	}
	if _, ok := ParseStrategy("dfa"); ok {
		t.Error(`ParseStrategy("dfa") succeeded`)
	}
	if got := Strategy(42).String(); got != "unknown" {
		t.Errorf("Strategy(42).String() = %q", got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"default", func(*Config) {}, ""},
		{"strategy", func(c *Config) { c.Strategy = 9 }, "Strategy"},
		{"max literals zero", func(c *Config) { c.MaxLiterals = 0 }, "MaxLiterals"},
		{"max literals huge", func(c *Config) { c.MaxLiterals = 20_000 }, "MaxLiterals"},
		{"min above max", func(c *Config) { c.MinLiterals = 300 }, "MinLiterals"},
		{"class size", func(c *Config) { c.MaxClassSize = -1 }, "MaxClassSize"},
		{"timeout", func(c *Config) { c.MatchTimeout = -1 }, "MatchTimeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(&config)
			err := config.Validate()
			if tt.field == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if ce.Field != tt.field {
				t.Errorf("ConfigError.Field = %q, want %q", ce.Field, tt.field)
			}
		})
	}
}

func TestCompileRejectsInvalidConfig(t *testing.T) {
	config := DefaultConfig()
	config.MaxLiterals = 0
	if _, err := CompileWithConfig(`a`, config); err == nil {
		t.Error("CompileWithConfig accepted invalid config")
	}
}

func TestSyntaxFlags(t *testing.T) {
	config := DefaultConfig()
	config.CaseInsensitive = true
	config.Multiline = true
	config.DotNL = true

	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{`hello`, "HeLLo", true},
		{`^two`, "one\ntwo", true},
		{`a.b`, "a\nb", true},
	}
	for _, tt := range tests {
		for _, strategy := range []Strategy{UseStdlib, UseBacktrack, UseRE2} {
			c := config
			c.Strategy = strategy
			re, err := CompileWithConfig(tt.pattern, c)
			if err != nil {
				t.Fatalf("CompileWithConfig(%q, %v): %v", tt.pattern, strategy, err)
			}
			if got := re.MatchString(tt.input); got != tt.want {
				t.Errorf("%v: %q matches %q = %v, want %v", strategy, tt.pattern, tt.input, got, tt.want)
			}
		}
	}
}

func TestLiteralsAccessor(t *testing.T) {
	re := MustCompile(`foo|bar`)
	want := [][]byte{[]byte("foo"), []byte("bar")}
	if diff := cmp.Diff(want, re.Literals()); diff != "" {
		t.Errorf("Literals() mismatch (-want +got):\n%s", diff)
	}
	if MustCompile(`fo+`).Literals() != nil {
		t.Error("Literals() of a stdlib pattern is not nil")
	}
}

func TestCompileErrorMessage(t *testing.T) {
	_, err := Compile(`a(`)
	if err == nil {
		t.Fatal("Compile(`a(`) succeeded")
	}
	want := `pattern: compiling "a(": `
	if got := err.Error(); len(got) < len(want) || got[:len(want)] != want {
		t.Errorf("Error() = %q, want prefix %q", got, want)
	}
}
