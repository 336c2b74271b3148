package pattern

import "time"

// Config controls pattern compilation.
//
// Example:
//
//	config := pattern.DefaultConfig()
//	config.CaseInsensitive = true
//	config.EnableLiteral = false // never use Aho-Corasick
//	re, err := pattern.CompileWithConfig(`foo|bar`, config)
type Config struct {
	// CaseInsensitive makes the whole pattern match without regard to case,
	// like a leading (?i).
	// Default: false
	CaseInsensitive bool

	// Multiline makes ^ and $ match at line boundaries, like (?m).
	// Default: false
	Multiline bool

	// DotNL lets . match \n, like (?s).
	// Default: false
	DotNL bool

	// Strategy forces a matcher. UseAuto picks one from the pattern.
	// Default: UseAuto
	Strategy Strategy

	// EnableLiteral allows literal alternations to run on Aho-Corasick.
	// Default: true
	EnableLiteral bool

	// EnableBacktrack allows patterns with features RE2 syntax lacks
	// (look-around, back-references) to compile on the backtracking engine.
	// Such patterns lose the linear-time guarantee.
	// Default: true
	EnableBacktrack bool

	// MinLiterals is the smallest number of alternatives for which a literal
	// alternation is worth an Aho-Corasick automaton. Single literals are
	// served well by the stdlib engine's own prefix scan.
	// Default: 2
	MinLiterals int

	// MaxLiterals caps literal expansion. Patterns expanding to more
	// literals fall back to the stdlib engine.
	// Default: 256
	MaxLiterals int

	// MaxClassSize is the largest character class expanded into literals,
	// so `ab[cd]` becomes "abc", "abd" but `ab[a-z]` is left alone.
	// Default: 10
	MaxClassSize int

	// MatchTimeout bounds a single match attempt on the backtracking
	// engine. An attempt that runs out of time reports no match and is
	// counted by Regexp.Timeouts. Zero means no bound.
	// Default: 0
	MatchTimeout time.Duration
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Strategy:        UseAuto,
		EnableLiteral:   true,
		EnableBacktrack: true,
		MinLiterals:     2,
		MaxLiterals:     256,
		MaxClassSize:    10,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - MinLiterals: 1 to MaxLiterals
//   - MaxLiterals: 1 to 10,000
//   - MaxClassSize: 0 to 256
//   - MatchTimeout: not negative
func (c Config) Validate() error {
	if c.Strategy < UseAuto || c.Strategy > UseRE2 {
		return &ConfigError{Field: "Strategy", Message: "unknown strategy"}
	}
	if c.MaxLiterals < 1 || c.MaxLiterals > 10_000 {
		return &ConfigError{Field: "MaxLiterals", Message: "must be between 1 and 10,000"}
	}
	if c.MinLiterals < 1 || c.MinLiterals > c.MaxLiterals {
		return &ConfigError{Field: "MinLiterals", Message: "must be between 1 and MaxLiterals"}
	}
	if c.MaxClassSize < 0 || c.MaxClassSize > 256 {
		return &ConfigError{Field: "MaxClassSize", Message: "must be between 0 and 256"}
	}
	if c.MatchTimeout < 0 {
		return &ConfigError{Field: "MatchTimeout", Message: "must not be negative"}
	}
	return nil
}
