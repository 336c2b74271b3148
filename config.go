package resub

// Advance selects how far GlobalReplace steps past an empty match.
type Advance int

const (
	// AdvanceRune steps over one UTF-8 encoded code point. A byte that does
	// not start a valid encoding counts as one character on its own, so
	// arbitrary binary input is handled.
	AdvanceRune Advance = iota

	// AdvanceByte steps over exactly one byte. Use this for Latin-1 or
	// binary subjects where a multi-byte sequence is not one character.
	AdvanceByte
)

// String returns a human-readable name for the mode.
func (a Advance) String() string {
	switch a {
	case AdvanceRune:
		return "rune"
	case AdvanceByte:
		return "byte"
	default:
		return "unknown"
	}
}

// ParseAdvance returns the mode with the given String name.
func ParseAdvance(name string) (Advance, bool) {
	switch name {
	case "rune":
		return AdvanceRune, true
	case "byte":
		return AdvanceByte, true
	}
	return AdvanceRune, false
}

// Config controls Engine behavior.
//
// Example:
//
//	config := resub.DefaultConfig()
//	config.Advance = resub.AdvanceByte
//	config.MaxReplacements = 100
//	engine, err := resub.New(config)
type Config struct {
	// Advance is the step taken past an empty match by GlobalReplace.
	// Default: AdvanceRune
	Advance Advance

	// MaxReplacements caps the number of substitutions GlobalReplace makes.
	// Text after the last allowed replacement is copied unchanged.
	// Zero means no limit.
	// Default: 0
	MaxReplacements int
}

// DefaultConfig returns the configuration used by the package-level
// functions: code-point stepping and no replacement limit.
func DefaultConfig() Config {
	return Config{
		Advance:         AdvanceRune,
		MaxReplacements: 0,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.Advance != AdvanceRune && c.Advance != AdvanceByte {
		return &ConfigError{
			Field:   "Advance",
			Message: "must be AdvanceRune or AdvanceByte",
		}
	}
	if c.MaxReplacements < 0 {
		return &ConfigError{
			Field:   "MaxReplacements",
			Message: "must not be negative",
		}
	}
	return nil
}
