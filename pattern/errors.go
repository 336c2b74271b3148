package pattern

import (
	"errors"
	"fmt"
)

// ErrNotLiteral is returned when UseLiteral is forced on a pattern that is
// not a plain literal alternation.
var ErrNotLiteral = errors.New("pattern is not a literal alternation")

// CompileError wraps compilation errors with the pattern that caused them.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("pattern: compiling %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "pattern: invalid config: " + e.Field + ": " + e.Message
}
