package resub

import (
	"errors"
	"fmt"
)

// ErrTemplate is the sentinel matched by every *TemplateError.
//
//	if errors.Is(err, resub.ErrTemplate) { ... }
var ErrTemplate = errors.New("invalid replacement template")

// TemplateError reports a malformed replacement template or a back-reference
// to a capture group the pattern does not have.
//
// Template errors are detected before any matching starts, so an operation
// that fails with a TemplateError never returns partial output.
type TemplateError struct {
	// Template is the offending template text.
	Template string

	// Offset is the byte offset of the bad escape within Template.
	Offset int

	// Group is the referenced group index, or -1 if the error is not about
	// a group reference.
	Group int

	// NumGroups is the number of slots the pattern provides (capture groups
	// plus the whole match), or -1 if unknown.
	NumGroups int

	// Reason describes the problem.
	Reason string
}

// Error implements the error interface.
func (e *TemplateError) Error() string {
	if e.Group >= 0 {
		return fmt.Sprintf("resub: template %q: %s at offset %d (group \\%d, pattern has %d)",
			e.Template, e.Reason, e.Offset, e.Group, e.NumGroups)
	}
	return fmt.Sprintf("resub: template %q: %s at offset %d", e.Template, e.Reason, e.Offset)
}

// Is makes errors.Is(err, ErrTemplate) report true.
func (e *TemplateError) Is(target error) bool {
	return target == ErrTemplate
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "resub: invalid config: " + e.Field + ": " + e.Message
}
