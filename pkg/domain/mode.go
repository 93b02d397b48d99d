package domain

import "fmt"

// ContextMode tags the trust/origin level of the text being expanded.
// It is propagated unchanged into nested expansions.
type ContextMode string

const (
	// ModeTopLevel marks text expanded directly on behalf of the user.
	ModeTopLevel ContextMode = "top_level"
	// ModeUserInternal marks text expanded from inside a user template, e.g. an include.
	ModeUserInternal ContextMode = "user_internal"
	// ModeInternal marks text produced by the engine itself.
	ModeInternal ContextMode = "internal"
)

// ParseContextMode converts a string into a ContextMode.
// The empty string maps to ModeTopLevel.
func ParseContextMode(s string) (ContextMode, error) {
	switch ContextMode(s) {
	case "":
		return ModeTopLevel, nil
	case ModeTopLevel, ModeUserInternal, ModeInternal:
		return ContextMode(s), nil
	default:
		return "", fmt.Errorf("unknown context mode %q", s)
	}
}

func (m ContextMode) String() string {
	return string(m)
}
