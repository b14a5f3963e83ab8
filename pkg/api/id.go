package api

import (
	"regexp"
	"strings"
)

type (
	// FlowID is a unique identifier for a flow configuration
	FlowID string

	// ListenerID is a unique identifier for a listener within a flow
	ListenerID string

	// TaskID is a unique identifier for a task in the crew catalog
	TaskID string

	// CrewID is a unique identifier for a crew in the catalog
	CrewID string
)

// InvalidIDChars matches characters not permitted in sanitized IDs and
// file names. Valid characters are: letters, digits, underscore, dot,
// hyphen, plus, space
var InvalidIDChars = regexp.MustCompile(`[^a-zA-Z0-9_.\-+ ]`)

// SanitizeID lowercases an ID, removes invalid characters, replaces spaces
// with hyphens, and trims leading and trailing hyphens
func SanitizeID[T ~string](id T) T {
	lower := strings.ToLower(string(id))
	sanitized := InvalidIDChars.ReplaceAllString(lower, "")
	sanitized = strings.ReplaceAll(sanitized, " ", "-")
	return T(strings.Trim(sanitized, "-"))
}
