package protocol

import "strings"

const (
	// SeparatorCell joins scalar argument tokens and elements within one cell group.
	SeparatorCell = " "
	// SeparatorList joins parallel cell groups produced by a list-valued parameter.
	SeparatorList = "|"
	// SeparatorPair joins a parameter key to its value.
	SeparatorPair = "="

	// StatusMarker is the reserved first-field token of a terminal reply line.
	StatusMarker = "error"
	// NotifyMarker is the reserved first-field token of an asynchronous event line.
	NotifyMarker = "notify"
)

// DefaultGreetings are the greeting-line prefixes accepted on connect.
// Deployments may extend the set through client configuration.
var DefaultGreetings = []string{"TS3", "TeaSpeak"}

// Verb returns the first cell-separated field of a line.
func Verb(line string) string {
	if i := strings.Index(line, SeparatorCell); i >= 0 {
		return line[:i]
	}
	return line
}

// IsStatus reports whether line is a terminal status line.
func IsStatus(line string) bool {
	return Verb(line) == StatusMarker
}

// IsNotification reports whether line is an asynchronous event line.
func IsNotification(line string) bool {
	return strings.HasPrefix(Verb(line), NotifyMarker)
}

// GreetingAccepted reports whether a greeting line starts with one of the
// accepted protocol identifiers.
func GreetingAccepted(line string, accepted []string) bool {
	for _, prefix := range accepted {
		if prefix != "" && strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
