package exlang

import "strings"

// ValidationError aggregates every schema violation found in a
// document. It is produced before any model construction begins; when
// it is returned, no model was built and no sink was invoked.
type ValidationError struct {
	// Errors holds the complete violation list, ordered across
	// elements in document order.
	Errors []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("invalid EXLang document:")
	for _, msg := range e.Errors {
		b.WriteString("\n  - ")
		b.WriteString(msg)
	}
	return b.String()
}
