package compiler

import (
	"strconv"
	"strings"
)

// Iteration placeholders recognized inside repeat fragments.
const (
	placeholderIndex     = "{{i}}"  // 1-based iteration index
	placeholderIndexZero = "{{i0}}" // 0-based iteration index
)

// ExpandTemplate substitutes the iteration placeholders in a repeat
// fragment with the given 1-based iteration index. Substitution is
// literal text replacement; unrecognized tokens are left untouched.
func ExpandTemplate(text string, iteration int) string {
	text = strings.ReplaceAll(text, placeholderIndexZero, strconv.Itoa(iteration-1))
	text = strings.ReplaceAll(text, placeholderIndex, strconv.Itoa(iteration))
	return text
}
