package compiler

import (
	"strconv"
	"strings"

	"github.com/ukaji3/exlang-go/pkg/exlang/models"
)

// Allowed type hint names for xcell.t / xrange.t.
const (
	HintString = "string"
	HintNumber = "number"
	HintBool   = "bool"
	HintDate   = "date"
)

// InferValue converts raw attribute or fragment text into a typed cell
// value, steered by an optional type hint ("" means none).
//
// Formulas (text starting with '=') always win over any hint. A hint
// that does not fit the text falls back to text rather than failing.
func InferValue(raw, hint string) models.Value {
	if strings.HasPrefix(raw, "=") {
		return models.Formula(raw)
	}

	switch hint {
	case HintString:
		return models.Text(raw)
	case HintBool:
		switch strings.ToUpper(strings.TrimSpace(raw)) {
		case "TRUE", "YES":
			return models.Boolean(true)
		case "FALSE", "NO":
			return models.Boolean(false)
		}
		return models.Text(raw)
	case HintNumber:
		s := strings.TrimSpace(raw)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return models.Integer(n)
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return models.Float(f)
		}
		return models.Text(raw)
	case HintDate:
		// Date parsing is a non-goal; dates stay text.
		return models.Text(raw)
	}

	trimmed := strings.TrimSpace(raw)
	if matchInteger(trimmed) {
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return models.Integer(n)
		}
		// Out of int64 range; the float pattern below cannot match a
		// pure digit run, so this falls through to text.
	}
	if matchFloat(trimmed) {
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return models.Float(f)
		}
	}
	return models.Text(raw)
}

// matchInteger reports whether s is [+-]?digits.
func matchInteger(s string) bool {
	s = trimSign(s)
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// matchFloat reports whether s is [+-]?digits?.digits. The fractional
// part is required: "123." is not a float.
func matchFloat(s string) bool {
	s = trimSign(s)
	dot := strings.IndexByte(s, '.')
	if dot < 0 || dot == len(s)-1 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if i == dot {
			continue
		}
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func trimSign(s string) string {
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		return s[1:]
	}
	return s
}
