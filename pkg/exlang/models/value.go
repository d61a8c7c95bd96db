// Package models defines the in-memory spreadsheet model built by the
// EXLang compiler: workbook, sheets, addresses, ranges, typed cell
// values, merges and styles. The model is independent of any on-disk
// spreadsheet format.
package models

import (
	"fmt"
	"strconv"
)

// ValueKind discriminates the closed set of cell value types.
type ValueKind int

const (
	// KindText is a plain string value.
	KindText ValueKind = iota
	// KindInteger is a whole number.
	KindInteger
	// KindFloat is a number with a fractional part.
	KindFloat
	// KindBoolean is a true/false value.
	KindBoolean
	// KindFormula is an opaque formula string carried verbatim,
	// including the leading '='. Formulas are never evaluated.
	KindFormula
)

// Value is a tagged variant over the five cell value types.
// Exactly one of the payload fields is meaningful, selected by Kind.
type Value struct {
	Kind  ValueKind
	Str   string
	Int   int64
	Float float64
	Bool  bool
}

// Text returns a text value.
func Text(s string) Value { return Value{Kind: KindText, Str: s} }

// Integer returns a whole-number value.
func Integer(n int64) Value { return Value{Kind: KindInteger, Int: n} }

// Float returns a floating-point value.
func Float(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// Boolean returns a true/false value.
func Boolean(b bool) Value { return Value{Kind: KindBoolean, Bool: b} }

// Formula returns a formula value. The text is kept verbatim.
func Formula(s string) Value { return Value{Kind: KindFormula, Str: s} }

// String renders the value for diagnostics and logging.
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return strconv.Quote(v.Str)
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindBoolean:
		return strconv.FormatBool(v.Bool)
	case KindFormula:
		return v.Str
	}
	return fmt.Sprintf("models.Value(kind=%d)", int(v.Kind))
}
