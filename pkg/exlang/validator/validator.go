// Package validator performs schema validation of a parsed EXLang
// document tree. It checks attribute presence and format only; address
// and range semantics are resolved later, at compile time.
package validator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/exlang-go/pkg/exlang/compiler"
	"github.com/ukaji3/exlang-go/pkg/exlang/markup"
)

var allowedTypeHints = map[string]bool{
	compiler.HintNumber: true,
	compiler.HintString: true,
	compiler.HintBool:   true,
	compiler.HintDate:   true,
}

// Validate walks the document tree and returns the complete list of
// schema violations. An empty list means the document is accepted.
//
// Validation never stops at the first error, with a single exception:
// a wrong root tag returns immediately with exactly one error, since a
// non-xworkbook document cannot be meaningfully validated further.
func Validate(root *markup.Element) []string {
	var errs []string

	if root.Tag != compiler.TagWorkbook {
		return []string{fmt.Sprintf("Root tag must be 'xworkbook' but found '%s'", root.Tag)}
	}

	sheets := root.Find(compiler.TagSheet)

	// Sheet-name pre-pass: auto-generated names must not collide with
	// any explicit name anywhere in the document, and explicit names
	// must be unique.
	explicit := make(map[string]bool)
	for _, sheet := range sheets {
		name, ok := sheet.Attr("name")
		if !ok {
			continue
		}
		if explicit[name] {
			errs = append(errs, fmt.Sprintf("duplicate sheet name '%s'", name))
		}
		explicit[name] = true
	}
	autoN := 0
	for _, sheet := range sheets {
		if _, ok := sheet.Attr("name"); ok {
			continue
		}
		autoN++
		auto := fmt.Sprintf("Sheet%d", autoN)
		if explicit[auto] {
			errs = append(errs, fmt.Sprintf("auto-generated sheet name '%s' collides with explicit sheet name", auto))
		}
	}

	for _, sheet := range sheets {
		for _, el := range sheet.Children {
			switch el.Tag {
			case compiler.TagRow:
				errs = append(errs, validateRow(el)...)
			case compiler.TagRepeat:
				errs = append(errs, validateRepeat(el)...)
			case compiler.TagCell:
				errs = append(errs, validateCell(el)...)
			case compiler.TagRange:
				errs = append(errs, validateRange(el)...)
			case compiler.TagMerge:
				errs = append(errs, validateMerge(el)...)
			case compiler.TagStyle:
				errs = append(errs, validateStyle(el)...)
			}
		}
	}

	return errs
}

func validateRow(el *markup.Element) []string {
	var errs []string
	if _, ok := el.Attr("r"); !ok {
		errs = append(errs, "xrow missing required attribute 'r'")
	}
	return errs
}

func validateRepeat(el *markup.Element) []string {
	var errs []string
	times, ok := el.Attr("times")
	if !ok {
		errs = append(errs, "xrepeat missing required attribute 'times'")
	} else if n, err := strconv.Atoi(strings.TrimSpace(times)); err != nil || n < 1 {
		errs = append(errs, fmt.Sprintf("xrepeat has invalid times='%s' (must be an integer >= 1)", times))
	}
	if dir, ok := el.Attr("direction"); ok {
		if dir != compiler.DirectionDown && dir != compiler.DirectionRight {
			errs = append(errs, fmt.Sprintf("xrepeat has invalid direction='%s' (must be 'down' or 'right')", dir))
		}
	}
	for _, child := range el.Children {
		switch child.Tag {
		case compiler.TagValue:
		case compiler.TagRepeat:
			errs = append(errs, "xrepeat must not contain a nested xrepeat")
		default:
			errs = append(errs, fmt.Sprintf("xrepeat contains unexpected child element '%s' (only xv is allowed)", child.Tag))
		}
	}
	return errs
}

func validateCell(el *markup.Element) []string {
	var errs []string
	if _, ok := el.Attr("addr"); !ok {
		errs = append(errs, "xcell missing required attribute 'addr'")
	}
	if _, ok := el.Attr("v"); !ok {
		errs = append(errs, "xcell missing required attribute 'v'")
	}
	if t, ok := el.Attr("t"); ok && !allowedTypeHints[t] {
		errs = append(errs, fmt.Sprintf("xcell at %s has invalid type hint t='%s'",
			el.AttrDefault("addr", "?"), t))
	}
	return errs
}

func validateRange(el *markup.Element) []string {
	var errs []string
	for _, attr := range []string{"from", "to", "fill"} {
		if _, ok := el.Attr(attr); !ok {
			errs = append(errs, fmt.Sprintf("xrange missing required attribute '%s'", attr))
		}
	}
	if t, ok := el.Attr("t"); ok && !allowedTypeHints[t] {
		errs = append(errs, fmt.Sprintf("xrange from %s to %s has invalid type hint t='%s'",
			el.AttrDefault("from", "?"), el.AttrDefault("to", "?"), t))
	}
	return errs
}

func validateMerge(el *markup.Element) []string {
	addr, ok := el.Attr("addr")
	if !ok {
		return []string{"xmerge missing required attribute 'addr'"}
	}
	from, to, isRange := strings.Cut(addr, ":")
	if !isRange || from == "" || to == "" || strings.Contains(to, ":") {
		return []string{fmt.Sprintf("xmerge addr='%s' must be a range like 'A1:B2'", addr)}
	}
	return nil
}

func validateStyle(el *markup.Element) []string {
	var errs []string
	if _, ok := el.Attr("addr"); !ok {
		errs = append(errs, "xstyle missing required attribute 'addr'")
	}
	for _, attr := range []string{"bold", "italic", "underline"} {
		if v, ok := el.Attr(attr); ok && v != "true" && v != "false" {
			errs = append(errs, fmt.Sprintf("xstyle at %s has invalid %s='%s' (must be 'true' or 'false')",
				el.AttrDefault("addr", "?"), attr, v))
		}
	}
	return errs
}
