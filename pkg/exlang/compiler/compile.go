package compiler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/exlang-go/pkg/exlang/markup"
	"github.com/ukaji3/exlang-go/pkg/exlang/models"
)

// ErrInvalidRepeatCount indicates an xrepeat times attribute that is
// not a positive integer. Validation rejects such documents before
// compilation; the compiler still refuses them on its own.
var ErrInvalidRepeatCount = errors.New("invalid repeat count")

// Element and attribute names of the EXLang grammar.
const (
	TagWorkbook = "xworkbook"
	TagSheet    = "xsheet"
	TagRow      = "xrow"
	TagRepeat   = "xrepeat"
	TagCell     = "xcell"
	TagRange    = "xrange"
	TagMerge    = "xmerge"
	TagStyle    = "xstyle"
	TagValue    = "xv"
)

// Repeat directions.
const (
	DirectionDown  = "down"
	DirectionRight = "right"
)

// Compile builds a Workbook from a schema-validated element tree.
//
// Placements are applied kind by kind across each sheet, not in
// document order: rows, then range fills, then repeats, then explicit
// cells, then merges, then styles. Later kinds land on top of earlier
// ones, so an explicit cell always wins over any bulk mechanism no
// matter where it appears in the document.
//
// Address and range errors surface here, not in validation, and stop
// compilation at the first offender.
func Compile(root *markup.Element) (*models.Workbook, error) {
	wb := &models.Workbook{}
	autoN := 0
	for _, el := range root.Find(TagSheet) {
		name, ok := el.Attr("name")
		if !ok {
			// Auto-names count unnamed sheets only; the validator has
			// already rejected collisions with explicit names.
			autoN++
			name = fmt.Sprintf("Sheet%d", autoN)
		}
		sheet := wb.AddSheet(name)
		if err := compileSheet(sheet, el); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
	}
	return wb, nil
}

func compileSheet(sheet *models.Sheet, el *markup.Element) error {
	for _, row := range el.Find(TagRow) {
		if err := applyRow(sheet, row); err != nil {
			return err
		}
	}
	for _, rng := range el.Find(TagRange) {
		if err := applyRange(sheet, rng); err != nil {
			return err
		}
	}
	for _, rep := range el.Find(TagRepeat) {
		if err := applyRepeat(sheet, rep); err != nil {
			return err
		}
	}
	for _, cell := range el.Find(TagCell) {
		if err := applyCell(sheet, cell); err != nil {
			return err
		}
	}
	for _, merge := range el.Find(TagMerge) {
		if err := applyMerge(sheet, merge); err != nil {
			return err
		}
	}
	for _, style := range el.Find(TagStyle) {
		if err := applyStyle(sheet, style); err != nil {
			return err
		}
	}
	return nil
}

// applyRow places the ordered xv fragments of an xrow left to right,
// starting at the row's start column (default A).
func applyRow(sheet *models.Sheet, el *markup.Element) error {
	r, _ := el.Attr("r")
	row, err := ParseRowIndex(r)
	if err != nil {
		return err
	}
	col, err := ColumnIndex(el.AttrDefault("c", "A"))
	if err != nil {
		return err
	}
	for i, xv := range el.Find(TagValue) {
		v := InferValue(xv.Text, "")
		sheet.SetValue(models.Address{Row: row, Col: col + i}, v)
	}
	return nil
}

// applyRange fills every cell of the rectangle with one inferred value.
// The value is computed once; a formula fill is replicated verbatim,
// not adjusted per cell.
func applyRange(sheet *models.Sheet, el *markup.Element) error {
	from, _ := el.Attr("from")
	to, _ := el.Attr("to")
	rng, err := ParseRange(from, to)
	if err != nil {
		return err
	}
	fill, _ := el.Attr("fill")
	v := InferValue(fill, el.AttrDefault("t", ""))
	for row := rng.FromRow; row <= rng.ToRow; row++ {
		for col := rng.FromCol; col <= rng.ToCol; col++ {
			sheet.SetValue(models.Address{Row: row, Col: col}, v)
		}
	}
	return nil
}

// applyRepeat lays out the template fragments once per iteration,
// advancing the anchor along the repeat direction and offsetting the
// fragments along the orthogonal axis.
func applyRepeat(sheet *models.Sheet, el *markup.Element) error {
	timesAttr, _ := el.Attr("times")
	times, err := strconv.Atoi(strings.TrimSpace(timesAttr))
	if err != nil || times < 1 {
		return fmt.Errorf("repeat count %q: %w", timesAttr, ErrInvalidRepeatCount)
	}
	direction := el.AttrDefault("direction", DirectionDown)
	startRow := 1
	if r, ok := el.Attr("r"); ok {
		if startRow, err = ParseRowIndex(r); err != nil {
			return err
		}
	}
	startCol, err := ColumnIndex(el.AttrDefault("c", "A"))
	if err != nil {
		return err
	}
	frags := el.Find(TagValue)
	for i := 1; i <= times; i++ {
		for j, frag := range frags {
			text := ExpandTemplate(frag.Text, i)
			v := InferValue(text, "")
			var addr models.Address
			if direction == DirectionRight {
				addr = models.Address{Row: startRow + j, Col: startCol + (i - 1)}
			} else {
				addr = models.Address{Row: startRow + (i - 1), Col: startCol + j}
			}
			sheet.SetValue(addr, v)
		}
	}
	return nil
}

// applyCell writes one inferred value, unconditionally overwriting
// whatever an earlier stage placed there.
func applyCell(sheet *models.Sheet, el *markup.Element) error {
	addrAttr, _ := el.Attr("addr")
	addr, err := ParseCellAddress(addrAttr)
	if err != nil {
		return err
	}
	raw, _ := el.Attr("v")
	sheet.SetValue(addr, InferValue(raw, el.AttrDefault("t", "")))
	return nil
}

// applyMerge records the merged region; cell values are untouched.
func applyMerge(sheet *models.Sheet, el *markup.Element) error {
	addr, _ := el.Attr("addr")
	from, to, _ := strings.Cut(addr, ":")
	rng, err := ParseRange(from, to)
	if err != nil {
		return err
	}
	sheet.AddMerge(rng)
	return nil
}

// applyStyle applies one StyleSpec to a single address or, when the
// addr contains a range separator, to every cell of the rectangle. A
// later style element fully replaces an earlier one on the same cell.
func applyStyle(sheet *models.Sheet, el *markup.Element) error {
	spec := models.StyleSpec{
		Bold:      el.AttrDefault("bold", "false") == "true",
		Italic:    el.AttrDefault("italic", "false") == "true",
		Underline: el.AttrDefault("underline", "false") == "true",
	}
	addr, _ := el.Attr("addr")
	if from, to, isRange := strings.Cut(addr, ":"); isRange {
		rng, err := ParseRange(from, to)
		if err != nil {
			return err
		}
		for row := rng.FromRow; row <= rng.ToRow; row++ {
			for col := rng.FromCol; col <= rng.ToCol; col++ {
				sheet.SetStyle(models.Address{Row: row, Col: col}, spec)
			}
		}
		return nil
	}
	single, err := ParseCellAddress(addr)
	if err != nil {
		return err
	}
	sheet.SetStyle(single, spec)
	return nil
}
