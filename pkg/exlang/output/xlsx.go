package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/exlang-go/pkg/exlang/models"
)

var _ = (Sink)((*XLSXSink)(nil))

// XLSXSink writes the spreadsheet model into an XLSX workbook held in
// memory until Save or WriteTo.
type XLSXSink struct {
	xl     *excelize.File
	styles map[models.StyleSpec]int
	sheets int
}

// NewXLSXSink returns an empty XLSX sink.
func NewXLSXSink() *XLSXSink {
	return &XLSXSink{
		xl:     excelize.NewFile(),
		styles: make(map[models.StyleSpec]int),
	}
}

// CreateSheet appends a sheet. The first sheet renames the workbook's
// default sheet so the output contains exactly the compiled sheets.
func (s *XLSXSink) CreateSheet(name string) error {
	s.sheets++
	if s.sheets == 1 {
		return s.xl.SetSheetName("Sheet1", name)
	}
	_, err := s.xl.NewSheet(name)
	return err
}

// SetCell writes one typed value.
func (s *XLSXSink) SetCell(sheet string, row, col int, v models.Value) error {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("%s[%d,%d]: %w", sheet, row, col, err)
	}
	switch v.Kind {
	case models.KindText:
		err = s.xl.SetCellStr(sheet, axis, v.Str)
	case models.KindInteger:
		err = s.xl.SetCellValue(sheet, axis, v.Int)
	case models.KindFloat:
		err = s.xl.SetCellFloat(sheet, axis, v.Float, -1, 64)
	case models.KindBoolean:
		err = s.xl.SetCellBool(sheet, axis, v.Bool)
	case models.KindFormula:
		err = s.xl.SetCellFormula(sheet, axis, v.Str)
	default:
		err = fmt.Errorf("unknown value kind %d", int(v.Kind))
	}
	if err != nil {
		return fmt.Errorf("%s[%s]: %w", sheet, axis, err)
	}
	return nil
}

// MergeCells fuses the cells of r into one visual cell.
func (s *XLSXSink) MergeCells(sheet string, r models.Range) error {
	from, err := excelize.CoordinatesToCellName(r.FromCol, r.FromRow)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(r.ToCol, r.ToRow)
	if err != nil {
		return err
	}
	return s.xl.MergeCell(sheet, from, to)
}

// SetCellStyle applies the font style to one cell. Style IDs are
// cached per distinct StyleSpec.
func (s *XLSXSink) SetCellStyle(sheet string, row, col int, spec models.StyleSpec) error {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	id, err := s.styleID(spec)
	if err != nil {
		return err
	}
	return s.xl.SetCellStyle(sheet, axis, axis, id)
}

func (s *XLSXSink) styleID(spec models.StyleSpec) (int, error) {
	if id, ok := s.styles[spec]; ok {
		return id, nil
	}
	font := excelize.Font{Bold: spec.Bold, Italic: spec.Italic}
	if spec.Underline {
		font.Underline = "single"
	}
	id, err := s.xl.NewStyle(&excelize.Style{Font: &font})
	if err != nil {
		return 0, err
	}
	s.styles[spec] = id
	return id, nil
}

// Save writes the workbook to path, creating missing parent
// directories.
func (s *XLSXSink) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return s.xl.SaveAs(path)
}

// WriteTo writes the workbook to w.
func (s *XLSXSink) WriteTo(w io.Writer) (int64, error) {
	return s.xl.WriteTo(w)
}

// Close releases the underlying workbook.
func (s *XLSXSink) Close() error { return s.xl.Close() }
