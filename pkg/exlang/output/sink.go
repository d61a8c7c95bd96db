// Package output persists a compiled spreadsheet model. The Sink
// interface decouples the compiler from any on-disk format; the only
// implementation here writes XLSX via excelize.
package output

import (
	"github.com/ukaji3/exlang-go/pkg/exlang/models"
)

// Sink consumes a finished spreadsheet model. It is invoked exactly
// once per successful compilation, after validation has fully passed.
type Sink interface {
	CreateSheet(name string) error
	SetCell(sheet string, row, col int, v models.Value) error
	MergeCells(sheet string, r models.Range) error
	SetCellStyle(sheet string, row, col int, s models.StyleSpec) error
	Save(path string) error
}

// Apply walks the workbook in deterministic order (sheets in document
// order; cells and styles sorted by row, then column) and replays it
// against the sink. It does not call Save.
func Apply(wb *models.Workbook, sink Sink) error {
	for _, sheet := range wb.Sheets {
		if err := sink.CreateSheet(sheet.Name); err != nil {
			return err
		}
		for _, addr := range sheet.Addresses() {
			v, _ := sheet.Value(addr)
			if err := sink.SetCell(sheet.Name, addr.Row, addr.Col, v); err != nil {
				return err
			}
		}
		for _, r := range sheet.Merges {
			if err := sink.MergeCells(sheet.Name, r); err != nil {
				return err
			}
		}
		for _, addr := range sheet.StyledAddresses() {
			s, _ := sheet.Style(addr)
			if err := sink.SetCellStyle(sheet.Name, addr.Row, addr.Col, s); err != nil {
				return err
			}
		}
	}
	return nil
}
