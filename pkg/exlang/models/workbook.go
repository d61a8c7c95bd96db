package models

import "sort"

// Workbook is the compiled spreadsheet model: an ordered list of sheets.
// Sheet names are unique within a workbook; the validator guarantees
// this before a Workbook is ever constructed.
type Workbook struct {
	Sheets []*Sheet
}

// AddSheet appends a new empty sheet and returns it.
func (w *Workbook) AddSheet(name string) *Sheet {
	s := NewSheet(name)
	w.Sheets = append(w.Sheets, s)
	return s
}

// Sheet is a sparse grid of typed cells plus merge and style records.
type Sheet struct {
	Name   string
	cells  map[Address]Value
	styles map[Address]StyleSpec
	// Merges are kept in application order.
	Merges []Range
}

// NewSheet returns an empty sheet with the given name.
func NewSheet(name string) *Sheet {
	return &Sheet{
		Name:   name,
		cells:  make(map[Address]Value),
		styles: make(map[Address]StyleSpec),
	}
}

// SetValue writes a cell value, overwriting any previous value.
func (s *Sheet) SetValue(addr Address, v Value) {
	s.cells[addr] = v
}

// Value returns the cell value at addr, if one was placed.
func (s *Sheet) Value(addr Address) (Value, bool) {
	v, ok := s.cells[addr]
	return v, ok
}

// SetStyle records a style for a cell. A later style fully replaces an
// earlier one; styles are never merged.
func (s *Sheet) SetStyle(addr Address, spec StyleSpec) {
	s.styles[addr] = spec
}

// Style returns the style at addr, if one was applied.
func (s *Sheet) Style(addr Address) (StyleSpec, bool) {
	spec, ok := s.styles[addr]
	return spec, ok
}

// AddMerge records a merged region. Merges do not alter cell values.
func (s *Sheet) AddMerge(r Range) {
	s.Merges = append(s.Merges, r)
}

// CellCount returns the number of placed cells.
func (s *Sheet) CellCount() int { return len(s.cells) }

// Addresses returns all placed cell addresses sorted by row, then
// column, so that sinks observe a deterministic write order.
func (s *Sheet) Addresses() []Address {
	return sortedAddresses(s.cells)
}

// StyledAddresses returns all styled addresses sorted by row, then
// column.
func (s *Sheet) StyledAddresses() []Address {
	return sortedAddresses(s.styles)
}

func sortedAddresses[V any](m map[Address]V) []Address {
	addrs := make([]Address, 0, len(m))
	for a := range m {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool {
		if addrs[i].Row != addrs[j].Row {
			return addrs[i].Row < addrs[j].Row
		}
		return addrs[i].Col < addrs[j].Col
	})
	return addrs
}
