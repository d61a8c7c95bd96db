package models

import "fmt"

// Address identifies a single cell. Row and Col are 1-based.
type Address struct {
	Row int
	Col int
}

// String renders the address in A1 notation.
func (a Address) String() string {
	return fmt.Sprintf("%s%d", ColumnName(a.Col), a.Row)
}

// Range is a rectangular cell region, endpoints inclusive.
// Invariant: FromRow <= ToRow and FromCol <= ToCol.
type Range struct {
	FromRow int
	FromCol int
	ToRow   int
	ToCol   int
}

// String renders the range in A1:B2 notation.
func (r Range) String() string {
	return fmt.Sprintf("%s%d:%s%d", ColumnName(r.FromCol), r.FromRow, ColumnName(r.ToCol), r.ToRow)
}

// ColumnName converts a 1-based column index to its letter form
// (1=A, 26=Z, 27=AA). It is the inverse of compiler.ColumnIndex.
func ColumnName(n int) string {
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		n--
		i--
		buf[i] = byte('A' + n%26)
		n /= 26
	}
	return string(buf[i:])
}

// StyleSpec holds the supported character formatting for a cell.
// Absent attributes default to false.
type StyleSpec struct {
	Bold      bool
	Italic    bool
	Underline bool
}
