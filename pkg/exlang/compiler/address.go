// Package compiler turns a validated EXLang element tree into a
// models.Workbook. It hosts the address resolver, the value type
// inference, the repeat-template expansion and the orchestrating
// compile pass.
package compiler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/exlang-go/pkg/exlang/models"
)

// ErrInvalidAddress indicates column letters, a cell address or a row
// index that cannot be resolved.
var ErrInvalidAddress = errors.New("invalid address")

// ErrInvalidRangeOrder indicates a range whose 'from' endpoint is not
// component-wise before or equal to its 'to' endpoint.
var ErrInvalidRangeOrder = errors.New("invalid range order")

// maxColumnLetters caps the column runs ColumnIndex accepts. Seven
// letters (over 8e9 columns) is far past any spreadsheet; longer runs
// would overflow the index arithmetic.
const maxColumnLetters = 7

// ColumnIndex converts column letters to a 1-based column index,
// treating the letters as a bijective base-26 numeral (A=1, Z=26,
// AA=27). Case-insensitive; surrounding whitespace is ignored.
func ColumnIndex(letters string) (int, error) {
	col := strings.TrimSpace(letters)
	if col == "" || len(col) > maxColumnLetters {
		return 0, fmt.Errorf("invalid column letter %q: %w", letters, ErrInvalidAddress)
	}
	n := 0
	for _, ch := range col {
		if ch >= 'a' && ch <= 'z' {
			ch -= 'a' - 'A'
		}
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("invalid column letter %q: %w", letters, ErrInvalidAddress)
		}
		n = n*26 + int(ch-'A'+1)
	}
	return n, nil
}

// ParseCellAddress parses a single-cell address of the form "B4":
// one or more column letters followed by one or more digits.
func ParseCellAddress(text string) (models.Address, error) {
	s := strings.TrimSpace(text)
	i := 0
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	j := i
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	if i == 0 || j == i || j != len(s) {
		return models.Address{}, fmt.Errorf("invalid cell address %q: %w", text, ErrInvalidAddress)
	}
	col, err := ColumnIndex(s[:i])
	if err != nil {
		return models.Address{}, err
	}
	row, err := strconv.Atoi(s[i:])
	if err != nil || row < 1 {
		return models.Address{}, fmt.Errorf("invalid cell address %q: %w", text, ErrInvalidAddress)
	}
	return models.Address{Row: row, Col: col}, nil
}

// ParseRowIndex parses a 1-based row index attribute.
func ParseRowIndex(text string) (int, error) {
	row, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || row < 1 {
		return 0, fmt.Errorf("invalid row index %q: %w", text, ErrInvalidAddress)
	}
	return row, nil
}

// ParseRange parses two endpoint addresses into a Range. The 'from'
// endpoint must be before or equal to 'to' in both dimensions.
func ParseRange(fromText, toText string) (models.Range, error) {
	from, err := ParseCellAddress(fromText)
	if err != nil {
		return models.Range{}, err
	}
	to, err := ParseCellAddress(toText)
	if err != nil {
		return models.Range{}, err
	}
	if from.Row > to.Row || from.Col > to.Col {
		return models.Range{}, fmt.Errorf("'from' (%s) must be before or equal to 'to' (%s): %w",
			strings.TrimSpace(fromText), strings.TrimSpace(toText), ErrInvalidRangeOrder)
	}
	return models.Range{FromRow: from.Row, FromCol: from.Col, ToRow: to.Row, ToCol: to.Col}, nil
}

func isLetter(b byte) bool {
	return b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
