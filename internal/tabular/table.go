// Package tabular turns raw spreadsheet exports (CSV or XLSX) into a
// structured table of headers and typed cells. It knows nothing about the
// target schema; mapping and validation happen downstream.
package tabular

import (
	"fmt"
	"strconv"
	"strings"
)

// CellKind discriminates the value held by a Cell.
type CellKind int

const (
	KindNull CellKind = iota
	KindText
	KindNumber
)

// Cell is a single spreadsheet cell. Cells are opportunistically typed at
// parse time: a token that parses fully as a number becomes KindNumber,
// anything else stays KindText, and empty cells are KindNull.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// NullCell is the canonical empty cell.
var NullCell = Cell{Kind: KindNull}

// TextCell returns a text cell, or NullCell if s is empty after trimming.
func TextCell(s string) Cell {
	s = strings.TrimSpace(s)
	if s == "" {
		return NullCell
	}
	return Cell{Kind: KindText, Text: s}
}

// NumberCell returns a numeric cell.
func NumberCell(f float64) Cell {
	return Cell{Kind: KindNumber, Number: f}
}

// IsNull reports whether the cell holds no value. Text cells that are empty
// after trimming count as null, so downstream code has a single emptiness check.
func (c Cell) IsNull() bool {
	if c.Kind == KindNull {
		return true
	}
	return c.Kind == KindText && strings.TrimSpace(c.Text) == ""
}

// String renders the cell for diagnostics and display.
func (c Cell) String() string {
	switch c.Kind {
	case KindText:
		return c.Text
	case KindNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	default:
		return ""
	}
}

// Row maps a header name (verbatim, as it appeared in the file) to a cell.
type Row map[string]Cell

// Table is the parsed form of one uploaded file. Headers keep their original
// order and spelling; Rows preserve source order, so row i carries the
// 1-based line number i+1 for diagnostics (header row excluded).
type Table struct {
	Headers []string
	Rows    []Row
}

// typedCell converts one raw token into a Cell.
func typedCell(raw string) Cell {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NullCell
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return Cell{Kind: KindNumber, Number: f}
	}
	return Cell{Kind: KindText, Text: raw}
}

// ParseError is the fatal import failure: the file could not be decoded as
// delimited text, or decoded to zero data rows. Nothing is partially
// processed when it is returned.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse: %s: %v", e.Reason, e.Err)
	}
	return "parse: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }
