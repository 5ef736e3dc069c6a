package tabular

// parse.go decodes uploaded file bytes into a Table.
//
// CSV is the primary format: the reader tolerates ragged rows and lazy
// quoting, strips a UTF-8 BOM, and sanitizes invalid UTF-8 on the fly.
// XLSX workbooks are accepted as a convenience (first sheet only) and feed
// the same record pipeline, so both formats honor an identical contract:
// first non-empty record is the header row, fully empty records are
// dropped, and cells are opportunistically typed.

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Options controls CSV decoding.
type Options struct {
	// Delimiter is the field separator. Zero means comma, with a one-line
	// sniff that switches to tab or semicolon when the header row contains
	// no commas but does contain one of those.
	Delimiter rune
}

// Parse decodes delimited text into a Table.
// It returns *ParseError when the bytes cannot be decoded or when no data
// rows remain after header extraction.
func Parse(data []byte, opts Options) (*Table, error) {
	delim := opts.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(data)
	}

	r := csv.NewReader(sanitizedReader(bytes.NewReader(data)))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, &ParseError{Reason: "invalid csv", Err: err}
	}

	return fromRecords(records)
}

// ParseWorkbook decodes the first sheet of an XLSX workbook into a Table.
func ParseWorkbook(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Reason: "invalid workbook", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Reason: "workbook has no sheets"}
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ParseError{Reason: "read sheet", Err: err}
	}

	return fromRecords(records)
}

// fromRecords builds a Table from raw records: the first non-empty record is
// the header row, later empty records are skipped greedily, and each data
// record becomes a Row keyed by the trimmed header names.
func fromRecords(records [][]string) (*Table, error) {
	headerIdx := -1
	for i, rec := range records {
		if !isEmptyRecord(rec) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, &ParseError{Reason: "empty file"}
	}

	headers := make([]string, len(records[headerIdx]))
	for i, h := range records[headerIdx] {
		headers[i] = strings.TrimSpace(h)
	}

	var rows []Row
	for _, rec := range records[headerIdx+1:] {
		if isEmptyRecord(rec) {
			continue
		}
		row := make(Row, len(headers))
		for i, h := range headers {
			if h == "" || i >= len(rec) {
				continue
			}
			cell := typedCell(rec[i])
			if cell.IsNull() {
				continue
			}
			row[h] = cell
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, &ParseError{Reason: "no data rows after header"}
	}

	return &Table{Headers: headers, Rows: rows}, nil
}

// sniffDelimiter inspects the first line and falls back to tab or semicolon
// when the header contains no commas. Comma wins ties.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.ContainsRune(line, ',') {
		return ','
	}
	if bytes.ContainsRune(line, '\t') {
		return '\t'
	}
	if bytes.ContainsRune(line, ';') {
		return ';'
	}
	return ','
}

func isEmptyRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
