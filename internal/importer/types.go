// Package importer implements the erg-test import pipeline: column
// auto-mapping, value normalization, roster name resolution, and row/batch
// validation. Every stage after parsing is a pure function over its inputs,
// so a whole batch can be re-validated after each mapping edit.
package importer

import "github.com/crewdeck/crewdeck/internal/schema"

// Mapping assigns target fields to source headers. A field absent from the
// map, or mapped to the empty string, is unmapped. Two fields may claim the
// same header; validation projects each field independently and tolerates it.
type Mapping map[schema.FieldID]string

// ValidationError describes one field-level problem in one row. Errors are
// data, not exceptions: a failing row never aborts the batch.
type ValidationError struct {
	Row      int    `json:"row"`
	Field    string `json:"field"`
	Message  string `json:"message"`
	RawValue string `json:"rawValue"`
}

// Record is a fully-typed, validated erg-test result ready for commit.
// It is never partially populated: either every required field normalized
// cleanly or the row is rejected with errors instead.
type Record struct {
	AthleteID    string   `json:"athleteId"`
	Category     string   `json:"category"`
	Date         string   `json:"date"`
	TimeSeconds  float64  `json:"timeSeconds"`
	SplitSeconds *float64 `json:"splitSeconds,omitempty"`
	Watts        *float64 `json:"watts,omitempty"`
	SPM          *float64 `json:"spm,omitempty"`
	WeightKg     *float64 `json:"weightKg,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	Row          int      `json:"row"`
}

// RowErrors groups a rejected row's errors under its 1-based line number.
type RowErrors struct {
	Row    int               `json:"row"`
	Errors []ValidationError `json:"errors"`
}

// BatchResult partitions a table: every input row lands in exactly one of
// ValidRecords or InvalidRows, both preserving source row order.
type BatchResult struct {
	ValidRecords []Record    `json:"validRecords"`
	InvalidRows  []RowErrors `json:"invalidRows"`
}

// CommitSummary reports the outcome of persisting a batch's valid records.
type CommitSummary struct {
	Imported int `json:"imported"`
	Existed  int `json:"existed"`
}
