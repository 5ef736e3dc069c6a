package importer

import (
	"errors"
	"fmt"
	"testing"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"invalid csv", errors.New("parse: invalid csv: record on line 2"), "FILE002"},
		{"invalid workbook", errors.New("parse: invalid workbook: zip: not a valid zip file"), "FILE003"},
		{"no data rows", errors.New("parse: no data rows after header"), "FILE004"},
		{"empty file", errors.New("parse: empty file"), "FILE005"},
		{"session missing", fmt.Errorf("lookup: %w", ErrNotFound), "IMP001"},
		{"already committed", ErrAlreadyCommitted, "IMP002"},
		{"invalid rows block commit", fmt.Errorf("%w: 3 invalid rows", ErrInvalidRows), "IMP003"},
		{"case insensitive", errors.New("Context Canceled"), "REQ001"},
		{"unknown error falls back", errors.New("something exotic"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("code = %s, want %s (message %q)", got.Code, tt.wantCode, got.Message)
			}
			if got.Message == "" || got.Action == "" {
				t.Errorf("incomplete message: %+v", got)
			}
		})
	}
}

func TestTranslateErrorNil(t *testing.T) {
	if got := TranslateError(nil); got.Code != "" {
		t.Errorf("nil error produced %+v", got)
	}
}
