package tabular

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		opts        Options
		wantHeaders []string
		wantRows    int
		wantErr     bool
	}{
		{
			name:        "basic csv",
			input:       "Name,Time\nAnna Smith,6:30.0\nBjorn Lund,6:45.2\n",
			wantHeaders: []string{"Name", "Time"},
			wantRows:    2,
		},
		{
			name:        "ragged rows tolerated",
			input:       "Name,Time,Notes\nAnna,390\nBjorn,400,good pace,extra\n",
			wantHeaders: []string{"Name", "Time", "Notes"},
			wantRows:    2,
		},
		{
			name:        "leading empty lines before header",
			input:       ",,\n\nName,Time\nAnna,390\n",
			wantHeaders: []string{"Name", "Time"},
			wantRows:    1,
		},
		{
			name:        "interior empty rows skipped",
			input:       "Name,Time\nAnna,390\n,,\nBjorn,400\n",
			wantHeaders: []string{"Name", "Time"},
			wantRows:    2,
		},
		{
			name:        "headers trimmed",
			input:       " Name , Time \nAnna,390\n",
			wantHeaders: []string{"Name", "Time"},
			wantRows:    1,
		},
		{
			name:        "tab delimited sniffed",
			input:       "Name\tTime\nAnna\t390\n",
			wantHeaders: []string{"Name", "Time"},
			wantRows:    1,
		},
		{
			name:        "semicolon delimited sniffed",
			input:       "Name;Time\nAnna;390\n",
			wantHeaders: []string{"Name", "Time"},
			wantRows:    1,
		},
		{
			name:        "explicit delimiter",
			input:       "Name|Time\nAnna|390\n",
			opts:        Options{Delimiter: '|'},
			wantHeaders: []string{"Name", "Time"},
			wantRows:    1,
		},
		{
			name:    "empty file",
			input:   "",
			wantErr: true,
		},
		{
			name:    "header only",
			input:   "Name,Time\n",
			wantErr: true,
		},
		{
			name:    "only blank rows after header",
			input:   "Name,Time\n,,\n , \n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse([]byte(tt.input), tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var pe *ParseError
				if !errors.As(err, &pe) {
					t.Fatalf("error type = %T, want *ParseError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(table.Headers) != len(tt.wantHeaders) {
				t.Fatalf("headers = %v, want %v", table.Headers, tt.wantHeaders)
			}
			for i, h := range tt.wantHeaders {
				if table.Headers[i] != h {
					t.Errorf("header[%d] = %q, want %q", i, table.Headers[i], h)
				}
			}
			if len(table.Rows) != tt.wantRows {
				t.Errorf("rows = %d, want %d", len(table.Rows), tt.wantRows)
			}
		})
	}
}

func TestParseCellTyping(t *testing.T) {
	input := "Name,Watts,Notes\nAnna,285,felt strong\nBjorn,,\n"
	table, err := Parse([]byte(input), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	row := table.Rows[0]
	if got := row["Watts"]; got.Kind != KindNumber || got.Number != 285 {
		t.Errorf("Watts = %+v, want number 285", got)
	}
	if got := row["Name"]; got.Kind != KindText || got.Text != "Anna" {
		t.Errorf("Name = %+v, want text Anna", got)
	}

	// Empty cells never enter the row map.
	if _, ok := table.Rows[1]["Watts"]; ok {
		t.Error("empty Watts cell should be absent from row map")
	}
	if _, ok := table.Rows[1]["Notes"]; ok {
		t.Error("empty Notes cell should be absent from row map")
	}
}

func TestParseBOMAndInvalidUTF8(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Name,Time\nAnna,390\n")...)
	table, err := Parse(input, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Headers[0] != "Name" {
		t.Errorf("first header = %q, want Name (BOM not stripped)", table.Headers[0])
	}
}

func TestParseDuplicateHeaders(t *testing.T) {
	// Later duplicate wins within the row map; the header list keeps both.
	input := "Name,Time,Time\nAnna,390,400\n"
	table, err := Parse([]byte(input), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Headers) != 3 {
		t.Fatalf("headers = %v, want 3 entries", table.Headers)
	}
	if got := table.Rows[0]["Time"]; got.Number != 400 {
		t.Errorf("Time = %v, want last duplicate value 400", got.Number)
	}
}

func TestCellIsNull(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want bool
	}{
		{"null cell", NullCell, true},
		{"text cell", TextCell("anna"), false},
		{"whitespace text", Cell{Kind: KindText, Text: "   "}, true},
		{"number zero", NumberCell(0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cell.IsNull(); got != tt.want {
				t.Errorf("IsNull() = %v, want %v", got, tt.want)
			}
		})
	}
}
