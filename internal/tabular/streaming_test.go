package tabular

import (
	"bytes"
	"io"
	"testing"
)

func TestBOMSkippingReader(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("name,time")...),
			expected: "name,time",
		},
		{
			name:     "file without BOM",
			input:    []byte("name,time"),
			expected: "name,time",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
		{
			name:     "partial BOM at start",
			input:    []byte{0xEF, 0xBB, 'a', 'b', 'c'},
			expected: string([]byte{0xEF, 0xBB, 'a', 'b', 'c'}),
		},
		{
			name:     "short file without BOM",
			input:    []byte("ab"),
			expected: "ab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := newBOMSkippingReader(bytes.NewReader(tt.input))
			result, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}

func TestUTF8Sanitizer(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "valid ASCII",
			input:    []byte("anna,6:30.0"),
			expected: "anna,6:30.0",
		},
		{
			name:     "valid multibyte",
			input:    []byte("søren,7:01.2"),
			expected: "søren,7:01.2",
		},
		{
			name:     "invalid single byte replaced",
			input:    []byte{'a', 'n', 0x80, 'n', 'a'},
			expected: "an?na",
		},
		{
			name:     "invalid bytes run",
			input:    []byte{0xFF, 0xFE, 'o', 'k'},
			expected: "??ok",
		},
		{
			name:     "empty input",
			input:    []byte{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := newUTF8Sanitizer(bytes.NewReader(tt.input))
			result, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}

// oneByteReader forces multi-byte runes to arrive split across Read calls.
type oneByteReader struct{ data []byte }

func (r *oneByteReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	p[0] = r.data[0]
	r.data = r.data[1:]
	return 1, nil
}

func TestUTF8SanitizerSplitRune(t *testing.T) {
	input := []byte("crew ørn")
	reader := newUTF8Sanitizer(&oneByteReader{data: input})
	result, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(result) != "crew ørn" {
		t.Errorf("got %q, want %q", string(result), "crew ørn")
	}
}

func TestSanitizedReaderChain(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("athlete,time\nanna,390")...)
	result, err := io.ReadAll(sanitizedReader(bytes.NewReader(input)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(result) != "athlete,time\nanna,390" {
		t.Errorf("got %q", string(result))
	}
}
