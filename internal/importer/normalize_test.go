package importer

import (
	"math"
	"testing"

	"github.com/crewdeck/crewdeck/internal/schema"
	"github.com/crewdeck/crewdeck/internal/tabular"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name   string
		cell   tabular.Cell
		want   float64
		wantOK bool
	}{
		{"numeric cell is seconds", tabular.NumberCell(390), 390, true},
		{"bare seconds string", tabular.TextCell("390"), 390, true},
		{"bare integer is seconds not minutes", tabular.TextCell("90"), 90, true},
		{"minutes:seconds", tabular.TextCell("6:30"), 390, true},
		{"minutes:seconds with fraction", tabular.TextCell("6:30.5"), 390.5, true},
		{"hours:minutes:seconds", tabular.TextCell("1:02:03"), 3723, true},
		{"fractional bare seconds", tabular.TextCell("75.3"), 75.3, true},
		{"leading zero seconds", tabular.TextCell("0:45"), 45, true},
		{"zero", tabular.TextCell("0"), 0, false},
		{"negative", tabular.NumberCell(-5), 0, false},
		{"negative component", tabular.TextCell("6:-30"), 0, false},
		{"non-numeric component", tabular.TextCell("6:3x"), 0, false},
		{"too many colons", tabular.TextCell("1:2:3:4"), 0, false},
		{"empty component", tabular.TextCell(":30"), 0, false},
		{"null cell", tabular.NullCell, 0, false},
		{"plain word", tabular.TextCell("fast"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDuration(tt.cell)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{390, "6:30.0"},
		{390.5, "6:30.5"},
		{59.9, "0:59.9"},
		{60, "1:00.0"},
		{3723.4, "62:03.4"},
		{359.96, "6:00.0"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatDuration(tt.seconds); got != tt.want {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

// Formatting to M:SS.s and re-parsing recovers the value within a tenth.
func TestDurationRoundTrip(t *testing.T) {
	for _, seconds := range []float64{390, 390.5, 61.2, 432.1, 1800, 5999.9} {
		formatted := FormatDuration(seconds)
		parsed, ok := ParseDuration(tabular.TextCell(formatted))
		if !ok {
			t.Fatalf("ParseDuration(%q) failed", formatted)
		}
		if math.Abs(parsed-seconds) > 0.05 {
			t.Errorf("%v -> %q -> %v, drift too large", seconds, formatted, parsed)
		}
	}
}

func TestNormalizeCategory(t *testing.T) {
	s := schema.Default()

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"canonical", "2k", "2k", true},
		{"meters alias", "2000m", "2k", true},
		{"bare meters", "2000", "2k", true},
		{"case and spacing", " 2K Erg ", "2k", true},
		{"underscores and dots", "30_min.", "30min", true},
		{"word alias", "thirty", "30min", true},
		{"unknown", "marathon", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeCategory(tt.input, s)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// Every alias in the shipped table resolves to exactly its own canonical
// category; nothing outside the table resolves at all.
func TestCategoryAliasTableIsTotal(t *testing.T) {
	s := schema.Default()
	for _, c := range s.Categories {
		for _, alias := range c.Aliases {
			got, ok := NormalizeCategory(alias, s)
			if !ok {
				t.Errorf("alias %q did not resolve", alias)
				continue
			}
			if got != c.Canonical {
				t.Errorf("alias %q resolved to %q, want %q", alias, got, c.Canonical)
			}
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name   string
		cell   tabular.Cell
		want   string
		wantOK bool
	}{
		{"iso", tabular.TextCell("2024-03-01"), "2024-03-01", true},
		{"us slashes", tabular.TextCell("3/1/2024"), "2024-03-01", true},
		{"padded slashes", tabular.TextCell("03/01/2024"), "2024-03-01", true},
		{"dots", tabular.TextCell("1.3.2024"), "2024-01-03", true},
		{"month name", tabular.TextCell("Mar 1, 2024"), "2024-03-01", true},
		{"compact", tabular.TextCell("20240301"), "2024-03-01", true},
		{"two digit year", tabular.TextCell("3/1/24"), "2024-03-01", true},
		{"two digit year last century", tabular.TextCell("3/1/99"), "1999-03-01", true},
		{"numeric compact form", tabular.NumberCell(20240301), "2024-03-01", true},
		{"garbage", tabular.TextCell("yesterday"), "", false},
		{"numeric non-date", tabular.NumberCell(390), "", false},
		{"numeric eight digits but no date", tabular.NumberCell(20241301), "", false},
		{"fractional numeric", tabular.NumberCell(2024.5), "", false},
		{"null", tabular.NullCell, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeDate(tt.cell)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name   string
		cell   tabular.Cell
		want   float64
		wantOK bool
	}{
		{"numeric cell", tabular.NumberCell(285), 285, true},
		{"numeric text", tabular.TextCell(" 72.5 "), 72.5, true},
		{"junk text", tabular.TextCell("n/a"), 0, false},
		{"null", tabular.NullCell, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumber(tt.cell)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
