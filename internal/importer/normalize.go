package importer

// normalize.go holds the value normalizers. All of them are conservative:
// input that does not normalize cleanly yields an explicit "no result",
// never a guess, because silently misreading a date or duration is worse
// than bouncing the row back to a human.

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/crewdeck/crewdeck/internal/schema"
	"github.com/crewdeck/crewdeck/internal/tabular"
)

// normalizeKey canonicalizes a header or name for matching: lower-case with
// spaces, underscores, hyphens and dots removed.
func normalizeKey(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-', '.':
			return -1
		}
		return r
	}, s)
}

// normalizeCategoryKey canonicalizes a category label: lower-case with
// spaces, underscores and dots removed.
func normalizeCategoryKey(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '.':
			return -1
		}
		return r
	}, s)
}

// ParseDuration converts a cell into seconds. Numeric cells are already
// seconds. Text is interpreted by colon count: none is bare seconds, one is
// minutes:seconds, two is hours:minutes:seconds, each with an optional
// fractional-seconds component. A bare integer is whole seconds, never
// minutes. Non-numeric components and values <= 0 yield no result.
func ParseDuration(c tabular.Cell) (float64, bool) {
	switch c.Kind {
	case tabular.KindNumber:
		if c.Number <= 0 {
			return 0, false
		}
		return c.Number, true
	case tabular.KindText:
		return parseDurationString(c.Text)
	default:
		return 0, false
	}
}

func parseDurationString(s string) (float64, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) > 3 {
		return 0, false
	}

	var seconds float64
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || v < 0 {
			return 0, false
		}
		seconds = seconds*60 + v
	}

	if seconds <= 0 {
		return 0, false
	}
	return seconds, true
}

// FormatDuration renders seconds as M:SS.s, the conventional erg display
// form. FormatDuration and ParseDuration round-trip within a tenth.
func FormatDuration(seconds float64) string {
	minutes := int(seconds) / 60
	rem := seconds - float64(minutes)*60
	rem = math.Round(rem*10) / 10
	if rem >= 60 {
		minutes++
		rem -= 60
	}
	return fmt.Sprintf("%d:%04.1f", minutes, rem)
}

// NormalizeCategory resolves a raw category label to its canonical name via
// the schema's alias table. Unknown labels yield no result.
func NormalizeCategory(raw string, s *schema.Schema) (string, bool) {
	key := normalizeCategoryKey(raw)
	if key == "" {
		return "", false
	}
	for _, c := range s.Categories {
		if normalizeCategoryKey(c.Canonical) == key {
			return c.Canonical, true
		}
		for _, alias := range c.Aliases {
			if normalizeCategoryKey(alias) == key {
				return c.Canonical, true
			}
		}
	}
	return "", false
}

// TwoDigitYearPivot controls 2-digit year interpretation: a parsed year more
// than this many years in the future is pushed back a century.
var TwoDigitYearPivot = 20

var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
	fourDigitYearLayouts = []string{
		"2006-01-02", "2006/01/02", "2006.01.02",
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"Jan 2, 2006", "2 Jan 2006",
		"20060102",
	}
)

// NormalizeDate parses a calendar date and emits the canonical YYYY-MM-DD
// form, discarding any time of day. Numeric cells are accepted only in the
// compact eight-digit yyyymmdd form, which the parser types as a number;
// any other bare number is not confidently a date.
func NormalizeDate(c tabular.Cell) (string, bool) {
	var s string
	switch c.Kind {
	case tabular.KindText:
		s = strings.TrimSpace(c.Text)
	case tabular.KindNumber:
		if c.Number != math.Trunc(c.Number) {
			return "", false
		}
		s = strconv.FormatFloat(c.Number, 'f', -1, 64)
		if len(s) != 8 {
			return "", false
		}
	default:
		return "", false
	}
	if s == "" {
		return "", false
	}

	for _, layout := range fourDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}

	pivot := time.Now().Year() + TwoDigitYearPivot
	for _, layout := range twoDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Year() > pivot {
				t = t.AddDate(-100, 0, 0)
			}
			return t.Format("2006-01-02"), true
		}
	}

	return "", false
}

// ParseNumber extracts a plain float from a numeric or clean-numeric-text
// cell. Anything else yields no result.
func ParseNumber(c tabular.Cell) (float64, bool) {
	switch c.Kind {
	case tabular.KindNumber:
		return c.Number, true
	case tabular.KindText:
		v, err := strconv.ParseFloat(strings.TrimSpace(c.Text), 64)
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}
