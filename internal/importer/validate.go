package importer

// validate.go is the row validator. A row either normalizes into one fully
// typed Record or produces a list of field-level errors; never both, never
// neither. The shape pass reports every missing required field at once so a
// reviewer sees the whole problem in one look, then the normalization pass
// accumulates one error per failing field.

import (
	"fmt"

	"github.com/crewdeck/crewdeck/internal/roster"
	"github.com/crewdeck/crewdeck/internal/schema"
	"github.com/crewdeck/crewdeck/internal/tabular"
)

// Plausible human body-weight window in kilograms. Optional weights outside
// it are dropped as absent rather than rejected.
const (
	minPlausibleWeightKg = 30
	maxPlausibleWeightKg = 200
)

// Validator validates rows against a fixed schema and roster snapshot. It
// holds no mutable state, so one Validator may serve concurrent validations.
type Validator struct {
	Schema   *schema.Schema
	Athletes []roster.Athlete
}

// ValidateRow turns one raw row into a Record or a list of errors.
// rowNum is the 1-based source line number carried into diagnostics.
func (v *Validator) ValidateRow(row tabular.Row, m Mapping, rowNum int) (Record, []ValidationError) {
	cell := func(id schema.FieldID) tabular.Cell {
		header, ok := m[id]
		if !ok || header == "" {
			return tabular.NullCell
		}
		return row[header]
	}

	athleteCell := cell(schema.FieldAthlete)
	categoryCell := cell(schema.FieldCategory)
	dateCell := cell(schema.FieldDate)
	timeCell := cell(schema.FieldTime)

	// Shape pass: all missing required fields reported together.
	var errs []ValidationError
	addErr := func(id schema.FieldID, c tabular.Cell, msg string) {
		errs = append(errs, ValidationError{
			Row:      rowNum,
			Field:    string(id),
			Message:  msg,
			RawValue: c.String(),
		})
	}

	for _, f := range v.Schema.RequiredFields() {
		if c := cell(f.ID); c.IsNull() {
			addErr(f.ID, c, "required field is missing")
		}
	}
	if len(errs) > 0 {
		return Record{}, errs
	}

	rec := Record{Row: rowNum}

	if a, ok := Resolve(athleteCell.String(), v.Athletes); ok {
		rec.AthleteID = a.ID
	} else {
		addErr(schema.FieldAthlete, athleteCell,
			fmt.Sprintf("no roster match for %q", athleteCell.String()))
	}

	if cat, ok := NormalizeCategory(categoryCell.String(), v.Schema); ok {
		rec.Category = cat
	} else {
		addErr(schema.FieldCategory, categoryCell,
			fmt.Sprintf("unknown test category %q", categoryCell.String()))
	}

	if secs, ok := ParseDuration(timeCell); ok {
		rec.TimeSeconds = secs
	} else {
		addErr(schema.FieldTime, timeCell,
			fmt.Sprintf("%q is not a valid positive duration", timeCell.String()))
	}

	if date, ok := NormalizeDate(dateCell); ok {
		rec.Date = date
	} else {
		addErr(schema.FieldDate, dateCell,
			fmt.Sprintf("%q is not a recognizable date", dateCell.String()))
	}

	// Optional fields are opportunistic: junk is absent, never an error.
	if secs, ok := ParseDuration(cell(schema.FieldSplit)); ok {
		rec.SplitSeconds = &secs
	}
	if w, ok := ParseNumber(cell(schema.FieldWatts)); ok {
		rec.Watts = &w
	}
	if r, ok := ParseNumber(cell(schema.FieldSPM)); ok {
		rec.SPM = &r
	}
	if kg, ok := ParseNumber(cell(schema.FieldWeight)); ok {
		if kg >= minPlausibleWeightKg && kg <= maxPlausibleWeightKg {
			rec.WeightKg = &kg
		}
	}
	if notes := cell(schema.FieldNotes); !notes.IsNull() {
		rec.Notes = notes.String()
	}

	if len(errs) > 0 {
		return Record{}, errs
	}
	return rec, nil
}
