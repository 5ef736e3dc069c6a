// Package schema defines the target shape of an erg-test import: the fields
// a spreadsheet column can map to, the header aliases each field answers to,
// and the canonical test categories with their spelling variants. The tables
// ship as an embedded TOML document so alias coverage is explicit
// configuration, extensible without touching mapper or validator code.
package schema

// FieldID identifies one target field of an imported record.
type FieldID string

const (
	FieldAthlete  FieldID = "athlete"
	FieldCategory FieldID = "category"
	FieldDate     FieldID = "date"
	FieldTime     FieldID = "time"
	FieldSplit    FieldID = "split"
	FieldWatts    FieldID = "watts"
	FieldSPM      FieldID = "spm"
	FieldWeight   FieldID = "weight"
	FieldNotes    FieldID = "notes"
)

// FieldKind tells the validator how to interpret a mapped cell.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindDuration FieldKind = "duration"
	KindDate     FieldKind = "date"
	KindNumber   FieldKind = "number"
	KindCategory FieldKind = "category"
)

// Field is one target field of the import schema.
type Field struct {
	ID       FieldID   `toml:"id" json:"id"`
	Label    string    `toml:"label" json:"label"`
	Aliases  []string  `toml:"aliases" json:"aliases"`
	Required bool      `toml:"required" json:"required"`
	Kind     FieldKind `toml:"kind" json:"kind"`
}

// Category is one canonical test category and the spellings that resolve to it.
type Category struct {
	Canonical string   `toml:"canonical" json:"canonical"`
	Aliases   []string `toml:"aliases" json:"aliases"`
}

// Schema is the full import target: fields plus the category alias table.
type Schema struct {
	Fields     []Field    `toml:"fields" json:"fields"`
	Categories []Category `toml:"categories" json:"categories"`
}

// FieldByID returns the field with the given ID.
func (s *Schema) FieldByID(id FieldID) (Field, bool) {
	for _, f := range s.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// RequiredFields returns the fields a valid record cannot lack.
func (s *Schema) RequiredFields() []Field {
	var out []Field
	for _, f := range s.Fields {
		if f.Required {
			out = append(out, f)
		}
	}
	return out
}
