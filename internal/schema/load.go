package schema

// load.go parses the embedded schema document and exposes it as the
// process-wide default. Load is exported so tests and future tooling can
// substitute alternative tables without recompiling the mapper.

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

//go:embed schema.toml
var builtin []byte

var (
	defaultOnce   sync.Once
	defaultSchema *Schema
)

// Default returns the built-in import schema. The embedded document is parsed
// once; a malformed build asset is a programmer error and panics at first use.
func Default() *Schema {
	defaultOnce.Do(func() {
		s, err := Load(builtin)
		if err != nil {
			panic(fmt.Sprintf("schema: embedded schema.toml invalid: %v", err))
		}
		defaultSchema = s
	})
	return defaultSchema
}

// Load parses a TOML schema document and validates its basic shape.
func Load(data []byte) (*Schema, error) {
	var s Schema
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Schema) validate() error {
	if len(s.Fields) == 0 {
		return fmt.Errorf("schema has no fields")
	}
	seen := make(map[FieldID]bool, len(s.Fields))
	for _, f := range s.Fields {
		if f.ID == "" {
			return fmt.Errorf("field with empty id")
		}
		if seen[f.ID] {
			return fmt.Errorf("duplicate field id %q", f.ID)
		}
		seen[f.ID] = true
		switch f.Kind {
		case KindText, KindDuration, KindDate, KindNumber, KindCategory:
		default:
			return fmt.Errorf("field %q has unknown kind %q", f.ID, f.Kind)
		}
	}
	canon := make(map[string]bool, len(s.Categories))
	for _, c := range s.Categories {
		if c.Canonical == "" {
			return fmt.Errorf("category with empty canonical name")
		}
		if canon[c.Canonical] {
			return fmt.Errorf("duplicate category %q", c.Canonical)
		}
		canon[c.Canonical] = true
	}
	return nil
}
