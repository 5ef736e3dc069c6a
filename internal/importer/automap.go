package importer

// automap.go proposes a header-to-field assignment from normalized string
// similarity against the schema's alias tables. The heuristic is greedy and
// order-sensitive: ties go to the earliest source column, and two fields may
// claim the same header. Auto-mapping is a convenience; correctness comes
// from validation and the human review step, so AutoMap never fails.

import (
	"strings"

	"github.com/crewdeck/crewdeck/internal/schema"
)

// AutoMap proposes a mapping for the given headers. Each field is matched
// independently; fields with no plausible header stay unmapped.
func AutoMap(headers []string, s *schema.Schema) Mapping {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeKey(h)
	}

	m := make(Mapping, len(s.Fields))
	for _, f := range s.Fields {
		if header, ok := matchField(f, headers, normalized); ok {
			m[f.ID] = header
		}
	}
	return m
}

// matchField scans headers in priority order: exact canonical name, exact
// alias, header contains canonical-or-alias, canonical contains header.
// Within a priority the first header in original column order wins.
func matchField(f schema.Field, headers, normalized []string) (string, bool) {
	canonical := normalizeKey(string(f.ID))
	aliases := make([]string, 0, len(f.Aliases))
	for _, a := range f.Aliases {
		if n := normalizeKey(a); n != "" {
			aliases = append(aliases, n)
		}
	}

	type rule func(h string) bool
	rules := []rule{
		func(h string) bool { return h == canonical },
		func(h string) bool {
			for _, a := range aliases {
				if h == a {
					return true
				}
			}
			return false
		},
		func(h string) bool {
			if strings.Contains(h, canonical) {
				return true
			}
			for _, a := range aliases {
				if strings.Contains(h, a) {
					return true
				}
			}
			return false
		},
		func(h string) bool { return strings.Contains(canonical, h) },
	}

	for _, r := range rules {
		for i, h := range normalized {
			if h == "" {
				continue
			}
			if r(h) {
				return headers[i], true
			}
		}
	}
	return "", false
}
