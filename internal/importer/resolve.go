package importer

// resolve.go matches free-text athlete names against the roster. Matching is
// normalization plus substring reasoning only, no edit distance: an exact
// pass over both name orders runs first, and only when it finds nothing does
// the bidirectional substring pass run. Ambiguity within a pass goes to the
// first athlete in roster order.

import (
	"strings"

	"github.com/crewdeck/crewdeck/internal/roster"
)

// Resolve finds the roster athlete a free-text name refers to.
func Resolve(name string, athletes []roster.Athlete) (roster.Athlete, bool) {
	needle := normalizeKey(name)
	if needle == "" {
		return roster.Athlete{}, false
	}

	type candidate struct {
		athlete   roster.Athlete
		firstLast string
		lastFirst string
	}
	candidates := make([]candidate, 0, len(athletes))
	for _, a := range athletes {
		candidates = append(candidates, candidate{
			athlete:   a,
			firstLast: normalizeKey(a.FirstName + a.LastName),
			lastFirst: normalizeKey(a.LastName + a.FirstName),
		})
	}

	// Exact pass over both concatenation orders.
	for _, c := range candidates {
		if needle == c.firstLast || needle == c.lastFirst {
			return c.athlete, true
		}
	}

	// Substring pass, both directions and both orders.
	for _, c := range candidates {
		if c.firstLast == "" {
			continue
		}
		if strings.Contains(c.firstLast, needle) || strings.Contains(needle, c.firstLast) ||
			strings.Contains(c.lastFirst, needle) || strings.Contains(needle, c.lastFirst) {
			return c.athlete, true
		}
	}

	return roster.Athlete{}, false
}
