package roster

// search.go powers the roster directory endpoint. This is a human-facing
// lookup and may rank fuzzily; import-time name resolution deliberately does
// not use it and sticks to normalization plus substring matching.

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Search returns athletes whose names fuzzily match query, best first.
// An empty query returns the whole roster in its original order.
func Search(query string, athletes []Athlete) []Athlete {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]Athlete, len(athletes))
		copy(out, athletes)
		return out
	}

	type hit struct {
		athlete Athlete
		rank    int
		pos     int
	}

	var hits []hit
	for i, a := range athletes {
		rank := fuzzy.RankMatchNormalizedFold(query, a.FullName())
		if rank < 0 {
			continue
		}
		hits = append(hits, hit{athlete: a, rank: rank, pos: i})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].rank != hits[j].rank {
			return hits[i].rank < hits[j].rank
		}
		return hits[i].pos < hits[j].pos
	})

	out := make([]Athlete, len(hits))
	for i, h := range hits {
		out[i] = h.athlete
	}
	return out
}
