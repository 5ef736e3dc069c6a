// Package roster supplies the known-athlete directory the import pipeline
// resolves free-text names against. Storage is behind the Provider interface
// so the validator can run against a live database or an in-memory fixture.
package roster

import "context"

// Athlete is one roster entry.
type Athlete struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// FullName renders "First Last" for display.
func (a Athlete) FullName() string {
	if a.FirstName == "" {
		return a.LastName
	}
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// Provider loads the current roster. Implementations must return athletes in
// a stable order; name resolution is order-sensitive on ambiguous rosters.
type Provider interface {
	Athletes(ctx context.Context) ([]Athlete, error)
}

// Memory is a fixed in-memory roster, used by tests and by deployments that
// bootstrap the roster from configuration instead of a database.
type Memory struct {
	Entries []Athlete
}

func (m *Memory) Athletes(ctx context.Context) ([]Athlete, error) {
	out := make([]Athlete, len(m.Entries))
	copy(out, m.Entries)
	return out, nil
}
