package importer

import (
	"testing"

	"github.com/crewdeck/crewdeck/internal/roster"
)

func TestResolve(t *testing.T) {
	athletes := []roster.Athlete{
		{ID: "a1", FirstName: "Anna", LastName: "Smith"},
		{ID: "a2", FirstName: "Anna", LastName: "Smithson"},
		{ID: "a3", FirstName: "Bjorn", LastName: "Lund"},
		{ID: "a4", FirstName: "Maria", LastName: "Keller-Jones"},
	}

	tests := []struct {
		name   string
		query  string
		wantID string
		wantOK bool
	}{
		{"exact first last", "Anna Smith", "a1", true},
		{"exact last first", "Smith Anna", "a1", true},
		{"case and punctuation", "anna_smith", "a1", true},
		{"hyphenated surname", "Maria Keller-Jones", "a4", true},
		{"query contains candidate", "Bjorn Lund (stroke)", "a3", true},
		{"candidate contains query", "Smithson", "a2", true},
		{"substring picks first in roster order", "Smith", "a1", true},
		{"no match", "Carla Meyer", "", false},
		{"empty", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.query, athletes)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got.ID != tt.wantID {
				t.Errorf("resolved %s, want %s", got.ID, tt.wantID)
			}
		})
	}
}

// "Anna Smith" must hit the exact match, never the substring-containing
// "Anna Smithson", regardless of roster order.
func TestResolveExactBeatsSubstring(t *testing.T) {
	athletes := []roster.Athlete{
		{ID: "a2", FirstName: "Anna", LastName: "Smithson"},
		{ID: "a1", FirstName: "Anna", LastName: "Smith"},
	}
	got, ok := Resolve("Anna Smith", athletes)
	if !ok || got.ID != "a1" {
		t.Errorf("resolved %+v, want exact match a1", got)
	}
}

func TestResolveEmptyRoster(t *testing.T) {
	if _, ok := Resolve("Anna Smith", nil); ok {
		t.Error("resolved against empty roster")
	}
}
