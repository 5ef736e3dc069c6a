package roster

// store.go is the PostgreSQL-backed Provider. Athletes are ordered by
// creation so resolution order stays stable as the roster grows.

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store loads the roster from PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Athletes(ctx context.Context) ([]Athlete, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, first_name, last_name FROM athletes ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query athletes: %w", err)
	}
	defer rows.Close()

	var out []Athlete
	for rows.Next() {
		var a Athlete
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName); err != nil {
			return nil, fmt.Errorf("scan athlete: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read athletes: %w", err)
	}
	return out, nil
}
