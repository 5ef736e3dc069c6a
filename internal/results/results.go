// Package results persists committed erg-test records. It is the commit
// collaborator of the import pipeline: it receives only fully validated
// records and reports how many were inserted versus already present.
package results

import (
	"context"
	"fmt"

	"github.com/crewdeck/crewdeck/internal/importer"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store writes erg-test results to PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const insertResult = `
INSERT INTO erg_results
  (athlete_id, category, test_date, time_seconds, split_seconds, watts, spm, weight_kg, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (athlete_id, category, test_date) DO NOTHING`

// Insert writes records in one transaction. A record that collides with an
// existing (athlete, category, date) result is counted as already existing
// rather than failing the batch.
func (s *Store) Insert(ctx context.Context, records []importer.Record) (importer.CommitSummary, error) {
	var summary importer.CommitSummary
	if len(records) == 0 {
		return summary, nil
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return summary, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, r := range records {
		tag, err := tx.Exec(ctx, insertResult,
			r.AthleteID,
			r.Category,
			r.Date,
			r.TimeSeconds,
			toPgFloat(r.SplitSeconds),
			toPgFloat(r.Watts),
			toPgFloat(r.SPM),
			toPgFloat(r.WeightKg),
			toPgText(r.Notes),
		)
		if err != nil {
			return importer.CommitSummary{}, fmt.Errorf("insert result row %d: %w", r.Row, err)
		}
		if tag.RowsAffected() == 0 {
			summary.Existed++
		} else {
			summary.Imported++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return importer.CommitSummary{}, fmt.Errorf("commit: %w", err)
	}
	return summary, nil
}

func toPgFloat(v *float64) pgtype.Float8 {
	if v == nil {
		return pgtype.Float8{Valid: false}
	}
	return pgtype.Float8{Float64: *v, Valid: true}
}

func toPgText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}
