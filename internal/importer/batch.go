package importer

// batch.go applies the row validator across a whole table. Rows share no
// mutable state, so large tables are validated on several goroutines with
// results indexed by row; the partition is identical to the serial path.

import (
	"runtime"

	"github.com/crewdeck/crewdeck/internal/tabular"
	"golang.org/x/sync/errgroup"
)

// concurrentRowThreshold is the table size above which ValidateAll fans out.
// Below it the serial loop is faster than goroutine bookkeeping.
const concurrentRowThreshold = 2000

type rowOutcome struct {
	record Record
	errs   []ValidationError
}

// ValidateAll validates every row of the table under the given mapping.
// Every row lands in exactly one of ValidRecords or InvalidRows, both in
// source order. It is pure and cheap enough to re-run on every mapping edit.
func (v *Validator) ValidateAll(t *tabular.Table, m Mapping) BatchResult {
	outcomes := make([]rowOutcome, len(t.Rows))

	if len(t.Rows) >= concurrentRowThreshold {
		v.validateConcurrent(t, m, outcomes)
	} else {
		for i, row := range t.Rows {
			rec, errs := v.ValidateRow(row, m, i+1)
			outcomes[i] = rowOutcome{record: rec, errs: errs}
		}
	}

	result := BatchResult{
		ValidRecords: []Record{},
		InvalidRows:  []RowErrors{},
	}
	for i, out := range outcomes {
		if len(out.errs) > 0 {
			result.InvalidRows = append(result.InvalidRows, RowErrors{Row: i + 1, Errors: out.errs})
		} else {
			result.ValidRecords = append(result.ValidRecords, out.record)
		}
	}
	return result
}

func (v *Validator) validateConcurrent(t *tabular.Table, m Mapping, outcomes []rowOutcome) {
	workers := runtime.GOMAXPROCS(0)
	if workers > len(t.Rows) {
		workers = len(t.Rows)
	}

	var g errgroup.Group
	chunk := (len(t.Rows) + workers - 1) / workers
	for start := 0; start < len(t.Rows); start += chunk {
		end := start + chunk
		if end > len(t.Rows) {
			end = len(t.Rows)
		}
		start, end := start, end
		g.Go(func() error {
			for i := start; i < end; i++ {
				rec, errs := v.ValidateRow(t.Rows[i], m, i+1)
				outcomes[i] = rowOutcome{record: rec, errs: errs}
			}
			return nil
		})
	}
	// Workers never return errors; Wait is only a join point.
	_ = g.Wait()
}
