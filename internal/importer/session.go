package importer

// session.go owns in-flight import sessions: one upload that has been parsed
// and is sitting in human review. The live state is private to the Service
// and only touched under its lock; callers get point-in-time Session
// snapshots, so concurrent reads and mapping edits never share mutable
// fields. Every mapping edit re-runs the batch validator over the same
// parsed table and roster snapshot. Sessions expire after a TTL so abandoned
// reviews do not pin parsed tables in memory.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/crewdeck/crewdeck/internal/roster"
	"github.com/crewdeck/crewdeck/internal/schema"
	"github.com/crewdeck/crewdeck/internal/tabular"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

var (
	ErrNotFound         = errors.New("import not found")
	ErrAlreadyCommitted = errors.New("import already committed")
	ErrInvalidRows      = errors.New("rows failed validation")
)

// Committer persists a batch's valid records. The results store implements
// it; tests substitute a recorder.
type Committer interface {
	Insert(ctx context.Context, records []Record) (CommitSummary, error)
}

// Session is a point-in-time snapshot of one import under review. Snapshots
// are values: reading one is always safe, and a later mapping edit or commit
// is only visible through a fresh Get.
type Session struct {
	ID        uuid.UUID      `json:"id"`
	FileName  string         `json:"fileName"`
	CreatedAt time.Time      `json:"createdAt"`
	Headers   []string       `json:"headers"`
	RowCount  int            `json:"rowCount"`
	Mapping   Mapping        `json:"mapping"`
	Result    BatchResult    `json:"-"`
	Committed *CommitSummary `json:"committed,omitempty"`
}

// liveSession is the mutable state behind a session. All fields are guarded
// by the Service mutex; snap is replaced wholesale on every edit, never
// mutated in place, so handed-out snapshots stay consistent.
type liveSession struct {
	snap       Session
	table      *tabular.Table
	athletes   []roster.Athlete
	expiry     *time.Timer
	committing bool
}

// Config sizes the session service.
type Config struct {
	// SessionTTL is how long an uncommitted session survives without edits.
	SessionTTL time.Duration
	// ParseOffloadBytes is the payload size above which parsing is bounded
	// by the parse semaphore instead of running inline.
	ParseOffloadBytes int64
	// MaxConcurrentParses bounds simultaneous offloaded parses.
	MaxConcurrentParses int64
}

// Service manages import sessions.
type Service struct {
	schema    *schema.Schema
	roster    roster.Provider
	committer Committer
	log       *slog.Logger
	cfg       Config

	parseSem *semaphore.Weighted

	mu       sync.RWMutex
	sessions map[uuid.UUID]*liveSession
}

func NewService(s *schema.Schema, r roster.Provider, c Committer, log *slog.Logger, cfg Config) *Service {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	if cfg.ParseOffloadBytes <= 0 {
		cfg.ParseOffloadBytes = 1 << 20
	}
	if cfg.MaxConcurrentParses <= 0 {
		cfg.MaxConcurrentParses = 4
	}
	return &Service{
		schema:    s,
		roster:    r,
		committer: c,
		log:       log,
		cfg:       cfg,
		parseSem:  semaphore.NewWeighted(cfg.MaxConcurrentParses),
		sessions:  make(map[uuid.UUID]*liveSession),
	}
}

// Open parses an upload, proposes a mapping, snapshots the roster, and runs
// the first validation pass. Parse failures surface immediately; nothing is
// partially processed.
func (s *Service) Open(ctx context.Context, fileName string, data []byte) (Session, error) {
	table, err := s.parse(ctx, fileName, data)
	if err != nil {
		return Session{}, err
	}

	athletes, err := s.roster.Athletes(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("load roster: %w", err)
	}

	mapping := AutoMap(table.Headers, s.schema)
	v := &Validator{Schema: s.schema, Athletes: athletes}

	live := &liveSession{
		snap: Session{
			ID:        uuid.New(),
			FileName:  fileName,
			CreatedAt: time.Now(),
			Headers:   table.Headers,
			RowCount:  len(table.Rows),
			Mapping:   mapping,
			Result:    v.ValidateAll(table, mapping),
		},
		table:    table,
		athletes: athletes,
	}
	live.expiry = time.AfterFunc(s.cfg.SessionTTL, func() { s.expire(live.snap.ID) })

	s.mu.Lock()
	s.sessions[live.snap.ID] = live
	s.mu.Unlock()

	s.log.Info("import opened",
		"import_id", live.snap.ID,
		"file", fileName,
		"rows", live.snap.RowCount,
		"valid", len(live.snap.Result.ValidRecords),
		"invalid", len(live.snap.Result.InvalidRows),
	)
	return live.snap, nil
}

// parse decodes the upload. Payloads above the offload threshold run on a
// separate goroutine bounded by the parse semaphore so one large file cannot
// monopolize the request path; the result is awaited before mapping begins.
func (s *Service) parse(ctx context.Context, fileName string, data []byte) (*tabular.Table, error) {
	decode := func() (*tabular.Table, error) {
		if strings.HasSuffix(strings.ToLower(fileName), ".xlsx") {
			return tabular.ParseWorkbook(data)
		}
		return tabular.Parse(data, tabular.Options{})
	}

	if int64(len(data)) < s.cfg.ParseOffloadBytes {
		return decode()
	}

	if err := s.parseSem.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	type parsed struct {
		table *tabular.Table
		err   error
	}
	done := make(chan parsed, 1)
	go func() {
		defer s.parseSem.Release(1)
		t, err := decode()
		done <- parsed{table: t, err: err}
	}()

	select {
	case p := <-done:
		return p.table, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Get returns a snapshot of the session.
func (s *Service) Get(id uuid.UUID) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	live, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return live.snap, nil
}

// SetMapping replaces the session's mapping and re-validates the whole
// table. Validation is idempotent and side-effect-free, so edits can re-run
// it as often as the reviewer changes their mind. Edits are refused once a
// commit has started.
func (s *Service) SetMapping(id uuid.UUID, m Mapping) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	if live.snap.Committed != nil || live.committing {
		return Session{}, ErrAlreadyCommitted
	}

	v := &Validator{Schema: s.schema, Athletes: live.athletes}
	live.snap.Mapping = m
	live.snap.Result = v.ValidateAll(live.table, m)
	live.expiry.Reset(s.cfg.SessionTTL)
	return live.snap, nil
}

// Commit persists the session's valid records. When invalid rows remain it
// refuses unless force is set, in which case the invalid rows are simply
// left behind in the report. Only one commit can be in flight per session:
// the committing flag is claimed under the lock before the store call, so a
// concurrent second commit is refused rather than inserted twice.
func (s *Service) Commit(ctx context.Context, id uuid.UUID, force bool) (CommitSummary, error) {
	s.mu.Lock()
	live, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return CommitSummary{}, ErrNotFound
	}
	if live.snap.Committed != nil || live.committing {
		s.mu.Unlock()
		return CommitSummary{}, ErrAlreadyCommitted
	}
	if len(live.snap.Result.InvalidRows) > 0 && !force {
		s.mu.Unlock()
		return CommitSummary{}, fmt.Errorf("%w: %d invalid rows", ErrInvalidRows, len(live.snap.Result.InvalidRows))
	}
	live.committing = true
	records := live.snap.Result.ValidRecords
	s.mu.Unlock()

	summary, err := s.committer.Insert(ctx, records)

	s.mu.Lock()
	if cur, ok := s.sessions[id]; ok {
		cur.committing = false
		if err == nil {
			cur.snap.Committed = &summary
			cur.expiry.Reset(s.cfg.SessionTTL)
		}
	}
	s.mu.Unlock()

	if err != nil {
		return CommitSummary{}, fmt.Errorf("commit records: %w", err)
	}

	s.log.Info("import committed",
		"import_id", id,
		"imported", summary.Imported,
		"existed", summary.Existed,
	)
	return summary, nil
}

// Discard drops a session.
func (s *Service) Discard(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	live, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	live.expiry.Stop()
	delete(s.sessions, id)
	return nil
}

func (s *Service) expire(id uuid.UUID) {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		s.log.Info("import expired", "import_id", id)
	}
}
