package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"renamer/internal/plan"
)

// timeLayout is fixed-width so stored timestamps sort lexicographically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

var (
	// ErrBatchNotFound reports that no batch matches the requested ID.
	ErrBatchNotFound = errors.New("batch not found")
	// ErrAmbiguousBatch reports that an ID prefix matches several batches.
	ErrAmbiguousBatch = errors.New("batch id prefix is ambiguous")
	// ErrAlreadyUndone reports an attempt to undo a batch twice.
	ErrAlreadyUndone = errors.New("batch already undone")
)

// Batch is one recorded `--do` run.
type Batch struct {
	ID         string     `json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	WorkingDir string     `json:"working_dir"`
	Rules      []string   `json:"rules"`
	UndoOf     string     `json:"undo_of,omitempty"`
	UndoneAt   *time.Time `json:"undone_at,omitempty"`
	Count      int        `json:"count"`
}

// Undone reports whether the batch has been reversed.
func (b Batch) Undone() bool {
	return b.UndoneAt != nil
}

// BatchInfo describes a batch about to be recorded.
type BatchInfo struct {
	Rules  []string
	UndoOf string
}

// Store manages journal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open creates or opens the journal at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("journal path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, now: time.Now}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Begin prepares a batch. Nothing is written until the first Record, so runs
// that rename nothing leave no trace.
func (s *Store) Begin(info BatchInfo) (*BatchRecorder, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	return &BatchRecorder{
		store:      s,
		id:         uuid.NewString(),
		workingDir: wd,
		info:       info,
	}, nil
}

// Batches lists batches newest first. A limit of zero or less lists all.
func (s *Store) Batches(ctx context.Context, limit int) ([]Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches b ORDER BY b.created_at DESC, b.rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var batches []Batch
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, *batch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batches: %w", err)
	}
	return batches, nil
}

// Batch fetches a batch by full ID or unique ID prefix.
func (s *Store) Batch(ctx context.Context, id string) (*Batch, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrBatchNotFound
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+batchColumns+` FROM batches b WHERE b.id = ? OR b.id LIKE ? ESCAPE '\' LIMIT 2`,
		id, escapeLike(id)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("get batch: %w", err)
	}
	defer rows.Close()

	var matches []*Batch
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		if batch.ID == id {
			return batch, nil
		}
		matches = append(matches, batch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batches: %w", err)
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousBatch, id)
	}
}

// LatestUndoable returns the newest batch that has not been undone and is not
// itself an undo.
func (s *Store) LatestUndoable(ctx context.Context) (*Batch, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+batchColumns+` FROM batches b
		 WHERE b.undone_at IS NULL AND b.undo_of IS NULL
		 ORDER BY b.created_at DESC, b.rowid DESC LIMIT 1`,
	)
	batch, err := scanBatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBatchNotFound
	}
	return batch, err
}

// Entries returns the renames of a batch in the order they happened.
func (s *Store) Entries(ctx context.Context, batchID string) ([]plan.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT original, proposed FROM renames WHERE batch_id = ? ORDER BY seq`, batchID)
	if err != nil {
		return nil, fmt.Errorf("list renames: %w", err)
	}
	defer rows.Close()

	var entries []plan.Entry
	for rows.Next() {
		var entry plan.Entry
		if err := rows.Scan(&entry.Original, &entry.Proposed); err != nil {
			return nil, fmt.Errorf("scan rename: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate renames: %w", err)
	}
	return entries, nil
}

// MarkUndone flags a batch as reversed.
func (s *Store) MarkUndone(ctx context.Context, batchID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE batches SET undone_at = ? WHERE id = ? AND undone_at IS NULL`,
		s.timestamp(), batchID)
	if err != nil {
		return fmt.Errorf("mark batch undone: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrAlreadyUndone, batchID)
	}
	return nil
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(timeLayout)
}

// BatchRecorder appends renames to a single batch.
type BatchRecorder struct {
	store      *Store
	id         string
	workingDir string
	info       BatchInfo
	created    bool
	seq        int
}

// ID returns the batch identifier.
func (r *BatchRecorder) ID() string {
	return r.id
}

// Count returns how many renames have been recorded.
func (r *BatchRecorder) Count() int {
	return r.seq
}

// Record stores a completed rename with absolute paths.
func (r *BatchRecorder) Record(ctx context.Context, entry plan.Entry) error {
	original, err := filepath.Abs(entry.Original)
	if err != nil {
		return fmt.Errorf("resolve %q: %w", entry.Original, err)
	}
	proposed, err := filepath.Abs(entry.Proposed)
	if err != nil {
		return fmt.Errorf("resolve %q: %w", entry.Proposed, err)
	}

	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := r.store.timestamp()
	if !r.created {
		rules, err := json.Marshal(r.info.Rules)
		if err != nil {
			return fmt.Errorf("encode rules: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO batches (id, created_at, working_dir, rules_json, undo_of) VALUES (?, ?, ?, ?, ?)`,
			r.id, now, r.workingDir, string(rules), nullableString(r.info.UndoOf),
		); err != nil {
			return fmt.Errorf("insert batch: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO renames (batch_id, seq, original, proposed, renamed_at) VALUES (?, ?, ?, ?, ?)`,
		r.id, r.seq+1, original, proposed, now,
	); err != nil {
		return fmt.Errorf("insert rename: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rename: %w", err)
	}
	r.created = true
	r.seq++
	return nil
}
