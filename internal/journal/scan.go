package journal

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const batchColumns = `b.id, b.created_at, b.working_dir, b.rules_json, b.undo_of, b.undone_at,
	(SELECT COUNT(1) FROM renames r WHERE r.batch_id = b.id)`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBatch(row rowScanner) (*Batch, error) {
	var (
		batch     Batch
		createdAt string
		rulesJSON string
		undoOf    sql.NullString
		undoneAt  sql.NullString
	)
	if err := row.Scan(&batch.ID, &createdAt, &batch.WorkingDir, &rulesJSON, &undoOf, &undoneAt, &batch.Count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan batch: %w", err)
	}

	created, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	batch.CreatedAt = created
	if err := json.Unmarshal([]byte(rulesJSON), &batch.Rules); err != nil {
		return nil, fmt.Errorf("decode rules for batch %s: %w", batch.ID, err)
	}
	if undoOf.Valid {
		batch.UndoOf = undoOf.String
	}
	if undoneAt.Valid {
		ts, err := time.Parse(timeLayout, undoneAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse undone_at %q: %w", undoneAt.String, err)
		}
		batch.UndoneAt = &ts
	}
	return &batch, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
