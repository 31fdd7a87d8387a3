// Package overlay persists admin customizations of static datasets as a
// mutation log. The base dataset ships with the binary and is never
// rewritten; reads merge the log on top of it, and a reset simply clears
// the log for a bucket.
package overlay

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Known buckets.
const (
	BucketQuestions    = "questions"
	BucketLicenseTypes = "license_types"
)

// Mutation operations.
const (
	OpAdd    = "add"
	OpEdit   = "edit"
	OpDelete = "delete"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Log is the merged view of a bucket's mutation log. Added payloads keep
// their insertion order so listings stay stable across reads.
type Log struct {
	Added   [][]byte
	Edits   map[string][]byte
	Deleted map[string]bool
}

// Put records an add or edit for an entry. A later Put for the same entry
// replaces the earlier one.
func (s *Store) Put(ctx context.Context, bucket, entryID, op string, payload []byte) error {
	if op != OpAdd && op != OpEdit {
		return fmt.Errorf("put overlay: unsupported op %q", op)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO overlay_mutations (bucket, entry_id, op, payload, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (bucket, entry_id)
		DO UPDATE SET op = excluded.op, payload = excluded.payload, updated_at = excluded.updated_at
	`, bucket, entryID, op, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("put overlay mutation: %w", err)
	}
	return nil
}

// MarkDeleted soft-deletes a base entry. The base row survives untouched;
// reads drop the id while the marker exists.
func (s *Store) MarkDeleted(ctx context.Context, bucket, entryID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO overlay_mutations (bucket, entry_id, op, payload, updated_at)
		VALUES (?, ?, ?, NULL, ?)
		ON CONFLICT (bucket, entry_id)
		DO UPDATE SET op = excluded.op, payload = NULL, updated_at = excluded.updated_at
	`, bucket, entryID, OpDelete, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("mark overlay deleted: %w", err)
	}
	return nil
}

// Remove drops an entry's mutation row entirely. Used when an added entry
// is deleted again: there is no base row to hide, so the log row goes.
func (s *Store) Remove(ctx context.Context, bucket, entryID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM overlay_mutations WHERE bucket = ? AND entry_id = ?
	`, bucket, entryID)
	if err != nil {
		return fmt.Errorf("remove overlay mutation: %w", err)
	}
	return nil
}

// Get returns the mutation row for one entry, or ("", nil, nil) when the
// entry has no mutation recorded.
func (s *Store) Get(ctx context.Context, bucket, entryID string) (op string, payload []byte, err error) {
	var p sql.NullString
	err = s.db.QueryRowContext(ctx, `
		SELECT op, payload FROM overlay_mutations WHERE bucket = ? AND entry_id = ?
	`, bucket, entryID).Scan(&op, &p)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil, nil
		}
		return "", nil, fmt.Errorf("get overlay mutation: %w", err)
	}
	if p.Valid {
		payload = []byte(p.String)
	}
	return op, payload, nil
}

// Reset clears the bucket's entire mutation log, restoring the base dataset.
func (s *Store) Reset(ctx context.Context, bucket string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM overlay_mutations WHERE bucket = ?`, bucket)
	if err != nil {
		return fmt.Errorf("reset overlay bucket: %w", err)
	}
	return nil
}

// Load reads a bucket's full mutation log.
func (s *Store) Load(ctx context.Context, bucket string) (*Log, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT entry_id, op, payload
		FROM overlay_mutations
		WHERE bucket = ?
		ORDER BY updated_at ASC, entry_id ASC
	`, bucket)
	if err != nil {
		return nil, fmt.Errorf("load overlay bucket: %w", err)
	}
	defer rows.Close()

	log := &Log{
		Edits:   map[string][]byte{},
		Deleted: map[string]bool{},
	}
	for rows.Next() {
		var (
			entryID string
			op      string
			payload sql.NullString
		)
		if err := rows.Scan(&entryID, &op, &payload); err != nil {
			return nil, fmt.Errorf("scan overlay mutation: %w", err)
		}
		switch op {
		case OpAdd:
			log.Added = append(log.Added, []byte(payload.String))
		case OpEdit:
			log.Edits[entryID] = []byte(payload.String)
		case OpDelete:
			log.Deleted[entryID] = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate overlay mutations: %w", err)
	}
	return log, nil
}
