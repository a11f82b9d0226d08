// Package queue provides the SQLite-backed mutation queue. Records live in a
// single table ordered by an autoincrement sequence, so insertion order is
// the transmission order.
package queue

import (
	"context"
	"fmt"

	"github.com/ebalakin/cartsync/internal/client/models"
	"github.com/ebalakin/cartsync/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Enqueue appends a change record and assigns its sequence number.
func (r *SQLiteRepository) Enqueue(ctx context.Context, change *models.Change) error {
	query := `INSERT INTO queue (list_id, op, payload, client_ts) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, change.ListID, string(change.Op), []byte(change.Payload), change.ClientTS)
	if err != nil {
		return fmt.Errorf("failed to enqueue change: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get change seq: %w", err)
	}
	change.Seq = seq
	return nil
}

// Drain returns all queued records of a list in insertion order, leaving the
// queue untouched so a failed send can be retried. The returned high-water
// mark feeds the eventual Commit.
func (r *SQLiteRepository) Drain(ctx context.Context, listID string) ([]*models.Change, int64, error) {
	query := `SELECT seq, list_id, op, payload, client_ts FROM queue WHERE list_id=? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, listID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to drain queue: %w", err)
	}
	defer rows.Close()

	var result []*models.Change
	var maxSeq int64
	for rows.Next() {
		var c models.Change
		var op string
		if err := rows.Scan(&c.Seq, &c.ListID, &op, (*[]byte)(&c.Payload), &c.ClientTS); err != nil {
			return nil, 0, err
		}
		c.Op = models.Op(op)
		if c.Seq > maxSeq {
			maxSeq = c.Seq
		}
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, maxSeq, nil
}

// Commit truncates the queue up to and including the given sequence number.
// Records enqueued after the corresponding Drain keep higher sequence
// numbers and survive.
func (r *SQLiteRepository) Commit(ctx context.Context, listID string, upto int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM queue WHERE list_id=? AND seq<=?`, listID, upto); err != nil {
		return fmt.Errorf("failed to commit queue: %w", err)
	}
	return nil
}

// Len reports the number of queued records for a list.
func (r *SQLiteRepository) Len(ctx context.Context, listID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM queue WHERE list_id=?`, listID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count queue: %w", err)
	}
	return n, nil
}
