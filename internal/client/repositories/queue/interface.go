package queue

import (
	"context"

	"github.com/ebalakin/cartsync/internal/client/models"
)

// Repository is the durable mutation queue: an ordered, append-only log of
// locally-originated change records awaiting transmission.
//
// The drain/commit pair carries the queue's core correctness contract:
// Drain returns the records without removing them and reports the sequence
// high-water mark of that drain; Commit removes only records at or below a
// mark. A mutation enqueued while a sync request is in flight gets a higher
// sequence number, survives that sync's Commit, and goes out next cycle.
type Repository interface {
	// Enqueue appends a change record and fills in its assigned Seq.
	Enqueue(ctx context.Context, change *models.Change) error

	// Drain returns all records of a list in insertion order without
	// removing them, plus the highest Seq present (0 when empty).
	Drain(ctx context.Context, listID string) ([]*models.Change, int64, error)

	// Commit removes every record of a list with Seq <= upto.
	Commit(ctx context.Context, listID string, upto int64) error

	// Len reports the number of queued records for a list.
	Len(ctx context.Context, listID string) (int, error)
}
