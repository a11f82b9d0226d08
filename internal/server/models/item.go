package models

// Item is the canonical server copy of a list item. UpdatedAt is the server
// timestamp of the last accepted write; Deleted marks a tombstone that keeps
// holding the row's timestamp so late writes from stale replicas lose.
type Item struct {
	ID         string
	ListID     string
	CategoryID *string
	Text       string
	Completed  bool
	UpdatedAt  int64
	Deleted    bool
}
