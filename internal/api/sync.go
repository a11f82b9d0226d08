// Package api defines the JSON wire types of the sync protocol exchanged
// between the cartsync client and server. Timestamps are Unix milliseconds
// assigned by the server at persistence time; client timestamps are advisory.
package api

// ChangeType tags a change record. Requests use add/update/delete;
// responses use update/delete only (an add looks like an update to a
// replica that has never seen the row).
type ChangeType string

const (
	ChangeAdd    ChangeType = "add"
	ChangeUpdate ChangeType = "update"
	ChangeDelete ChangeType = "delete"
)

// ItemChange is one item-level change record.
// CategoryID is nil for "Uncategorized".
type ItemChange struct {
	Type       ChangeType `json:"type"`
	ID         string     `json:"id"`
	CategoryID *string    `json:"categoryId"`
	Text       string     `json:"text"`
	Completed  bool       `json:"completed"`
	Timestamp  int64      `json:"timestamp"`
}

// CategoryChange is one category-level change record.
type CategoryChange struct {
	Type      ChangeType `json:"type"`
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	SortOrder int        `json:"sortOrder"`
	Timestamp int64      `json:"timestamp"`
}

// SyncRequest is the batched upload a client sends for one list.
// CategoryOrder is the desired canonical order of category ids, or nil if
// the batch contains no reordering. LastSync is the caller's sync cursor.
type SyncRequest struct {
	ItemChanges     []ItemChange     `json:"itemChanges"`
	CategoryChanges []CategoryChange `json:"categoryChanges"`
	CategoryOrder   []string         `json:"categoryOrder"`
	LastSync        int64            `json:"lastSync"`
}

// SyncResponse carries the reverse delta: every row whose server timestamp
// is newer than the caller's cursor, plus the full canonical category order.
// Timestamp is the request's server time T and becomes the caller's next
// LastSync.
type SyncResponse struct {
	ItemChanges     []ItemChange     `json:"itemChanges"`
	CategoryChanges []CategoryChange `json:"categoryChanges"`
	CategoryOrder   []string         `json:"categoryOrder"`
	Timestamp       int64            `json:"timestamp"`
}
