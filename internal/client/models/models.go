// Package models defines client-side data models used by the cartsync client:
// the materialized item and category rows kept in the local store, and the
// change records accumulated in the mutation queue while offline.
package models

import "encoding/json"

// Item is a materialized shopping-list item persisted locally.
// UpdatedAt is the server timestamp of the last write the server has seen;
// rows created offline keep UpdatedAt=0 until the first successful sync.
type Item struct {
	// ID is a globally unique identifier, assigned client-side at creation.
	ID string

	// ListID references the list this item belongs to.
	ListID string

	// CategoryID references a category, or nil for "Uncategorized".
	CategoryID *string

	// Text is the item's display text.
	Text string

	// Completed marks the item as checked off.
	Completed bool

	// UpdatedAt is the server-assigned timestamp in Unix milliseconds.
	UpdatedAt int64

	// Deleted marks the item as a tombstone (kept until the server confirms).
	Deleted bool
}

// Category is a materialized category persisted locally. SortOrder is the
// position in the globally consistent order shared by all devices.
type Category struct {
	ID        string
	ListID    string
	Name      string
	SortOrder int
	UpdatedAt int64
	Deleted   bool
}

// Op classifies a queued change record.
type Op string

const (
	OpItemAdd        Op = "item_add"
	OpItemUpdate     Op = "item_update"
	OpItemDelete     Op = "item_delete"
	OpCategoryAdd    Op = "category_add"
	OpCategoryUpdate Op = "category_update"
	OpCategoryDelete Op = "category_delete"
	OpCategoryOrder  Op = "category_order"
)

// IsItemOp reports whether the op belongs to the item change stream.
func (o Op) IsItemOp() bool {
	return o == OpItemAdd || o == OpItemUpdate || o == OpItemDelete
}

// Change is one mutation-queue record. Payload holds the op-specific fields
// as JSON so all variants share one physical queue in insertion order.
// ClientTS orders edits within a single offline session only; the server
// overwrites it with its own timestamp on persistence.
type Change struct {
	Seq      int64
	ListID   string
	Op       Op
	Payload  json.RawMessage
	ClientTS int64
}

// ItemPayload is the payload for item_add / item_update / item_delete.
type ItemPayload struct {
	ID         string  `json:"id"`
	CategoryID *string `json:"categoryId"`
	Text       string  `json:"text"`
	Completed  bool    `json:"completed"`
}

// CategoryPayload is the payload for category_add / category_update /
// category_delete.
type CategoryPayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
}

// OrderPayload is the payload for category_order: the desired category ids
// in display order.
type OrderPayload struct {
	IDs []string `json:"ids"`
}

// ItemPayload decodes the change payload as an ItemPayload.
func (c *Change) ItemPayload() (*ItemPayload, error) {
	var p ItemPayload
	if err := json.Unmarshal(c.Payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CategoryPayload decodes the change payload as a CategoryPayload.
func (c *Change) CategoryPayload() (*CategoryPayload, error) {
	var p CategoryPayload
	if err := json.Unmarshal(c.Payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// OrderPayload decodes the change payload as an OrderPayload.
func (c *Change) OrderPayload() (*OrderPayload, error) {
	var p OrderPayload
	if err := json.Unmarshal(c.Payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// NewChange builds a change record for the given op, marshalling the payload.
func NewChange(listID string, op Op, payload any, clientTS int64) (*Change, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Change{ListID: listID, Op: op, Payload: b, ClientTS: clientTS}, nil
}
