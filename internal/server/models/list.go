package models

import "time"

// List is a shopping list. The owner and every account granted access via
// list_access may read and mutate it.
type List struct {
	ID        string
	Name      string
	OwnerID   string
	CreatedAt time.Time
}
