package models

// Category is the canonical server copy of a category row.
type Category struct {
	ID        string
	ListID    string
	Name      string
	SortOrder int
	UpdatedAt int64
	Deleted   bool
}
