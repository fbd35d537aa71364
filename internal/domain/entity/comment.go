package entity

import "time"

// Comment nota libre sobre una orden.
type Comment struct {
	ID        string
	OrderID   string
	AuthorID  string
	Text      string
	CreatedAt time.Time
}
