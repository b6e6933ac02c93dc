package models

import "time"

// Category is a label attached to posts. Names are unique; lookup by name is
// case-insensitive exact match. Deleting a category detaches it from posts,
// it never cascades to the posts themselves.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"unique;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
