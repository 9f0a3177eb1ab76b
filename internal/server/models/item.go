package models

import "time"

// Item is an inventory record owned by exactly one user.
type Item struct {
	ID        int64
	Name      string
	Quantity  string
	Category  string
	UserID    int64
	CreatedAt time.Time
}
