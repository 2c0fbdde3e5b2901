package domain

import "time"

// Task is a single to-do item. ID and CreatedAt are assigned by the
// database and never change afterwards.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
