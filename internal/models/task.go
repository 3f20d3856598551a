package models

import "time"

// TaskStatus is the lifecycle state of a task. A task only ever moves between
// StatusPending and StatusCompleted.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
)

// Toggle returns the other status: pending becomes completed and vice versa.
func (s TaskStatus) Toggle() TaskStatus {
	if s == StatusPending {
		return StatusCompleted
	}
	return StatusPending
}

// Valid reports whether s is one of the two known statuses.
func (s TaskStatus) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

type Task struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}
