package models

import "time"

// Task status values. A task starts as StatusNotStarted and may move
// to any status from any status.
const (
	StatusNotStarted = "notstarted"
	StatusOngoing    = "ongoing"
	StatusDone       = "done"
)

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s string) bool {
	return s == StatusNotStarted || s == StatusOngoing || s == StatusDone
}

// Task belongs to exactly one user. UserID is set at creation and
// never reassigned.
type Task struct {
	ID          string
	UserID      string
	Name        string
	Description string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
