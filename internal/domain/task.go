package domain

import (
	"errors"
	"time"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrInvalidStatus = errors.New("invalid task status")
)

type TaskStatus string

const (
	TaskPending     TaskStatus = "pending"
	TaskOnHold      TaskStatus = "onHold"
	TaskInProgress  TaskStatus = "inProgress"
	TaskUnderReview TaskStatus = "underReview"
	TaskCompleted   TaskStatus = "completed"
)

// Valid reports whether s is one of the five known statuses.
// No transition rules apply: any valid status may follow any other.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskOnHold, TaskInProgress, TaskUnderReview, TaskCompleted:
		return true
	}
	return false
}

// StatusChange is one entry of a task's append-only status history.
type StatusChange struct {
	UserID    string
	Status    TaskStatus
	ChangedAt time.Time
}

type Task struct {
	ID          string
	Name        string
	Description string
	ProjectID   string
	Status      TaskStatus
	CompletedBy []StatusChange
	Notes       []string // note ids
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BelongsTo reports whether the task is listed under projectID.
func (t *Task) BelongsTo(projectID string) bool {
	return t.ProjectID == projectID
}
