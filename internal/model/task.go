package model

import "time"

// Priority codes stored on tasks. 1 sorts first.
const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
)

// StatusDone is the terminal status; done tasks leave the dashboard and
// appear only in history.
const StatusDone = "done"

// Task is a single to-do item owned by one user.
type Task struct {
	ID          uint  `gorm:"primaryKey"`
	UserID      uint  `gorm:"index"`
	CategoryID  *uint `gorm:"index"`
	Title       string
	Description string
	Priority    int    `gorm:"default:2"`
	Status      string `gorm:"default:todo"`
	DueDate     *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Completed reports whether the task has reached the done status.
func (t Task) Completed() bool {
	return t.Status == StatusDone
}
