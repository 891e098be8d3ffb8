package task

import (
	"time"
)

// Status is the closed set of task states. Anything outside the two
// constants below is rejected at validation time, never stored.
type Status string

const (
	// StatusPending is the state every task is created in.
	StatusPending Status = "pending"
	// StatusCompleted marks a finished task.
	StatusCompleted Status = "completed"
)

// Valid reports whether s is one of the two representable states.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Toggled returns the opposite state. Toggling twice yields the original.
func (s Status) Toggled() Status {
	if s == StatusCompleted {
		return StatusPending
	}
	return StatusCompleted
}

// Task represents a single task row owned by exactly one user.
// ID, OwnerID and CreatedAt are immutable after creation.
type Task struct {
	ID          string     `gorm:"primaryKey;type:text" json:"id"`
	OwnerID     string     `gorm:"index;not null;type:text" json:"owner_id"`
	Title       string     `gorm:"not null;type:text" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      Status     `gorm:"not null;default:pending;type:text" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}
