package task

import "time"

// CreateTaskRequest is the request for creating a task. OwnerID is the
// verified identity of the caller, never client-supplied.
type CreateTaskRequest struct {
	OwnerID     string     `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// GetTaskRequest is the request for fetching a single task.
type GetTaskRequest struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
}

// ListTasksRequest is the request for a filtered, paginated listing.
// Status is one of "any", "pending", "completed" ("" means any);
// Search is a case-insensitive substring ("" means no filtering);
// Page defaults to 1.
type ListTasksRequest struct {
	OwnerID string `json:"owner_id"`
	Status  string `json:"status,omitempty"`
	Search  string `json:"search,omitempty"`
	Page    int    `json:"page,omitempty"`
}

// UpdateTaskRequest is the request for a partial update. Nil pointers
// leave the field untouched; ClearDueDate removes the due date.
// PayloadID, PayloadOwnerID and PayloadCreatedAt echo immutable fields
// a client included in its payload: a differing value is rejected.
type UpdateTaskRequest struct {
	ID           string     `json:"id"`
	OwnerID      string     `json:"owner_id"`
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	ClearDueDate bool       `json:"clear_due_date,omitempty"`

	PayloadID        *string    `json:"payload_id,omitempty"`
	PayloadOwnerID   *string    `json:"payload_owner_id,omitempty"`
	PayloadCreatedAt *time.Time `json:"payload_created_at,omitempty"`
}

// ToggleTaskRequest is the request for flipping a task's status.
type ToggleTaskRequest struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
}

// DeleteTaskRequest is the request for permanently removing a task.
type DeleteTaskRequest struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
}

// DeleteTaskResponse is the response after deleting a task.
type DeleteTaskResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// TaskResponse represents a task in responses.
type TaskResponse struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ListTasksResponse is one page of a task listing. TotalCount and
// PageCount describe the full filtered set, not just this page.
type ListTasksResponse struct {
	Items       []TaskResponse `json:"items"`
	TotalCount  int64          `json:"total_count"`
	PageCount   int            `json:"page_count"`
	CurrentPage int            `json:"current_page"`
}
