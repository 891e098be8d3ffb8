package api

import "time"

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse represents an authentication token response.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// UserResponse represents a user response.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTaskBody is the JSON body for creating a task. DueDate is an
// optional YYYY-MM-DD date; past dates are accepted.
type CreateTaskBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
}

// UpdateTaskBody is the JSON body for a partial task update. Nil
// pointers leave a field untouched; an empty DueDate string clears the
// due date. ID, OwnerID and CreatedAt are immutable: including one with
// a changed value fails the request.
type UpdateTaskBody struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *string    `json:"due_date"`
	ID          *string    `json:"id"`
	OwnerID     *string    `json:"owner_id"`
	CreatedAt   *time.Time `json:"created_at"`
}

// TaskView represents a task in API responses. DueDate is rendered as
// YYYY-MM-DD and omitted when unset.
type TaskView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     string    `json:"due_date,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskListView is one page of a task listing.
type TaskListView struct {
	Items       []TaskView `json:"items"`
	TotalCount  int64      `json:"total_count"`
	PageCount   int        `json:"page_count"`
	CurrentPage int        `json:"current_page"`
}

// ErrorResponse represents an error response. Field is set for
// validation failures to point at the offending input.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}
