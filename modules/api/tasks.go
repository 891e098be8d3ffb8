package api

import (
	"encoding/json"
	"log"
	"regexp"
	"strings"
	"time"

	domain "github.com/example/taskify/domain/user"
	"github.com/example/taskify/modules/task"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// ListTasks returns one page of the caller's tasks, optionally narrowed
// by ?status= (pending|completed|any) and ?q= (case-insensitive
// substring over title and description). ?page= defaults to 1;
// out-of-range pages return an empty items array, not an error.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return unauthorized(c)
	}

	req := task.ListTasksRequest{
		OwnerID: claims.UserID,
		Status:  c.Query("status"),
		Search:  c.Query("q"),
		Page:    c.QueryInt("page", 1),
	}
	var resp task.ListTasksResponse

	if err := callTask(h, c, "list", &req, &resp); err != nil {
		return h.handleTaskError(c, err)
	}

	view := TaskListView{
		Items:       make([]TaskView, 0, len(resp.Items)),
		TotalCount:  resp.TotalCount,
		PageCount:   resp.PageCount,
		CurrentPage: resp.CurrentPage,
	}
	for _, item := range resp.Items {
		view.Items = append(view.Items, toTaskView(item))
	}

	return c.Status(fiber.StatusOK).JSON(view)
}

// CreateTask creates a task owned by the caller.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return unauthorized(c)
	}

	var body CreateTaskBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	req := task.CreateTaskRequest{
		OwnerID:     claims.UserID,
		Title:       body.Title,
		Description: body.Description,
	}
	if body.DueDate != "" {
		due, err := parseDueDate(body.DueDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   "bad_request",
				Message: "Due date must be a YYYY-MM-DD date",
				Field:   "due_date",
			})
		}
		req.DueDate = due
	}

	var resp task.TaskResponse
	if err := callTask(h, c, "create", &req, &resp); err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toTaskView(resp))
}

// GetTask returns a single task by id. A task owned by someone else is
// indistinguishable from a missing one: both are 404.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return unauthorized(c)
	}

	req := task.GetTaskRequest{
		ID:      c.Params("id"),
		OwnerID: claims.UserID,
	}
	var resp task.TaskResponse

	if err := callTask(h, c, "get", &req, &resp); err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toTaskView(resp))
}

// UpdateTask applies a partial update to a task. Fields absent from the
// body are untouched; an empty due_date string clears the due date;
// id, owner_id and created_at are immutable and rejected when changed.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return unauthorized(c)
	}

	var body UpdateTaskBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	req := task.UpdateTaskRequest{
		ID:               c.Params("id"),
		OwnerID:          claims.UserID,
		Title:            body.Title,
		Description:      body.Description,
		PayloadID:        body.ID,
		PayloadOwnerID:   body.OwnerID,
		PayloadCreatedAt: body.CreatedAt,
	}
	if body.DueDate != nil {
		if *body.DueDate == "" {
			req.ClearDueDate = true
		} else {
			due, err := parseDueDate(*body.DueDate)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
					Error:   "bad_request",
					Message: "Due date must be a YYYY-MM-DD date",
					Field:   "due_date",
				})
			}
			req.DueDate = due
		}
	}

	var resp task.TaskResponse
	if err := callTask(h, c, "update", &req, &resp); err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toTaskView(resp))
}

// ToggleTask flips a task between pending and completed.
func (h *Handlers) ToggleTask(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return unauthorized(c)
	}

	req := task.ToggleTaskRequest{
		ID:      c.Params("id"),
		OwnerID: claims.UserID,
	}
	var resp task.TaskResponse

	if err := callTask(h, c, "toggle", &req, &resp); err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toTaskView(resp))
}

// DeleteTask permanently removes a task.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return unauthorized(c)
	}

	req := task.DeleteTaskRequest{
		ID:      c.Params("id"),
		OwnerID: claims.UserID,
	}
	var resp task.DeleteTaskResponse

	if err := callTask(h, c, "delete", &req, &resp); err != nil {
		return h.handleTaskError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// callTask invokes a task module service through the container.
func callTask[Req, Resp any](h *Handlers, c *fiber.Ctx, service string, req *Req, resp *Resp) error {
	return helper.CallRequestReplyService(
		c.UserContext(),
		h.taskContainer,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	)
}

// validationErrPattern matches the textual form of the task module's
// field-level validation errors after they cross the service container.
var validationErrPattern = regexp.MustCompile(`invalid ([a-z_]+): (.+)`)

// handleTaskError maps task service errors to HTTP responses. Absence
// and ownership mismatch surface identically as 404 so the API never
// acts as an existence oracle.
func (h *Handlers) handleTaskError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	if strings.Contains(errStr, "task not found") {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Task not found",
		})
	}

	if m := validationErrPattern.FindStringSubmatch(errStr); m != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: m[2],
			Field:   m[1],
		})
	}

	log.Printf("[api] Internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

// parseDueDate parses a YYYY-MM-DD due date.
func parseDueDate(s string) (*time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// toTaskView converts a task service response to its API shape.
func toTaskView(t task.TaskResponse) TaskView {
	view := TaskView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.DueDate != nil {
		view.DueDate = t.DueDate.Format(time.DateOnly)
	}
	return view
}
