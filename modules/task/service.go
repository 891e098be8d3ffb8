package task

import (
	"context"
	"strings"
	"time"

	domain "github.com/example/taskify/domain/task"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

// createTask handles the task.create service request.
func (m *TaskModule) createTask(_ context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	if req.OwnerID == "" {
		return TaskResponse{}, invalidField("owner_id", "owner is required")
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return TaskResponse{}, invalidField("title", "title must not be empty")
	}

	// Past due dates are allowed: an already-overdue entry is valid.
	now := time.Now()
	task := &domain.Task{
		ID:          uuid.New().String(),
		OwnerID:     req.OwnerID,
		Title:       title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := m.repo.Create(task); err != nil {
		return TaskResponse{}, err
	}

	return toTaskResponse(task), nil
}

// getTask handles the task.get service request.
func (m *TaskModule) getTask(_ context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.repo.FindByID(req.ID, req.OwnerID)
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(task), nil
}

// listTasks handles the task.list service request. It produces a
// deterministic, paginated view of one user's tasks and has no side
// effects.
func (m *TaskModule) listTasks(_ context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	status, err := domain.ParseStatusFilter(req.Status)
	if err != nil {
		return ListTasksResponse{}, invalidField("status", err.Error())
	}
	filter := domain.ListFilter{Status: status, Search: req.Search}

	total, err := m.repo.Count(req.OwnerID, filter)
	if err != nil {
		return ListTasksResponse{}, err
	}

	pageSize := int64(m.pageSize)
	pageCount := int((total + pageSize - 1) / pageSize)

	page := req.Page
	if page == 0 {
		page = 1
	}

	resp := ListTasksResponse{
		Items:       []TaskResponse{},
		TotalCount:  total,
		PageCount:   pageCount,
		CurrentPage: page,
	}

	// Out-of-range pages yield an empty page, not an error. Page 1 of
	// an empty result set falls out the same way since pageCount is 0.
	if page < 1 || page > pageCount {
		return resp, nil
	}

	tasks, err := m.repo.List(req.OwnerID, filter, m.pageSize, (page-1)*m.pageSize)
	if err != nil {
		return ListTasksResponse{}, err
	}

	resp.Items = make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		resp.Items = append(resp.Items, toTaskResponse(&tasks[i]))
	}
	return resp, nil
}

// updateTask handles the task.update service request.
func (m *TaskModule) updateTask(_ context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.repo.FindByID(req.ID, req.OwnerID)
	if err != nil {
		return TaskResponse{}, err
	}

	// Immutable fields: a payload that tries to change them is
	// rejected outright, an unchanged echo is tolerated.
	if req.PayloadID != nil && *req.PayloadID != task.ID {
		return TaskResponse{}, invalidField("id", "id is immutable")
	}
	if req.PayloadOwnerID != nil && *req.PayloadOwnerID != task.OwnerID {
		return TaskResponse{}, invalidField("owner_id", "owner is immutable")
	}
	if req.PayloadCreatedAt != nil && !req.PayloadCreatedAt.Equal(task.CreatedAt) {
		return TaskResponse{}, invalidField("created_at", "created_at is immutable")
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return TaskResponse{}, invalidField("title", "title must not be empty")
		}
		task.Title = title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.ClearDueDate {
		task.DueDate = nil
	} else if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if err := m.repo.Update(task); err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(task), nil
}

// toggleTask handles the task.toggle service request. It flips
// pending<->completed and changes nothing else; toggling twice restores
// the original status.
func (m *TaskModule) toggleTask(_ context.Context, req ToggleTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.repo.FindByID(req.ID, req.OwnerID)
	if err != nil {
		return TaskResponse{}, err
	}

	task.Status = task.Status.Toggled()
	if err := m.repo.Update(task); err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(task), nil
}

// deleteTask handles the task.delete service request.
func (m *TaskModule) deleteTask(_ context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.repo.Delete(req.ID, req.OwnerID); err != nil {
		return DeleteTaskResponse{Deleted: false, ID: req.ID}, err
	}
	return DeleteTaskResponse{Deleted: true, ID: req.ID}, nil
}

// toTaskResponse converts a Task entity to a TaskResponse.
func toTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		OwnerID:     task.OwnerID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
