package task

import (
	"errors"
	"fmt"
	"strings"

	domain "github.com/example/taskify/domain/task"
	"gorm.io/gorm"
)

// Repository provides owner-scoped access to task storage using GORM.
// Every id-addressed operation filters by owner in the same statement
// that touches the row, so a non-owned id behaves exactly like a
// missing one.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new task row.
func (r *Repository) Create(task *domain.Task) error {
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by id, guarded by ownership. This is the
// single guarded lookup shared by get, update, toggle and delete.
func (r *Repository) FindByID(id, ownerID string) (*domain.Task, error) {
	var task domain.Task
	err := r.db.First(&task, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// Update persists changes to an existing task row. The owner predicate
// is repeated here so a row cannot be rewritten through a stale handle.
func (r *Repository) Update(task *domain.Task) error {
	result := r.db.Model(&domain.Task{}).
		Where("id = ? AND owner_id = ?", task.ID, task.OwnerID).
		Select("title", "description", "due_date", "status", "updated_at").
		Updates(task)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete permanently removes a task row. Deleting a missing or
// non-owned id reports ErrNotFound rather than silently succeeding.
func (r *Repository) Delete(id, ownerID string) error {
	result := r.db.Delete(&domain.Task{}, "id = ? AND owner_id = ?", id, ownerID)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns how many of ownerID's tasks match the filter.
func (r *Repository) Count(ownerID string, filter domain.ListFilter) (int64, error) {
	var count int64
	if err := r.scope(ownerID, filter).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

// List returns one page of ownerID's tasks matching the filter, newest
// first. Ties on created_at are broken by id descending so the order is
// total and stable across calls.
func (r *Repository) List(ownerID string, filter domain.ListFilter, limit, offset int) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.scope(ownerID, filter).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// scope builds the shared owner + filter predicate for Count and List.
// The owner clause comes first: no filter combination can widen the
// result beyond the caller's own rows.
func (r *Repository) scope(ownerID string, filter domain.ListFilter) *gorm.DB {
	q := r.db.Model(&domain.Task{}).Where("owner_id = ?", ownerID)

	switch filter.Status {
	case domain.FilterPending:
		q = q.Where("status = ?", domain.StatusPending)
	case domain.FilterCompleted:
		q = q.Where("status = ?", domain.StatusCompleted)
	}

	if filter.Search != "" {
		needle := "%" + escapeLike(strings.ToLower(filter.Search)) + "%"
		q = q.Where(
			`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`,
			needle, needle,
		)
	}

	return q
}

// escapeLike escapes LIKE metacharacters so user input matches as a
// literal substring.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
