package task

import (
	"errors"
	"testing"
	"time"

	domain "github.com/example/taskify/domain/task"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&domain.Task{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTask(ownerID, title string) *domain.Task {
	now := time.Now()
	return &domain.Task{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Title:     title,
		Status:    domain.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	task := newTask("owner-1", "Write tests")
	task.Description = "repository coverage"

	if err := repo.Create(task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	var found domain.Task
	if err := db.First(&found, "id = ?", task.ID).Error; err != nil {
		t.Fatalf("failed to find created task: %v", err)
	}

	if found.Title != task.Title {
		t.Errorf("expected title %q, got %q", task.Title, found.Title)
	}
	if found.Status != domain.StatusPending {
		t.Errorf("expected status %q, got %q", domain.StatusPending, found.Status)
	}
}

func TestRepository_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	task := newTask("owner-1", "FindByID test")
	if err := repo.Create(task); err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}

	t.Run("existing task, right owner", func(t *testing.T) {
		found, err := repo.FindByID(task.ID, "owner-1")
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if found.ID != task.ID {
			t.Errorf("expected ID %q, got %q", task.ID, found.ID)
		}
	})

	t.Run("non-existent task", func(t *testing.T) {
		_, err := repo.FindByID("no-such-id", "owner-1")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	// Ownership mismatch is reported exactly like absence.
	t.Run("existing task, wrong owner", func(t *testing.T) {
		_, err := repo.FindByID(task.ID, "owner-2")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	task := newTask("owner-1", "Original title")
	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	task.DueDate = &due
	if err := repo.Create(task); err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}

	t.Run("update existing task", func(t *testing.T) {
		task.Title = "Updated title"
		task.Status = domain.StatusCompleted

		if err := repo.Update(task); err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		var found domain.Task
		if err := db.First(&found, "id = ?", task.ID).Error; err != nil {
			t.Fatalf("failed to find updated task: %v", err)
		}
		if found.Title != "Updated title" {
			t.Errorf("expected title %q, got %q", "Updated title", found.Title)
		}
		if found.Status != domain.StatusCompleted {
			t.Errorf("expected status %q, got %q", domain.StatusCompleted, found.Status)
		}
	})

	t.Run("clearing the due date persists", func(t *testing.T) {
		task.DueDate = nil
		if err := repo.Update(task); err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		var found domain.Task
		if err := db.First(&found, "id = ?", task.ID).Error; err != nil {
			t.Fatalf("failed to find updated task: %v", err)
		}
		if found.DueDate != nil {
			t.Errorf("expected due date cleared, got %v", found.DueDate)
		}
	})

	t.Run("update with wrong owner", func(t *testing.T) {
		stolen := *task
		stolen.OwnerID = "owner-2"
		stolen.Title = "Should not apply"

		if err := repo.Update(&stolen); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("update non-existent task", func(t *testing.T) {
		missing := newTask("owner-1", "ghost")
		if err := repo.Update(missing); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	task := newTask("owner-1", "To be deleted")
	if err := repo.Create(task); err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}

	t.Run("delete with wrong owner", func(t *testing.T) {
		if err := repo.Delete(task.ID, "owner-2"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete existing task", func(t *testing.T) {
		if err := repo.Delete(task.ID, "owner-1"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		// Hard delete: the row is gone, not flagged.
		var count int64
		if err := db.Model(&domain.Task{}).Where("id = ?", task.ID).Count(&count).Error; err != nil {
			t.Fatalf("failed to count tasks: %v", err)
		}
		if count != 0 {
			t.Errorf("expected 0 rows after delete, got %d", count)
		}

		if _, err := repo.FindByID(task.ID, "owner-1"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("second delete reports not found", func(t *testing.T) {
		if err := repo.Delete(task.ID, "owner-1"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestRepository_List_Ordering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []*domain.Task{
		{ID: "id-a", OwnerID: "owner-1", Title: "oldest", Status: domain.StatusPending, CreatedAt: base, UpdatedAt: base},
		{ID: "id-b", OwnerID: "owner-1", Title: "tied-low", Status: domain.StatusPending, CreatedAt: base.Add(time.Hour), UpdatedAt: base},
		{ID: "id-c", OwnerID: "owner-1", Title: "tied-high", Status: domain.StatusPending, CreatedAt: base.Add(time.Hour), UpdatedAt: base},
		{ID: "id-d", OwnerID: "owner-1", Title: "newest", Status: domain.StatusPending, CreatedAt: base.Add(2 * time.Hour), UpdatedAt: base},
	}
	for _, row := range rows {
		if err := repo.Create(row); err != nil {
			t.Fatalf("failed to create test task: %v", err)
		}
	}

	// created_at descending, id descending on the tie.
	want := []string{"id-d", "id-c", "id-b", "id-a"}

	for run := 0; run < 2; run++ {
		tasks, err := repo.List("owner-1", domain.ListFilter{Status: domain.FilterAny}, 10, 0)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(tasks) != len(want) {
			t.Fatalf("expected %d tasks, got %d", len(want), len(tasks))
		}
		for i, id := range want {
			if tasks[i].ID != id {
				t.Errorf("run %d: position %d = %q, want %q", run, i, tasks[i].ID, id)
			}
		}
	}
}

func TestRepository_List_Filters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	mine := []*domain.Task{
		newTask("owner-1", "Buy milk"),
		newTask("owner-1", "Finish report"),
		newTask("owner-1", "buy BREAD at 100% discount"),
	}
	mine[1].Status = domain.StatusCompleted
	mine[1].Description = "quarterly numbers"
	for _, row := range mine {
		if err := repo.Create(row); err != nil {
			t.Fatalf("failed to create test task: %v", err)
		}
	}
	// Another user's rows must never surface.
	if err := repo.Create(newTask("owner-2", "Buy a boat")); err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}

	list := func(t *testing.T, filter domain.ListFilter) []domain.Task {
		t.Helper()
		tasks, err := repo.List("owner-1", filter, 10, 0)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		return tasks
	}

	t.Run("no filters returns all owned tasks", func(t *testing.T) {
		tasks := list(t, domain.ListFilter{Status: domain.FilterAny})
		if len(tasks) != 3 {
			t.Errorf("expected 3 tasks, got %d", len(tasks))
		}
		for _, task := range tasks {
			if task.OwnerID != "owner-1" {
				t.Errorf("leaked task %q owned by %q", task.ID, task.OwnerID)
			}
		}
	})

	t.Run("status filter", func(t *testing.T) {
		pending := list(t, domain.ListFilter{Status: domain.FilterPending})
		if len(pending) != 2 {
			t.Errorf("expected 2 pending tasks, got %d", len(pending))
		}
		completed := list(t, domain.ListFilter{Status: domain.FilterCompleted})
		if len(completed) != 1 {
			t.Errorf("expected 1 completed task, got %d", len(completed))
		}
	})

	t.Run("search is case-insensitive over title and description", func(t *testing.T) {
		if got := list(t, domain.ListFilter{Status: domain.FilterAny, Search: "BUY"}); len(got) != 2 {
			t.Errorf("search BUY: expected 2 tasks, got %d", len(got))
		}
		if got := list(t, domain.ListFilter{Status: domain.FilterAny, Search: "quarterly"}); len(got) != 1 {
			t.Errorf("search quarterly: expected 1 task, got %d", len(got))
		}
	})

	t.Run("LIKE metacharacters match literally", func(t *testing.T) {
		if got := list(t, domain.ListFilter{Status: domain.FilterAny, Search: "100%"}); len(got) != 1 {
			t.Errorf("search 100%%: expected 1 task, got %d", len(got))
		}
		if got := list(t, domain.ListFilter{Status: domain.FilterAny, Search: "1_0%"}); len(got) != 0 {
			t.Errorf("search 1_0%%: expected 0 tasks, got %d", len(got))
		}
	})

	t.Run("count matches filter", func(t *testing.T) {
		count, err := repo.Count("owner-1", domain.ListFilter{Status: domain.FilterAny, Search: "buy"})
		if err != nil {
			t.Fatalf("Count() error = %v", err)
		}
		if count != 2 {
			t.Errorf("expected count 2, got %d", count)
		}
	})
}
