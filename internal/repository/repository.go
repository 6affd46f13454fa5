package repository

import (
	"github.com/yukikurage/todo-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID regardless of owner
	FindByID(id uint64) (*models.Task, error)

	// ListByOwner returns a user's tasks in manual order
	ListByOwner(userID uint64) ([]models.Task, error)

	// CountByOwner counts a user's tasks
	CountByOwner(userID uint64) (int64, error)

	// CountByOwnerAndStatus counts a user's tasks with the given status
	CountByOwnerAndStatus(userID uint64, status string) (int64, error)

	// CountByOwnerAndPriority counts a user's tasks with the given priority
	CountByOwnerAndPriority(userID uint64, priority string) (int64, error)

	// Update persists every column of task
	Update(task *models.Task) error

	// Delete permanently removes a task
	Delete(id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}
