package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/yukikurage/todo-api/internal/constants"
	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrTitleRequired = errors.New("title is required")
	ErrTitleEmpty    = errors.New("title cannot be empty")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository

	// ownerLocks serializes count-then-insert per owner so appended tasks
	// never share an order index.
	ownerLocks sync.Map
	now        func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		now:      time.Now,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	UserID      uint64
	Title       string
	Description *string
	DueDate     *time.Time
	Priority    string
	Status      string
	Category    *string
	OrderIndex  *int
}

// UpdateTaskInput holds one optional value per mutable attribute. Nil means
// "leave unchanged"; an explicit JSON null decodes to nil as well.
// ClearDueDate removes the due date and wins over DueDate.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
	Priority     *string
	Status       *string
	Category     *string
	OrderIndex   *int
}

// DashboardStats summarises one user's tasks
type DashboardStats struct {
	TotalCount        int64
	CompletedCount    int64
	ActiveCount       int64
	HighPriorityCount int64
}

// ListTasks returns the user's tasks in manual order
func (s *TaskService) ListTasks(userID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByOwner(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask creates a task owned by input.UserID. Without an explicit order
// index the task is appended after the owner's existing tasks.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	if input.Priority == "" {
		input.Priority = constants.DefaultTaskPriority
	}
	if input.Status == "" {
		input.Status = constants.DefaultTaskStatus
	}

	now := s.now()
	task := &models.Task{
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Priority:    input.Priority,
		Status:      input.Status,
		Category:    input.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if input.OrderIndex != nil {
		task.OrderIndex = *input.OrderIndex
		if err := s.taskRepo.Create(task); err != nil {
			return nil, fmt.Errorf("failed to create task: %w", err)
		}
		return task, nil
	}

	unlock := s.lockOwner(input.UserID)
	defer unlock()

	count, err := s.taskRepo.CountByOwner(input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	task.OrderIndex = int(count)

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask applies the provided fields to a task owned by userID. A task
// owned by someone else is reported as not found.
func (s *TaskService) UpdateTask(userID, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.findOwnedTask(userID, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = input.Description
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Category != nil {
		task.Category = input.Category
	}
	if input.OrderIndex != nil {
		task.OrderIndex = *input.OrderIndex
	}
	task.UpdatedAt = s.now()

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask permanently removes a task owned by userID
func (s *TaskService) DeleteTask(userID, taskID uint64) error {
	if _, err := s.findOwnedTask(userID, taskID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// GetDashboardStats counts the user's tasks. Active is derived as
// total minus completed rather than queried.
func (s *TaskService) GetDashboardStats(userID uint64) (*DashboardStats, error) {
	total, err := s.taskRepo.CountByOwner(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	completed, err := s.taskRepo.CountByOwnerAndStatus(userID, constants.TaskStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed tasks: %w", err)
	}

	high, err := s.taskRepo.CountByOwnerAndPriority(userID, constants.TaskPriorityHigh)
	if err != nil {
		return nil, fmt.Errorf("failed to count high priority tasks: %w", err)
	}

	return &DashboardStats{
		TotalCount:        total,
		CompletedCount:    completed,
		ActiveCount:       total - completed,
		HighPriorityCount: high,
	}, nil
}

func (s *TaskService) findOwnedTask(userID, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	// Same error as a missing task so other users' ids are not disclosed.
	if task.UserID != userID {
		return nil, ErrTaskNotFound
	}

	return task, nil
}

func (s *TaskService) lockOwner(userID uint64) func() {
	value, _ := s.ownerLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
