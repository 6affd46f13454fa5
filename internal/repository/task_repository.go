package repository

import (
	"github.com/yukikurage/todo-api/internal/database"
	"github.com/yukikurage/todo-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID regardless of owner
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByOwner returns a user's tasks ordered by order index
func (r *GormTaskRepository) ListByOwner(userID uint64) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := r.db.Scopes(database.OwnedBy(userID), database.ManualOrder).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountByOwner counts a user's tasks
func (r *GormTaskRepository) CountByOwner(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Scopes(database.OwnedBy(userID)).
		Count(&count).Error
	return count, err
}

// CountByOwnerAndStatus counts a user's tasks with the given status
func (r *GormTaskRepository) CountByOwnerAndStatus(userID uint64, status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Scopes(database.OwnedBy(userID)).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// CountByOwnerAndPriority counts a user's tasks with the given priority
func (r *GormTaskRepository) CountByOwnerAndPriority(userID uint64, priority string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Scopes(database.OwnedBy(userID)).
		Where("priority = ?", priority).
		Count(&count).Error
	return count, err
}

// Update persists every column of task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete permanently removes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}
