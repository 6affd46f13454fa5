package database

import (
	"fmt"
	"log"

	"github.com/yukikurage/todo-api/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes the task queries rely on. It goes
// through the gorm migrator so it works on every supported driver.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		name    string
		columns string
	}{
		// List: WHERE user_id = ? ORDER BY order_index
		{"idx_tasks_user_order", "user_id, order_index"},
		// Dashboard counts
		{"idx_tasks_user_status", "user_id, status"},
		{"idx_tasks_user_priority", "user_id, priority"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(&models.Task{}, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON tasks (%s)", idx.name, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on tasks(%s)", idx.name, idx.columns)
	}

	return nil
}
