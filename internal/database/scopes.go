package database

import "gorm.io/gorm"

// OwnedBy restricts a task query to one user's rows
func OwnedBy(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// ManualOrder sorts tasks by their client-controlled order index, oldest first on ties
func ManualOrder(db *gorm.DB) *gorm.DB {
	return db.Order("order_index ASC").Order("id ASC")
}
