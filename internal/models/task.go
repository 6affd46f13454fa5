package models

import "time"

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	UserID      uint64     `gorm:"not null;index" json:"userId"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	DueDate     *time.Time `gorm:"type:date" json:"dueDate"`
	Priority    string     `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Status      string     `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	Category    *string    `gorm:"type:varchar(100)" json:"category"`
	OrderIndex  int        `gorm:"not null;default:0" json:"orderIndex"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
