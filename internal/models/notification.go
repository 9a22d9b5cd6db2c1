package models

import "time"

// Notification is a follow-up reminder for a task creator. At most one
// unread notification may exist per (user, task) pair; the creation
// path enforces this.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"column:user_id;not null;index"`
	TaskID    uint      `json:"taskId" gorm:"column:task_id;not null;index"`
	Message   string    `json:"message" gorm:"not null"`
	IsRead    bool      `json:"isRead" gorm:"column:is_read;default:false"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for Notification Model
func (Notification) TableName() string {
	return "notifications"
}
