package models

import (
	"strings"
	"time"
)

// TaskStatus represents the stored status of a task
type TaskStatus string

const (
	StatusTodo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
)

// StatusFailed is a virtual filter value, never stored: it selects
// tasks whose end date has passed without the task being completed.
const StatusFailed TaskStatus = "Failed"

// StatusForPercent maps a completion percentage to its task status.
// Exhaustive: >=100 is completed, anything above zero is in progress,
// zero and below is to-do.
func StatusForPercent(percent float64) TaskStatus {
	switch {
	case percent >= 100:
		return StatusCompleted
	case percent > 0:
		return StatusInProgress
	default:
		return StatusTodo
	}
}

// Task represents a task assigned between users. AssignedBy is the
// creator; LeaderID and ProjectID are optional references.
type Task struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	Title           string     `json:"title" gorm:"not null;index"`
	Description     string     `json:"description"`
	TaskType        string     `json:"taskType" gorm:"column:task_type;default:'Project'"`
	Level           string     `json:"level" gorm:"default:'Normal'"`
	AssignedTo      uint       `json:"assignedTo" gorm:"column:assigned_to;index"`
	AssignedBy      uint       `json:"assignedBy" gorm:"column:assigned_by;index"`
	LeaderID        *uint      `json:"leaderId" gorm:"column:leader_id"`
	ProjectID       *uint      `json:"projectId" gorm:"column:project_id"`
	Status          TaskStatus `json:"status" gorm:"not null;default:'To Do';index"`
	CreatedAt       time.Time  `json:"createdAt"`
	StartDate       *time.Time `json:"startDate" gorm:"column:start_date"`
	EndDate         *time.Time `json:"endDate" gorm:"column:end_date"`
	FollowUpDate    *time.Time `json:"followUpDate" gorm:"column:follow_up_date"`
	FollowUpMessage string     `json:"followUpMessage" gorm:"column:follow_up_message"`
	SuccessPercent  float64    `json:"successPercent" gorm:"column:success_percent;default:0"`
	AdminComment    string     `json:"adminComment" gorm:"column:admin_comment"`
	UserComment     string     `json:"userComment" gorm:"column:user_comment"`

	// Derived fields set at read time, never persisted.
	IsFailed       bool   `json:"isFailed" gorm:"-"`
	AssignedToName string `json:"assignedToName,omitempty" gorm:"-"`
	LeaderName     string `json:"leaderName,omitempty" gorm:"-"`
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}

// Failed reports whether the task missed its end date without being
// completed. today is expected to be truncated to midnight.
func (t *Task) Failed(today time.Time) bool {
	return t.EndDate != nil && t.EndDate.Before(today) && t.Status != StatusCompleted
}

// Today returns the current date truncated to local midnight, the
// reference point for end-date and follow-up comparisons.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// ParseDate parses a YYYY-MM-DD form value. Empty input yields a nil
// date rather than an error. Dates are anchored to local midnight so
// comparisons against Today are exact regardless of the UTC offset.
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
