package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"business-tracker-api/internal/database"
	"business-tracker-api/internal/models"
	"business-tracker-api/internal/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// runFollowUpSweep scans for tasks created by user whose follow-up date
// has arrived without the task being completed, and raises a reminder
// for each. The sweep runs on every dashboard load, so createNotification
// must keep it idempotent.
func runFollowUpSweep(db *gorm.DB, user models.User) error {
	var due []models.Task
	if err := db.Where("follow_up_date IS NOT NULL AND follow_up_date <= ? AND status <> ? AND assigned_by = ?",
		models.Today(), models.StatusCompleted, user.ID).Find(&due).Error; err != nil {
		return err
	}
	for _, task := range due {
		message := fmt.Sprintf("Follow up on task: '%s' - %s", task.Title, task.FollowUpMessage)
		if err := createNotification(db, user.ID, task.ID, message); err != nil {
			return err
		}
	}
	return nil
}

// createNotification inserts an unread notification unless one already
// exists for the same (user, task) pair. This is what guarantees the
// at-most-one-unread invariant under repeated sweeps.
func createNotification(db *gorm.DB, userID, taskID uint, message string) error {
	var count int64
	if err := db.Model(&models.Notification{}).
		Where("user_id = ? AND task_id = ? AND is_read = ?", userID, taskID, false).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	notification := models.Notification{
		UserID:  userID,
		TaskID:  taskID,
		Message: message,
	}
	if err := db.Create(&notification).Error; err != nil {
		return err
	}

	// Push the new reminder to the user's open sessions
	evt := map[string]any{
		"type":           "notification",
		"notificationId": notification.ID,
		"taskId":         taskID,
		"message":        message,
	}
	if bytes, err := json.Marshal(evt); err == nil {
		realtime.GetHub().Broadcast(userID, bytes)
	}
	return nil
}

// unreadNotifications returns the user's unread notifications, newest
// first.
func unreadNotifications(db *gorm.DB, userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := db.Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

// MarkNotificationRead handles POST /api/notifications/:id/read
// Marking is scoped to the caller's own notifications; a missing or
// foreign id is a silent no-op.
func MarkNotificationRead(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	notificationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := database.GetDB()
	if err := db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, user.ID).
		Update("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
