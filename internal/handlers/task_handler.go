package handlers

import (
	"errors"
	"net/http"

	"business-tracker-api/internal/authz"
	"business-tracker-api/internal/database"
	"business-tracker-api/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateTaskRequest represents the request payload for creating a task
type CreateTaskRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	TaskType        string `json:"taskType"`
	Level           string `json:"level"`
	AssignedTo      uint   `json:"assignedTo" binding:"required"`
	LeaderID        *uint  `json:"leaderId"`
	ProjectID       *uint  `json:"projectId"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	FollowUpDate    string `json:"followUpDate"`
	FollowUpMessage string `json:"followUpMessage"`
}

// UpdateTaskRequest represents the request payload for a partial task
// update. Absent fields are left untouched.
type UpdateTaskRequest struct {
	Title           *string            `json:"title"`
	Description     *string            `json:"description"`
	TaskType        *string            `json:"taskType"`
	Level           *string            `json:"level"`
	AssignedTo      *uint              `json:"assignedTo"`
	LeaderID        *uint              `json:"leaderId"`
	ProjectID       *uint              `json:"projectId"`
	Status          *models.TaskStatus `json:"status"`
	StartDate       *string            `json:"startDate"`
	EndDate         *string            `json:"endDate"`
	FollowUpDate    *string            `json:"followUpDate"`
	FollowUpMessage *string            `json:"followUpMessage"`
	SuccessPercent  *float64           `json:"successPercent"`
	AdminComment    *string            `json:"adminComment"`
	UserComment     *string            `json:"userComment"`
}

// taskFilters holds the optional, AND-combined dashboard filters. The
// broad filters (section/man/leader/project) apply to admin and boss
// only. Substring matches use SQL LIKE, which is case-insensitive for
// ASCII under SQLite.
type taskFilters struct {
	Search  string `form:"search"`
	Status  string `form:"status"`
	Level   string `form:"level"`
	Type    string `form:"type"`
	Section string `form:"section"`
	Man     string `form:"man"`
	Leader  string `form:"leader"`
	Project string `form:"project"`
}

// visibleTaskQuery builds the base task scope for a role: boss sees
// every task, admin sees tasks it created or leads, user sees tasks
// assigned to it.
func visibleTaskQuery(db *gorm.DB, user models.User) *gorm.DB {
	query := db.Model(&models.Task{})
	switch user.Role {
	case models.RoleBoss:
		return query
	case models.RoleAdmin:
		return query.Where("assigned_by = ? OR leader_id = ?", user.ID, user.ID)
	default:
		return query.Where("assigned_to = ?", user.ID)
	}
}

// applyTaskFilters narrows the scoped query. The "Failed" status is
// virtual: it means the end date passed without completion.
func applyTaskFilters(db, query *gorm.DB, user models.User, f taskFilters) *gorm.DB {
	if f.Search != "" {
		query = query.Where("title LIKE ?", "%"+f.Search+"%")
	}
	if f.Status != "" {
		if models.TaskStatus(f.Status) == models.StatusFailed {
			query = query.Where("end_date IS NOT NULL AND end_date < ? AND status <> ?",
				models.Today(), models.StatusCompleted)
		} else {
			query = query.Where("status = ?", f.Status)
		}
	}
	if f.Level != "" {
		query = query.Where("level = ?", f.Level)
	}
	if f.Type != "" {
		query = query.Where("task_type = ?", f.Type)
	}

	if !authz.CanUseBroadFilters(user) {
		return query
	}
	if f.Section != "" {
		query = query.Where("assigned_to IN (?)",
			db.Model(&models.User{}).Select("id").Where("section = ?", f.Section))
	}
	if f.Man != "" {
		query = query.Where("assigned_to IN (?)",
			db.Model(&models.User{}).Select("id").Where("username LIKE ?", "%"+f.Man+"%"))
	}
	if f.Leader != "" {
		query = query.Where("leader_id IN (?)",
			db.Model(&models.User{}).Select("id").Where("username LIKE ?", "%"+f.Leader+"%"))
	}
	if f.Project != "" {
		query = query.Where("project_id IN (?)",
			db.Model(&models.Project{}).Select("id").Where("description LIKE ?", "%"+f.Project+"%"))
	}
	return query
}

// usernamesFor loads the usernames referenced as assignee or leader in
// the given task lists, keyed by user id. One query serves every list
// on a request.
func usernamesFor(db *gorm.DB, taskLists ...[]models.Task) map[uint]string {
	seen := make(map[uint]bool)
	ids := make([]uint, 0)
	for _, tasks := range taskLists {
		for _, task := range tasks {
			if !seen[task.AssignedTo] {
				seen[task.AssignedTo] = true
				ids = append(ids, task.AssignedTo)
			}
			if task.LeaderID != nil && !seen[*task.LeaderID] {
				seen[*task.LeaderID] = true
				ids = append(ids, *task.LeaderID)
			}
		}
	}

	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names
	}
	var users []models.User
	if err := db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return names
	}
	for _, u := range users {
		names[u.ID] = u.Username
	}
	return names
}

// annotateTasks fills the derived fields: the failed flag and the
// assignee/leader usernames for display.
func annotateTasks(tasks []models.Task, names map[uint]string) {
	today := models.Today()
	for i := range tasks {
		tasks[i].IsFailed = tasks[i].Failed(today)
		tasks[i].AssignedToName = names[tasks[i].AssignedTo]
		if tasks[i].LeaderID != nil {
			tasks[i].LeaderName = names[*tasks[i].LeaderID]
		}
	}
}

/*
*
Dashboard handles GET /api/dashboard
Returns the role-scoped, filtered task list plus the caller's personal
task list with summary counters and unread notifications. For admin and
boss callers the overdue follow-up sweep runs first, so reminders appear
on the same load that triggered them.
*/
func Dashboard(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	var f taskFilters
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()

	// Personal task list and counters, always independent of filters
	var myTasks []models.Task
	if err := db.Where("assigned_to = ?", user.ID).
		Order("created_at DESC, id DESC").Find(&myTasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}
	completed := 0
	for _, t := range myTasks {
		if t.Status == models.StatusCompleted {
			completed++
		}
	}

	if authz.CanRunFollowUpSweep(user) {
		if err := runFollowUpSweep(db, user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process follow-ups"})
			return
		}
	}

	query := applyTaskFilters(db, visibleTaskQuery(db, user), user, f)
	var tasks []models.Task
	if err := query.Order("created_at DESC, id DESC").Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}
	names := usernamesFor(db, tasks, myTasks)
	annotateTasks(tasks, names)
	annotateTasks(myTasks, names)

	notifications, err := unreadNotifications(db, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks":          tasks,
		"myTasks":        myTasks,
		"totalTasks":     len(myTasks),
		"completedTasks": completed,
		"notifications":  notifications,
		"filters":        f,
	})
}

// GetTaskByID handles GET /api/tasks/:id
// Returns a single task if the caller's role permits viewing it
func GetTaskByID(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := database.GetDB()
	var task models.Task
	if err := db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return
	}

	if !authz.CanViewTask(user, task) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to view this task"})
		return
	}

	tasks := []models.Task{task}
	annotateTasks(tasks, usernamesFor(db, tasks))
	c.JSON(http.StatusOK, tasks[0])
}

/*
*
CreateTask handles POST /api/tasks
Creates a new task assigned by the authenticated admin or boss. New
tasks always start at "To Do" with a zero completion percent.
*/
func CreateTask(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	if !authz.CanManageTasks(user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to create tasks"})
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := models.ParseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate, expected YYYY-MM-DD"})
		return
	}
	endDate, err := models.ParseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate, expected YYYY-MM-DD"})
		return
	}
	followUpDate, err := models.ParseDate(req.FollowUpDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid followUpDate, expected YYYY-MM-DD"})
		return
	}

	db := database.GetDB()

	var assignee models.User
	if err := db.First(&assignee, req.AssignedTo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Assigned user not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate assignee"})
		}
		return
	}

	task := models.Task{
		Title:           req.Title,
		Description:     req.Description,
		TaskType:        req.TaskType,
		Level:           req.Level,
		AssignedTo:      req.AssignedTo,
		AssignedBy:      user.ID,
		LeaderID:        req.LeaderID,
		ProjectID:       req.ProjectID,
		Status:          models.StatusTodo,
		StartDate:       startDate,
		EndDate:         endDate,
		FollowUpDate:    followUpDate,
		FollowUpMessage: req.FollowUpMessage,
	}

	if err := db.Create(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask handles PUT /api/tasks/:id
// Applies a partial update. A supplied successPercent drives the status
// derivation and overrides any status in the same request; updates
// without a percent leave the status rule untouched. Plain users may
// only report progress (percent and their own comment) on tasks
// assigned to them.
func UpdateTask(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := database.GetDB()
	var task models.Task
	if err := db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return
	}

	if !authz.CanViewTask(user, task) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to update this task"})
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.SuccessPercent != nil && (*req.SuccessPercent < 0 || *req.SuccessPercent > 100) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "successPercent must be between 0 and 100"})
		return
	}

	// Fields every role may patch on a visible task
	if req.SuccessPercent != nil {
		task.SuccessPercent = *req.SuccessPercent
	}
	if req.UserComment != nil {
		task.UserComment = *req.UserComment
	}

	if authz.CanEditTaskDetails(user) {
		if req.Title != nil {
			task.Title = *req.Title
		}
		if req.Description != nil {
			task.Description = *req.Description
		}
		if req.TaskType != nil {
			task.TaskType = *req.TaskType
		}
		if req.Level != nil {
			task.Level = *req.Level
		}
		if req.AssignedTo != nil {
			task.AssignedTo = *req.AssignedTo
		}
		if req.LeaderID != nil {
			task.LeaderID = req.LeaderID
		}
		if req.ProjectID != nil {
			task.ProjectID = req.ProjectID
		}
		if req.AdminComment != nil {
			task.AdminComment = *req.AdminComment
		}
		if req.Status != nil {
			task.Status = *req.Status
		}
		if req.StartDate != nil {
			d, err := models.ParseDate(*req.StartDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate, expected YYYY-MM-DD"})
				return
			}
			task.StartDate = d
		}
		if req.EndDate != nil {
			d, err := models.ParseDate(*req.EndDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate, expected YYYY-MM-DD"})
				return
			}
			task.EndDate = d
		}
		if req.FollowUpDate != nil {
			d, err := models.ParseDate(*req.FollowUpDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid followUpDate, expected YYYY-MM-DD"})
				return
			}
			task.FollowUpDate = d
		}
		if req.FollowUpMessage != nil {
			task.FollowUpMessage = *req.FollowUpMessage
		}
	}

	// A new percent always wins over a directly supplied status
	if req.SuccessPercent != nil {
		task.Status = models.StatusForPercent(*req.SuccessPercent)
	}

	if err := db.Save(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	tasks := []models.Task{task}
	annotateTasks(tasks, usernamesFor(db, tasks))
	c.JSON(http.StatusOK, tasks[0])
}

// DeleteTask handles DELETE /api/tasks/:id
// Deleting tasks is restricted to admin and boss roles
func DeleteTask(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	if !authz.CanManageTasks(user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to delete tasks"})
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := database.GetDB()
	var task models.Task
	if err := db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return
	}

	if err := db.Delete(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"id":      taskID,
	})
}
