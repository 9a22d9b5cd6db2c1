package handlers

import (
	"net/http"
	"time"

	"business-tracker-api/internal/cache"
	"business-tracker-api/internal/database"
	"business-tracker-api/internal/models"

	"github.com/gin-gonic/gin"
)

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Section  string `json:"section"`
}

// sectionCache holds users-by-section lookups for the assignment
// dropdowns. Entries are short-lived and flushed whenever a user is
// registered or edits their profile.
var sectionCache = cache.New[string, []UserResponse]()

const sectionCacheTTL = 30 * time.Second

func invalidateUserCaches() {
	sectionCache.Clear()
}

// GetAllUsers returns all users ordered by username (protected)
// GET /api/users
func GetAllUsers(c *gin.Context) {
	if _, ok := mustCurrentUser(c); !ok {
		return
	}

	var users []models.User
	if err := database.GetDB().Order("username ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	// Map to safe response payload
	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, UserResponse{
			ID:       u.ID,
			Username: u.Username,
			Section:  u.Section,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"users": resp,
		"count": len(resp),
	})
}

// GetUsersBySection handles GET /api/users-by-section?section=
// Returns bosses plus the users of the requested section, or every
// user when section=all. Results are cached briefly since the
// assignment form re-queries on every section change.
func GetUsersBySection(c *gin.Context) {
	if _, ok := mustCurrentUser(c); !ok {
		return
	}

	section := c.DefaultQuery("section", "all")

	if resp, ok := sectionCache.Get(section); ok {
		c.JSON(http.StatusOK, gin.H{"users": resp, "count": len(resp)})
		return
	}

	query := database.GetDB().Model(&models.User{})
	if section != "all" {
		query = query.Where("role = ? OR section = ?", models.RoleBoss, section)
	}

	var users []models.User
	if err := query.Order("username ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, UserResponse{
			ID:       u.ID,
			Username: u.Username,
			Section:  u.Section,
		})
	}

	sectionCache.Set(section, resp, sectionCacheTTL)

	c.JSON(http.StatusOK, gin.H{
		"users": resp,
		"count": len(resp),
	})
}
