package handlers

import (
	"net/http"
	"strconv"

	"business-tracker-api/internal/models"

	"github.com/gin-gonic/gin"
)

// currentUser rebuilds the requesting identity from the claims the
// auth middleware stored in the context. The section is not carried in
// the token; handlers that need it load the full user row.
func currentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return models.User{}, false
	}
	userID, ok := v.(uint)
	if !ok || userID == 0 {
		return models.User{}, false
	}
	return models.User{
		ID:       userID,
		Username: c.GetString("username"),
		Role:     models.Role(c.GetString("role")),
	}, true
}

// mustCurrentUser resolves the identity or writes a 401 response.
func mustCurrentUser(c *gin.Context) (models.User, bool) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in token",
		})
	}
	return user, ok
}

// parseIDParam parses a numeric path parameter, writing a 400 response
// when it is missing or not a number.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name + " parameter",
		})
		return 0, false
	}
	return uint(id), true
}
