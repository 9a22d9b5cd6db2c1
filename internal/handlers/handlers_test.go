package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"business-tracker-api/internal/auth"
	"business-tracker-api/internal/database"
	"business-tracker-api/internal/middleware"
	"business-tracker-api/internal/models"
	"business-tracker-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// setupRouter points the global DB at a fresh in-memory sqlite and
// wires the full protected route set, mirroring routes.SetupRoutes
// without importing it (that would be an import cycle from here).
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db
	invalidateUserCaches()

	r := gin.New()
	api := r.Group("/api")
	api.POST("/register", Register)
	api.POST("/login", Login)

	protected := api.Group("")
	protected.Use(middleware.JWTAuthMiddleware())
	protected.GET("/dashboard", Dashboard)
	protected.GET("/tasks/:id", GetTaskByID)
	protected.POST("/tasks", CreateTask)
	protected.PUT("/tasks/:id", UpdateTask)
	protected.DELETE("/tasks/:id", DeleteTask)
	protected.GET("/projects", GetProjects)
	protected.GET("/projects/:id", GetProjectByID)
	protected.POST("/projects", CreateProject)
	protected.PUT("/projects/:id", UpdateProject)
	protected.DELETE("/projects/:id", DeleteProject)
	protected.GET("/customers", GetCustomers)
	protected.GET("/customers/:id", GetCustomerByID)
	protected.POST("/customers", CreateCustomer)
	protected.PUT("/customers/:id", UpdateCustomer)
	protected.DELETE("/customers/:id", DeleteCustomer)
	protected.POST("/notifications/:id/read", MarkNotificationRead)
	protected.GET("/users", GetAllUsers)
	protected.GET("/users-by-section", GetUsersBySection)
	protected.PUT("/profile", UpdateProfile)

	return r
}

func seedUser(t *testing.T, username string, role models.Role, section string) models.User {
	t.Helper()
	user := models.User{Username: username, Password: "x", Role: role, Section: section}
	require.NoError(t, database.GetDB().Create(&user).Error)
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := auth.GenerateToken(user.ID, user.Username, user.Role)
	require.NoError(t, err)
	return token
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}
