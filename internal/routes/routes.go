package routes

import (
	"business-tracker-api/internal/handlers"
	"business-tracker-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes() *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Business Tracker API is running",
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/register", handlers.Register)
		api.POST("/login", handlers.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Dashboard: role-scoped task list, counters, follow-up sweep
		protectedRoutes.GET("/dashboard", handlers.Dashboard)

		// Task endpoints
		protectedRoutes.GET("/tasks/:id", handlers.GetTaskByID)
		protectedRoutes.POST("/tasks", handlers.CreateTask)
		protectedRoutes.PUT("/tasks/:id", handlers.UpdateTask)
		protectedRoutes.DELETE("/tasks/:id", handlers.DeleteTask)

		// Project endpoints
		protectedRoutes.GET("/projects", handlers.GetProjects)
		protectedRoutes.GET("/projects/:id", handlers.GetProjectByID)
		protectedRoutes.POST("/projects", handlers.CreateProject)
		protectedRoutes.PUT("/projects/:id", handlers.UpdateProject)
		protectedRoutes.DELETE("/projects/:id", handlers.DeleteProject)

		// Customer endpoints (boss only, enforced in handlers)
		protectedRoutes.GET("/customers", handlers.GetCustomers)
		protectedRoutes.GET("/customers/:id", handlers.GetCustomerByID)
		protectedRoutes.POST("/customers", handlers.CreateCustomer)
		protectedRoutes.PUT("/customers/:id", handlers.UpdateCustomer)
		protectedRoutes.DELETE("/customers/:id", handlers.DeleteCustomer)

		// Notifications
		protectedRoutes.POST("/notifications/:id/read", handlers.MarkNotificationRead)

		// Users
		protectedRoutes.GET("/users", handlers.GetAllUsers)
		protectedRoutes.GET("/users-by-section", handlers.GetUsersBySection)
		protectedRoutes.PUT("/profile", handlers.UpdateProfile)

		// Realtime notification push
		protectedRoutes.GET("/ws", handlers.WebSocketHandler)
	}

	return ginRouter
}
