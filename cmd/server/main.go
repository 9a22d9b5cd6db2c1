package main

import (
	"log"
	"os"

	"business-tracker-api/internal/database"
	"business-tracker-api/internal/routes"
)

func main() {
	// Init database
	database.InitDB()

	// Setup the routes (public and protected routes)
	ginRoutes := routes.SetupRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8008"
	}
	// Gin's route registration log already lists every endpoint
	log.Printf("Server starting on port :%s", port)

	if err := ginRoutes.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
