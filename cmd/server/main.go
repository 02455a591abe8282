package main

import (
	"net/http"

	"github.com/joho/godotenv"

	"github.com/ARYAMAN170/DontMessIt/config"
	"github.com/ARYAMAN170/DontMessIt/database"
	"github.com/ARYAMAN170/DontMessIt/jobs"
	"github.com/ARYAMAN170/DontMessIt/logger"
	"github.com/ARYAMAN170/DontMessIt/routes"
)

func main() {
	// Initialize Structured Logger
	logger.Init()

	// Load .env
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using system env vars")
	}

	// Initialize DB
	database.InitDB()

	// Start background plate-scan worker
	jobs.GetWorker()

	// Setup Router
	r := routes.SetupRouter()

	port := config.GetEnv("PORT", "8080")
	logger.Info("Server starting", "port", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Error("Server failed to start", "error", err)
	}
}
