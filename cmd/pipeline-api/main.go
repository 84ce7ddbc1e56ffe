package main

import (
	"go-etl-pipeline/internal/api"
	"go-etl-pipeline/internal/store"
	"go-etl-pipeline/pkg/router"

	_ "go-etl-pipeline/docs" // swagger spec registration
)

// @title ETL Pipeline API
// @version 1.0
// @description REST API for running ETL jobs and publishing data reports
// @BasePath /api/v1
func main() {
	// Init DB
	if err := store.InitDB("pipeline.db"); err != nil {
		panic(err)
	}

	// Create router
	r := router.New()

	// Register API routes
	api.RegisterRoutes(r)

	// Start server
	r.Start(":8080")
}
