package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	"go-etl-pipeline/internal/api/handler"
	"go-etl-pipeline/pkg/router"
)

func RegisterRoutes(r *router.Router) {
	r.POST("/api/v1/runs", handler.CreateRun)
	r.GET("/api/v1/runs", handler.ListRuns)
	r.GET("/api/v1/runs/*/summary", handler.GetRunSummary)
	r.GET("/api/v1/runs/*/errors", handler.GetRunErrors)
	r.GET("/api/v1/runs/*/deployment", handler.GetRunDeployment)
	r.GET("/api/v1/runs/*", handler.GetRun)

	r.GET("/swagger/*", httpSwagger.WrapHandler.ServeHTTP)
}
