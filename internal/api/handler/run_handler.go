package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-etl-pipeline/internal/model"
	"go-etl-pipeline/internal/pipeline"
	"go-etl-pipeline/internal/store"
)

// runID extracts the run ID between the API prefix and an optional suffix
func runID(path, suffix string) string {
	prefix := "/api/v1/runs/"
	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		return ""
	}
	return path[len(prefix) : len(path)-len(suffix)]
}

// CreateRun creates and starts a new ETL run
// @Summary Create a new run
// @Description Create and start a new ETL run with the provided configuration
// @Tags runs
// @Accept json
// @Produce json
// @Param run body model.RunSpec true "Run configuration"
// @Success 200 {object} map[string]interface{} "Run created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request payload"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs [post]
func CreateRun(w http.ResponseWriter, r *http.Request) {
	var spec model.RunSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	// 1. Validate payload
	if spec.SourcePath == "" {
		http.Error(w, "sourcePath is required", http.StatusBadRequest)
		return
	}
	if spec.OutputPath == "" {
		http.Error(w, "outputPath is required", http.StatusBadRequest)
		return
	}

	// 2. Generate run ID
	id := uuid.New().String()

	// 3. Save run to DB
	if err := store.SaveRun(id, spec); err != nil {
		http.Error(w, "Failed to save run", http.StatusInternalServerError)
		return
	}

	// 4. Start the run asynchronously
	go func() {
		if _, err := pipeline.Run(context.Background(), id, spec); err != nil {
			store.SaveRunError(id, err)
		}
	}()

	// 5. Return response
	resp := map[string]interface{}{
		"message":   "Run created successfully!",
		"runID":     id,
		"status":    "pending",
		"createdAt": time.Now().UTC(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ListRuns retrieves all ETL runs
// @Summary List all runs
// @Description Get a list of all ETL runs with their current status
// @Tags runs
// @Accept json
// @Produce json
// @Success 200 {array} map[string]interface{} "List of runs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs [get]
func ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := store.ListRuns()
	if err != nil {
		http.Error(w, "Failed to fetch runs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}

// GetRun retrieves a specific ETL run
// @Summary Get run
// @Description Retrieve details of a specific ETL run
// @Tags runs
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run details"
// @Failure 400 {object} map[string]interface{} "Invalid run ID"
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /runs/{id} [get]
func GetRun(w http.ResponseWriter, r *http.Request) {
	id := runID(r.URL.Path, "")
	if id == "" {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}

	run, err := store.GetRun(id)
	if err != nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run)
}

// GetRunSummary retrieves the per-stage result records of a run
// @Summary Get run summary
// @Description Retrieve the per-stage result records of an ETL run
// @Tags runs
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run summary"
// @Failure 400 {object} map[string]interface{} "Invalid run ID"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs/{id}/summary [get]
func GetRunSummary(w http.ResponseWriter, r *http.Request) {
	id := runID(r.URL.Path, "/summary")
	if id == "" {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}

	summary, err := store.GetRunStages(id)
	if err != nil {
		http.Error(w, "Failed to retrieve summary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"run_id":  id,
		"summary": summary,
	})
}

// GetRunErrors retrieves errors for a run
// @Summary Get run errors
// @Description Retrieve all errors that occurred during an ETL run
// @Tags runs
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run errors"
// @Failure 400 {object} map[string]interface{} "Invalid run ID"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs/{id}/errors [get]
func GetRunErrors(w http.ResponseWriter, r *http.Request) {
	id := runID(r.URL.Path, "/errors")
	if id == "" {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}

	errs, err := store.GetRunErrors(id)
	if err != nil {
		http.Error(w, "Failed to retrieve errors", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"run_id": id,
		"errors": errs,
		"count":  len(errs),
	})
}

// GetRunDeployment retrieves the deployment record of a run
// @Summary Get run deployment
// @Description Retrieve the website deployment record of an ETL run
// @Tags runs
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Deployment record"
// @Failure 400 {object} map[string]interface{} "Invalid run ID"
// @Failure 404 {object} map[string]interface{} "No deployment for run"
// @Router /runs/{id}/deployment [get]
func GetRunDeployment(w http.ResponseWriter, r *http.Request) {
	id := runID(r.URL.Path, "/deployment")
	if id == "" {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}

	dep, err := store.GetDeployment(id)
	if err != nil {
		http.Error(w, "No deployment found for run", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dep)
}
