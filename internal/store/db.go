package store

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"go-etl-pipeline/internal/model"
)

var db *sql.DB

// InitDB opens the run-tracking database and creates tables if needed
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	runTable := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		spec TEXT,
		status TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);
	`
	stageTable := `
	CREATE TABLE IF NOT EXISTS run_stages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		stage TEXT,
		result TEXT,
		created_at DATETIME
	);
	`
	errorTable := `
	CREATE TABLE IF NOT EXISTS run_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		error_message TEXT,
		created_at DATETIME
	);
	`
	deployTable := `
	CREATE TABLE IF NOT EXISTS deployments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		bucket TEXT,
		region TEXT,
		website_url TEXT,
		files_uploaded INTEGER,
		status TEXT,
		error_message TEXT,
		created_at DATETIME
	);
	`

	for _, stmt := range []string{runTable, stageTable, errorTable, deployTable} {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveRun stores a new pipeline run
func SaveRun(runID string, spec model.RunSpec) error {
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO runs (id, spec, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		runID, specJSON, "pending", now, now)
	return err
}

// UpdateRunStatus updates run status
func UpdateRunStatus(runID string, status string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE runs SET status = ?, updated_at = ? WHERE id = ?`, status, now, runID)
	return err
}

// SaveStageResult records the result record of one completed stage
func SaveStageResult(runID, stage string, result model.StageResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO run_stages (run_id, stage, result, created_at) VALUES (?, ?, ?, ?)`,
		runID, stage, resultJSON, now)
	return err
}

// SaveRunError records an error for a run
func SaveRunError(runID string, err error) error {
	if err == nil {
		return nil
	}
	now := time.Now().UTC()
	_, e := db.Exec(`INSERT INTO run_errors (run_id, error_message, created_at) VALUES (?, ?, ?)`,
		runID, err.Error(), now)
	return e
}

// SaveDeployment records the outcome of the deploy stage. The credentials
// never touch this table; only bucket, region and result land here.
func SaveDeployment(runID, bucket, region, websiteURL string, uploaded int, deployErr error) error {
	status := "success"
	errMsg := ""
	if websiteURL == "" {
		status = "failed"
		if deployErr != nil {
			errMsg = deployErr.Error()
		}
	}
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO deployments (run_id, bucket, region, website_url, files_uploaded, status, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, bucket, region, websiteURL, uploaded, status, errMsg, now)
	return err
}

// ListRuns returns all runs with basic info
func ListRuns() ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, status, created_at, updated_at FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []map[string]interface{}
	for rows.Next() {
		var id, status string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, map[string]interface{}{
			"id":        id,
			"status":    status,
			"createdAt": createdAt,
			"updatedAt": updatedAt,
		})
	}
	return runs, rows.Err()
}

// GetRun fetches full run spec and status
func GetRun(runID string) (map[string]interface{}, error) {
	var specJSON string
	var status string
	var createdAt, updatedAt time.Time

	err := db.QueryRow(`SELECT spec, status, created_at, updated_at FROM runs WHERE id = ?`, runID).
		Scan(&specJSON, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	var spec model.RunSpec
	if err := json.Unmarshal([]byte(specJSON), &spec); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":        runID,
		"spec":      spec,
		"status":    status,
		"createdAt": createdAt,
		"updatedAt": updatedAt,
	}, nil
}

// GetRunStages returns the per-stage result records of a run, oldest first
func GetRunStages(runID string) (model.RunSummary, error) {
	rows, err := db.Query(`SELECT stage, result FROM run_stages WHERE run_id = ? ORDER BY id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := model.RunSummary{}
	for rows.Next() {
		var stage, resultJSON string
		if err := rows.Scan(&stage, &resultJSON); err != nil {
			return nil, err
		}
		var result model.StageResult
		if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
			return nil, err
		}
		summary[stage] = result
	}
	return summary, rows.Err()
}

// GetRunErrors returns all errors recorded for a run
func GetRunErrors(runID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT error_message, created_at FROM run_errors WHERE run_id = ? ORDER BY id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var errs []map[string]interface{}
	for rows.Next() {
		var msg string
		var createdAt time.Time
		if err := rows.Scan(&msg, &createdAt); err != nil {
			return nil, err
		}
		errs = append(errs, map[string]interface{}{
			"error":     msg,
			"createdAt": createdAt,
		})
	}
	return errs, rows.Err()
}

// GetDeployment returns the most recent deployment record for a run
func GetDeployment(runID string) (map[string]interface{}, error) {
	var bucket, region, url, status, errMsg string
	var uploaded int
	var createdAt time.Time

	err := db.QueryRow(`SELECT bucket, region, website_url, files_uploaded, status, error_message, created_at
		FROM deployments WHERE run_id = ? ORDER BY id DESC LIMIT 1`, runID).
		Scan(&bucket, &region, &url, &uploaded, &status, &errMsg, &createdAt)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"run_id":         runID,
		"bucket":         bucket,
		"region":         region,
		"website_url":    url,
		"files_uploaded": uploaded,
		"status":         status,
		"error":          errMsg,
		"createdAt":      createdAt,
	}, nil
}
