package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-etl-pipeline/internal/model"
)

func initTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, InitDB(filepath.Join(t.TempDir(), "test.db")))
}

func TestRunLifecycle(t *testing.T) {
	initTestDB(t)

	spec := model.RunSpec{SourcePath: "in.csv", OutputPath: "out.csv"}
	require.NoError(t, SaveRun("run-1", spec))

	run, err := GetRun("run-1")
	require.NoError(t, err)
	assert.Equal(t, "pending", run["status"])

	require.NoError(t, UpdateRunStatus("run-1", "completed"))
	run, err = GetRun("run-1")
	require.NoError(t, err)
	assert.Equal(t, "completed", run["status"])

	runs, err := ListRuns()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestStageResults(t *testing.T) {
	initTestDB(t)
	require.NoError(t, SaveRun("run-1", model.RunSpec{}))

	require.NoError(t, SaveStageResult("run-1", "extract", model.StageResult{"rows_extracted": 10}))
	require.NoError(t, SaveStageResult("run-1", "load", model.StageResult{"status": "success"}))

	summary, err := GetRunStages("run-1")
	require.NoError(t, err)
	require.Contains(t, summary, "extract")
	assert.Equal(t, float64(10), summary["extract"]["rows_extracted"])
	assert.Equal(t, "success", summary["load"]["status"])
}

func TestRunErrors(t *testing.T) {
	initTestDB(t)

	require.NoError(t, SaveRunError("run-1", errors.New("boom")))
	assert.NoError(t, SaveRunError("run-1", nil), "nil errors are not recorded")

	errs, err := GetRunErrors("run-1")
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "boom", errs[0]["error"])
}

func TestDeployments(t *testing.T) {
	initTestDB(t)

	require.NoError(t, SaveDeployment("run-1", "demo", "eu-west-2",
		"http://demo.s3-website.eu-west-2.amazonaws.com/proj/index.html", 2, nil))

	dep, err := GetDeployment("run-1")
	require.NoError(t, err)
	assert.Equal(t, "success", dep["status"])
	assert.Equal(t, 2, dep["files_uploaded"])

	// a failed deployment records the error and empty URL
	require.NoError(t, SaveDeployment("run-2", "demo", "eu-west-2", "", 1, errors.New("upload failed")))
	dep, err = GetDeployment("run-2")
	require.NoError(t, err)
	assert.Equal(t, "failed", dep["status"])
	assert.Equal(t, "upload failed", dep["error"])

	_, err = GetDeployment("no-such-run")
	assert.Error(t, err)
}
