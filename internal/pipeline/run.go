package pipeline

import (
	"context"
	"fmt"
	"time"

	"go-etl-pipeline/internal/deploy"
	"go-etl-pipeline/internal/model"
	"go-etl-pipeline/internal/store"
)

// ------------------- Pipeline Runner -------------------

// Run executes one ETL run: extract → transform → load → deploy (optional).
// The stages run sequentially over one in-memory dataset snapshot. The
// returned RunSummary holds one result record per completed stage. A deploy
// failure is recorded but does not fail the run.
func Run(ctx context.Context, runID string, spec model.RunSpec) (summary model.RunSummary, err error) {
	start := time.Now()
	fmt.Printf("🚀 Starting ETL run: %s\n", runID)

	store.UpdateRunStatus(runID, "running")
	summary = model.RunSummary{}

	defer func() {
		if err != nil {
			store.UpdateRunStatus(runID, "failed")
			store.SaveRunError(runID, err)
		}
	}()

	// --- EXTRACT ---
	store.UpdateRunStatus(runID, "extracting")
	ds, err := ExtractFromSource(spec.SourcePath, spec.SourceType)
	if err != nil {
		return summary, fmt.Errorf("extract: %w", err)
	}
	summary["extract"] = model.StageResult{
		"source_path":       spec.SourcePath,
		"rows_extracted":    ds.RowCount(),
		"columns_extracted": ds.ColumnCount(),
	}
	store.SaveStageResult(runID, "extract", summary["extract"])

	// --- TRANSFORM ---
	store.UpdateRunStatus(runID, "transforming")
	if spec.ApplyTransforms {
		applied := []string{"normalise_column_names", "apply_business_rules"}
		ds = NormaliseColumnNames(ds)
		ds = ApplyBusinessRules(ds)
		if len(spec.Filters) > 0 {
			ds = FilterData(ds, spec.Filters)
			applied = append(applied, "filter_data")
		}
		summary["transform"] = model.StageResult{
			"transformations_applied": applied,
			"final_rows":              ds.RowCount(),
			"final_columns":           ds.ColumnCount(),
		}
	} else {
		summary["transform"] = model.StageResult{
			"transformations_applied": []string{"None - transformations skipped"},
		}
	}
	store.SaveStageResult(runID, "transform", summary["transform"])

	// --- LOAD ---
	store.UpdateRunStatus(runID, "loading")
	if err = SaveToDestination(ds, spec.OutputPath, spec.OutputFormat); err != nil {
		summary["load"] = model.StageResult{"status": "failed"}
		store.SaveStageResult(runID, "load", summary["load"])
		return summary, fmt.Errorf("load: %w", err)
	}
	summaryPath := SummaryPath(spec.OutputPath, spec.OutputFormat)
	if err := CreateDataSummary(ds, summaryPath); err != nil {
		fmt.Printf("⚠️ Data summary sidecar failed: %v\n", err)
	}
	summary["load"] = model.StageResult{
		"output_path":  spec.OutputPath,
		"summary_path": summaryPath,
		"final_rows":   ds.RowCount(),
		"status":       "success",
	}
	store.SaveStageResult(runID, "load", summary["load"])

	// --- DEPLOY (optional) ---
	if spec.Deploy != nil && spec.Deploy.Bucket != "" {
		store.UpdateRunStatus(runID, "deploying")
		cfg := deploy.Config{
			Bucket:      spec.Deploy.Bucket,
			ProjectName: spec.Deploy.ProjectName,
			Title:       spec.Title,
			Region:      spec.Deploy.Region,
			TemplateDir: spec.Deploy.TemplateDir,
			StagingRoot: spec.Deploy.StagingDir,
		}
		if cfg.ProjectName == "" {
			cfg.ProjectName = "ETL Results"
		}

		res := deploy.PublishReport(ctx, ds, summary.ToProcessingSummary(), cfg)
		if res.URL != "" {
			summary["deploy"] = model.StageResult{
				"website_url": res.URL,
				"status":      "success",
			}
			fmt.Printf("🌍 Deployment successful. Website URL: %s\n", res.URL)
		} else {
			summary["deploy"] = model.StageResult{"status": "failed"}
			fmt.Println("⚠️ Deployment failed, but pipeline will continue")
		}
		store.SaveStageResult(runID, "deploy", summary["deploy"])
		store.SaveDeployment(runID, cfg.Bucket, cfg.Region, res.URL, res.Uploaded, res.Err)
	}

	store.UpdateRunStatus(runID, "completed")
	fmt.Printf("🏁 ETL run completed: %s in %v\n", runID, time.Since(start))
	return summary, nil
}
