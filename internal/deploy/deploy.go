package deploy

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"go-etl-pipeline/internal/dataset"
	"go-etl-pipeline/internal/model"
	"go-etl-pipeline/internal/report"
	"go-etl-pipeline/pkg/utils"
)

// defaultTimeout bounds one publish call so a hung connection cannot stall
// the run indefinitely.
const defaultTimeout = 2 * time.Minute

// DeployResult is the outcome of one report deployment. URL is empty exactly
// when the deployment failed; Err then carries the typed cause for callers
// and tests that want to inspect it.
type DeployResult struct {
	URL      string
	Uploaded int
	Err      error
}

// publisher lets tests swap the S3 uploader for a fake
type publisher interface {
	Publish(ctx context.Context, localRoot, keyPrefix string, enableWebsite bool) (WebsiteEndpoint, error)
}

// PublishReport renders a report for the dataset and publishes it to object
// storage as a static site. It never panics or returns a raised error past
// this boundary: any failure is logged, recorded in the result, and leaves
// the URL empty. Nothing deployed is better than a crashed run.
func PublishReport(ctx context.Context, ds *dataset.Dataset, summary model.ProcessingSummary, cfg Config) DeployResult {
	uploader, err := NewUploader(ctx, cfg)
	if err != nil {
		log.Printf("❌ Deploy: cannot build uploader: %v", err)
		return DeployResult{Err: err}
	}
	return publishReport(ctx, uploader, ds, summary, cfg)
}

func publishReport(ctx context.Context, pub publisher, ds *dataset.Dataset, summary model.ProcessingSummary, cfg Config) (res DeployResult) {
	fmt.Printf("🚀 Deploy: publishing report for project %q to bucket %s\n", cfg.ProjectName, cfg.Bucket)

	staging, err := createStagingDir(cfg.StagingRoot)
	if err != nil {
		log.Printf("❌ Deploy: cannot create staging directory: %v", err)
		return DeployResult{Err: err}
	}
	// staging trees never leak across runs, on success or failure
	defer func() {
		if err := os.RemoveAll(staging); err != nil {
			log.Printf("⚠️ Deploy: staging cleanup failed for %s: %v", staging, err)
		}
	}()

	staged, err := stageReport(ds, summary, cfg, staging)
	if err != nil {
		log.Printf("❌ Deploy: report generation failed: %v", err)
		return DeployResult{Err: err}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint, err := pub.Publish(ctx, staging, utils.Slug(cfg.ProjectName), true)
	if err != nil {
		log.Printf("❌ Deploy: publication failed: %v", err)
		res = DeployResult{Err: err}
		var pe *PublishError
		if errors.As(err, &pe) {
			res.Uploaded = pe.Uploaded
		}
		return res
	}

	fmt.Printf("🌍 Deploy: report published at %s\n", endpoint.URL)
	return DeployResult{URL: endpoint.URL, Uploaded: staged}
}

// stageReport renders the report document into the staging tree: the index
// document plus the template it was rendered from. Returns how many files
// were staged.
func stageReport(ds *dataset.Dataset, summary model.ProcessingSummary, cfg Config, staging string) (int, error) {
	templateDir := cfg.TemplateDir
	if templateDir == "" {
		templateDir = "templates"
	}
	tmplPath, err := report.EnsureTemplate(templateDir)
	if err != nil {
		return 0, err
	}

	title := cfg.Title
	if title == "" {
		title = cfg.ProjectName
	}
	doc, err := report.Render(ds, summary, title, tmplPath)
	if err != nil {
		return 0, err
	}

	if err := os.WriteFile(filepath.Join(staging, IndexDocument), doc, 0644); err != nil {
		return 0, fmt.Errorf("stage index document: %w", err)
	}

	tmpl, err := os.ReadFile(tmplPath)
	if err != nil {
		return 1, fmt.Errorf("read template for staging: %w", err)
	}
	if err := os.WriteFile(filepath.Join(staging, report.TemplateFileName), tmpl, 0644); err != nil {
		return 1, fmt.Errorf("stage template: %w", err)
	}
	return 2, nil
}

// createStagingDir makes a fresh run-scoped staging tree. The uuid in the
// name keeps concurrent runs from ever sharing a staging path.
func createStagingDir(root string) (string, error) {
	if root == "" {
		root = os.TempDir()
	}
	dir := filepath.Join(root, "deploy-"+uuid.New().String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create staging directory: %w", err)
	}
	return dir, nil
}
