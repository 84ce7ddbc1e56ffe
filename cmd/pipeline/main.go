package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"go-etl-pipeline/internal/model"
	"go-etl-pipeline/internal/pipeline"
	"go-etl-pipeline/internal/store"
)

// sentinelFile is where a successful deployment's URL is persisted so that
// downstream automation can pick it up.
const sentinelFile = "website_url.txt"

func main() {
	source := flag.String("source", "", "path to source data (csv or json)")
	sourceType := flag.String("source-type", "csv", "source type: csv or json")
	output := flag.String("output", "output/data.csv", "path for output data")
	outputFormat := flag.String("output-format", "csv", "output format: csv or json")
	title := flag.String("title", "", "report title (defaults to project name)")
	noTransforms := flag.Bool("no-transforms", false, "skip transformations")
	deployFlag := flag.Bool("deploy", false, "deploy results to S3 as a static website")
	s3Bucket := flag.String("s3-bucket", "", "S3 bucket name for deployment")
	projectName := flag.String("project-name", "ETL Results", "project name for website title and S3 prefix")
	awsRegion := flag.String("aws-region", "eu-west-2", "AWS region for the S3 bucket")
	templateDir := flag.String("template-dir", "templates", "directory holding the report template")
	stagingDir := flag.String("staging-dir", "", "staging root for deploy artifacts (default: system temp)")
	dbPath := flag.String("db", "pipeline.db", "run-tracking database path")
	flag.Parse()

	if *source == "" {
		fmt.Fprintln(os.Stderr, "missing required flag: -source")
		flag.Usage()
		os.Exit(1)
	}

	if err := store.InitDB(*dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to open run database: %v\n", err)
		os.Exit(1)
	}

	spec := model.RunSpec{
		SourcePath:      *source,
		SourceType:      *sourceType,
		OutputPath:      *output,
		OutputFormat:    *outputFormat,
		Title:           *title,
		ApplyTransforms: !*noTransforms,
	}
	if *deployFlag && *s3Bucket != "" {
		spec.Deploy = &model.DeploySpec{
			Bucket:      *s3Bucket,
			ProjectName: *projectName,
			Region:      *awsRegion,
			TemplateDir: *templateDir,
			StagingDir:  *stagingDir,
		}
	}

	runID := uuid.New().String()
	if err := store.SaveRun(runID, spec); err != nil {
		fmt.Fprintf(os.Stderr, "failed to record run: %v\n", err)
		os.Exit(1)
	}

	summary, err := pipeline.Run(context.Background(), runID, spec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pipeline failed: %v\n", err)
		os.Exit(1)
	}

	if dep, ok := summary["deploy"]; ok {
		if url, _ := dep["website_url"].(string); url != "" {
			fmt.Println(url)
			if err := os.WriteFile(sentinelFile, []byte(url+"\n"), 0644); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to write %s: %v\n", sentinelFile, err)
			}
		}
	}
}
