package model

// ProcessingSummary is a schema-agnostic record of what the upstream stages
// did to the data (counts, applied transformations). It is passed through to
// the report renderer and serialized as-is.
type ProcessingSummary map[string]interface{}

// StageResult is the result record for a single pipeline stage
type StageResult map[string]interface{}

// RunSummary maps stage name ("extract", "transform", "load", "deploy")
// to that stage's result record. Entries are append-only per stage.
type RunSummary map[string]StageResult

// ToProcessingSummary flattens a run summary into the mapping handed to the
// report renderer.
func (rs RunSummary) ToProcessingSummary() ProcessingSummary {
	ps := make(ProcessingSummary, len(rs))
	for stage, result := range rs {
		ps[stage] = map[string]interface{}(result)
	}
	return ps
}

// DeploySpec configures the optional deploy stage of a run
type DeploySpec struct {
	Bucket      string `json:"bucket"`      // S3 bucket name
	ProjectName string `json:"projectName"` // website title and key prefix
	Region      string `json:"region"`      // e.g. eu-west-2
	TemplateDir string `json:"templateDir,omitempty"`
	StagingDir  string `json:"stagingDir,omitempty"`
}

// RunSpec is the struct for POST /api/v1/runs
type RunSpec struct {
	SourcePath      string                 `json:"sourcePath"`
	SourceType      string                 `json:"sourceType"` // csv, json
	OutputPath      string                 `json:"outputPath"`
	OutputFormat    string                 `json:"outputFormat"` // csv, json
	Title           string                 `json:"title"`
	ApplyTransforms bool                   `json:"applyTransforms"`
	Filters         map[string]interface{} `json:"filters,omitempty"`
	Deploy          *DeploySpec            `json:"deploy,omitempty"` // optional deploy stage
}
