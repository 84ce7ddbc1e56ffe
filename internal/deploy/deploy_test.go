package deploy

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-etl-pipeline/internal/dataset"
	"go-etl-pipeline/internal/model"
	"go-etl-pipeline/internal/report"
)

// fakePublisher captures what publishReport stages and can simulate failure
type fakePublisher struct {
	localRoot  string
	keyPrefix  string
	website    bool
	stagedSeen []string
	err        error
}

func (f *fakePublisher) Publish(ctx context.Context, localRoot, keyPrefix string, enableWebsite bool) (WebsiteEndpoint, error) {
	f.localRoot = localRoot
	f.keyPrefix = keyPrefix
	f.website = enableWebsite

	entries, _ := os.ReadDir(localRoot)
	for _, e := range entries {
		f.stagedSeen = append(f.stagedSeen, e.Name())
	}

	if f.err != nil {
		return WebsiteEndpoint{}, f.err
	}
	return WebsiteEndpoint{
		Bucket: "demo",
		Region: "eu-west-2",
		URL:    WebsiteURL("demo", "eu-west-2", objectKey(keyPrefix, IndexDocument)),
	}, nil
}

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Bucket:      "demo",
		ProjectName: "My Project",
		Region:      "eu-west-2",
		TemplateDir: t.TempDir(),
		StagingRoot: t.TempDir(),
	}
}

func testDataset() *dataset.Dataset {
	return dataset.New([]string{"a"}, []dataset.Row{{"a": 1}})
}

func TestPublishReportSuccess(t *testing.T) {
	cfg := testConfig(t)
	fake := &fakePublisher{}

	res := publishReport(context.Background(), fake, testDataset(), model.ProcessingSummary{}, cfg)
	require.NoError(t, res.Err)

	assert.Equal(t, "my-project", fake.keyPrefix, "prefix is the slugged project name")
	assert.True(t, fake.website)
	assert.Contains(t, res.URL, "my-project/index.html")
	assert.Equal(t, 2, res.Uploaded)
	assert.ElementsMatch(t, []string{IndexDocument, report.TemplateFileName}, fake.stagedSeen)
}

func TestPublishReportCleansStagingOnSuccess(t *testing.T) {
	cfg := testConfig(t)
	fake := &fakePublisher{}

	publishReport(context.Background(), fake, testDataset(), model.ProcessingSummary{}, cfg)

	_, err := os.Stat(fake.localRoot)
	assert.True(t, os.IsNotExist(err), "staging tree must not survive the run")

	entries, err := os.ReadDir(cfg.StagingRoot)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPublishReportCleansStagingOnFailure(t *testing.T) {
	cfg := testConfig(t)
	fake := &fakePublisher{err: &PublishError{Kind: KindUploadFailed, Uploaded: 1, Err: os.ErrClosed}}

	res := publishReport(context.Background(), fake, testDataset(), model.ProcessingSummary{}, cfg)

	assert.Empty(t, res.URL, "empty URL is the failure signal")
	assert.Equal(t, 1, res.Uploaded, "partial count carried into the result")
	require.Error(t, res.Err)

	_, err := os.Stat(fake.localRoot)
	assert.True(t, os.IsNotExist(err), "staging tree must not survive a failed run")
}

func TestPublishReportStagesRenderedDocument(t *testing.T) {
	cfg := testConfig(t)
	var indexContent []byte
	fake := &fakePublisher{}

	// read the staged index before cleanup removes it
	probe := publisherFunc(func(ctx context.Context, localRoot, keyPrefix string, enableWebsite bool) (WebsiteEndpoint, error) {
		var err error
		indexContent, err = os.ReadFile(filepath.Join(localRoot, IndexDocument))
		require.NoError(t, err)
		return fake.Publish(ctx, localRoot, keyPrefix, enableWebsite)
	})

	res := publishReport(context.Background(), probe, testDataset(), model.ProcessingSummary{"rows_in": 1}, cfg)
	require.NoError(t, res.Err)
	assert.Contains(t, string(indexContent), "Total Rows: 1")
	assert.Contains(t, string(indexContent), "My Project")
}

func TestPublishReportRenderFailure(t *testing.T) {
	cfg := testConfig(t)
	// a malformed custom template makes rendering fail
	require.NoError(t, os.WriteFile(filepath.Join(cfg.TemplateDir, report.TemplateFileName), []byte("{{.Broken"), 0644))

	fake := &fakePublisher{}
	res := publishReport(context.Background(), fake, testDataset(), model.ProcessingSummary{}, cfg)

	assert.Empty(t, res.URL)
	require.Error(t, res.Err)
	assert.Empty(t, fake.localRoot, "publish must not be attempted after a render failure")

	entries, err := os.ReadDir(cfg.StagingRoot)
	require.NoError(t, err)
	assert.Empty(t, entries, "staging tree removed even when rendering fails")
}

// publisherFunc adapts a function to the publisher interface
type publisherFunc func(ctx context.Context, localRoot, keyPrefix string, enableWebsite bool) (WebsiteEndpoint, error)

func (f publisherFunc) Publish(ctx context.Context, localRoot, keyPrefix string, enableWebsite bool) (WebsiteEndpoint, error) {
	return f(ctx, localRoot, keyPrefix, enableWebsite)
}
