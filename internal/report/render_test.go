package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-etl-pipeline/internal/dataset"
	"go-etl-pipeline/internal/model"
)

func TestEnsureTemplateCreatesDefault(t *testing.T) {
	dir := t.TempDir()

	path, err := EnsureTemplate(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, TemplateFileName), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, defaultTemplate, string(content))
}

func TestEnsureTemplateIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	path1, err := EnsureTemplate(dir)
	require.NoError(t, err)
	first, err := os.ReadFile(path1)
	require.NoError(t, err)

	path2, err := EnsureTemplate(dir)
	require.NoError(t, err)
	second, err := os.ReadFile(path2)
	require.NoError(t, err)

	assert.Equal(t, path1, path2)
	assert.Equal(t, first, second)
}

func TestEnsureTemplateKeepsCustomTemplate(t *testing.T) {
	dir := t.TempDir()
	custom := "<html><body>{{.Title}}</body></html>"
	require.NoError(t, os.WriteFile(filepath.Join(dir, TemplateFileName), []byte(custom), 0644))

	path, err := EnsureTemplate(dir)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, string(content))
}

func renderDefault(t *testing.T, ds *dataset.Dataset, summary model.ProcessingSummary, title string) string {
	t.Helper()
	path, err := EnsureTemplate(t.TempDir())
	require.NoError(t, err)
	doc, err := Render(ds, summary, title, path)
	require.NoError(t, err)
	return string(doc)
}

func TestRenderFullScenario(t *testing.T) {
	// 100 rows, 3 columns, one numeric column with 5 missing values
	rows := make([]dataset.Row, 100)
	for i := 0; i < 100; i++ {
		rows[i] = dataset.Row{"id": "r", "score": i, "label": "x"}
	}
	for i := 0; i < 5; i++ {
		rows[i]["score"] = nil
	}
	ds := dataset.New([]string{"id", "score", "label"}, rows)

	doc := renderDefault(t, ds, model.ProcessingSummary{"rows_in": 100, "rows_out": 100}, "Demo")

	assert.True(t, strings.HasPrefix(doc, visibilityBanner), "banner must come first")
	assert.Contains(t, doc, "Total Rows: 100")
	assert.Contains(t, doc, "Missing Values: 5")
	assert.Contains(t, doc, "Numeric Summary")
	assert.Contains(t, doc, "Demo")
	assert.Contains(t, doc, "rows_in")
}

func TestRenderEmptyDataset(t *testing.T) {
	ds := dataset.New([]string{"a", "b"}, nil)

	doc := renderDefault(t, ds, model.ProcessingSummary{}, "Empty")

	assert.Contains(t, doc, "Total Rows: 0")
	assert.Contains(t, doc, "Missing Values: 0 (0.0%)")
	assert.Contains(t, doc, "No rows to preview.")
	assert.NotContains(t, doc, "Numeric Summary")
}

func TestRenderNoNumericColumns(t *testing.T) {
	ds := dataset.New([]string{"name"}, []dataset.Row{{"name": "x"}, {"name": "y"}})

	doc := renderDefault(t, ds, model.ProcessingSummary{}, "Text Only")

	assert.NotContains(t, doc, "Numeric Summary")
}

func TestRenderBannerNotSuppressibleByCustomTemplate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, TemplateFileName),
		[]byte("<html><body>minimal</body></html>"), 0644))
	path, err := EnsureTemplate(dir)
	require.NoError(t, err)

	doc, err := Render(dataset.New(nil, nil), model.ProcessingSummary{}, "T", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(doc), visibilityBanner))
}

func TestRenderMalformedTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, TemplateFileName)
	require.NoError(t, os.WriteFile(path, []byte("{{.Unclosed"), 0644))

	_, err := Render(dataset.New(nil, nil), model.ProcessingSummary{}, "T", path)
	var rerr *RenderError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "parse template", rerr.Op)
}
