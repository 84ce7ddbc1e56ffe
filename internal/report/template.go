package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// TemplateFileName is the template file the renderer looks for inside the
// configured template directory.
const TemplateFileName = "report_template.html"

// defaultTemplate is the self-contained report page synthesized when no
// template exists yet. Operators can replace the file on disk with their own;
// EnsureTemplate never overwrites an existing one.
const defaultTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: #f8f9fa; color: #1a1a2e; line-height: 1.5; padding: 1rem; max-width: 1100px; margin: 0 auto; }
header { margin-bottom: 1.5rem; }
header h1 { font-size: 1.5rem; margin-bottom: .25rem; }
header p { color: #6c757d; font-size: .875rem; }
.cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(140px, 1fr)); gap: .75rem; margin-bottom: 1.5rem; }
.card { background: #fff; border: 1px solid #dee2e6; border-radius: 8px; padding: .75rem; text-align: center; }
.card .value { font-size: 1.5rem; font-weight: 700; }
.card .label { font-size: .75rem; color: #6c757d; text-transform: uppercase; }
section { background: #fff; border: 1px solid #dee2e6; border-radius: 8px; padding: 1rem; margin-bottom: 1.5rem; }
section h2 { font-size: 1rem; margin-bottom: .75rem; }
table { width: 100%; border-collapse: collapse; font-size: .8125rem; }
th, td { padding: .5rem .625rem; text-align: left; border-bottom: 1px solid #dee2e6; }
tr:nth-child(even) { background: #f1f3f5; }
footer { color: #6c757d; font-size: .75rem; text-align: center; }
</style>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  <p>Generated {{.GeneratedAt}} &middot; Total Rows: {{.TotalRows}} &middot; Total Columns: {{.TotalColumns}}</p>
</header>

<section class="cards">
  <div class="card"><div class="value">{{.TotalRows}}</div><div class="label">Rows</div></div>
  <div class="card"><div class="value">{{.TotalColumns}}</div><div class="label">Columns</div></div>
</section>

<section>
  <h2>Columns</h2>
  <ul>
  {{range .Columns}}<li><strong>{{.Name}}</strong> ({{.Type}}) &mdash; Missing Values: {{.Missing}} ({{.MissingPct}}%)</li>
  {{end}}</ul>
</section>

{{if .HasNumeric}}<section>
  <h2>Numeric Summary</h2>
  <table>
    <thead><tr><th>Column</th><th>Count</th><th>Mean</th><th>Std</th><th>Min</th><th>25%</th><th>50%</th><th>75%</th><th>Max</th></tr></thead>
    <tbody>
    {{range .NumericStats}}<tr><td>{{.Name}}</td><td>{{.Count}}</td><td>{{.Mean}}</td><td>{{.Std}}</td><td>{{.Min}}</td><td>{{.Q25}}</td><td>{{.Median}}</td><td>{{.Q75}}</td><td>{{.Max}}</td></tr>
    {{end}}</tbody>
  </table>
</section>
{{end}}
<section>
  <h2>Data Preview</h2>
  {{if .PreviewRows}}<table>
    <thead><tr>{{range .PreviewHeaders}}<th>{{.}}</th>{{end}}</tr></thead>
    <tbody>
    {{range .PreviewRows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
    {{end}}</tbody>
  </table>{{else}}<p>No rows to preview.</p>{{end}}
</section>

<section>
  <h2>Processing Summary</h2>
  <table>
    <tbody>
    {{range .Summary}}<tr><th>{{.Key}}</th><td>{{.Value}}</td></tr>
    {{end}}</tbody>
  </table>
</section>

<footer>ETL pipeline report</footer>
</body>
</html>
`

// EnsureTemplate makes sure a report template exists under dir and returns
// its path. A missing template is synthesized from the built-in default; an
// existing file, customized or not, is left untouched so the operation is
// idempotent.
func EnsureTemplate(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &RenderError{Op: "ensure template", Err: err}
	}

	path := filepath.Join(dir, TemplateFileName)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !os.IsNotExist(err) {
		return "", &RenderError{Op: "ensure template", Err: err}
	}

	if err := os.WriteFile(path, []byte(defaultTemplate), 0644); err != nil {
		return "", &RenderError{Op: "ensure template", Err: fmt.Errorf("write default template: %w", err)}
	}
	fmt.Printf("📝 Synthesized default report template at %s\n", path)
	return path, nil
}
