package report

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"time"

	"go-etl-pipeline/internal/dataset"
	"go-etl-pipeline/internal/model"
)

// PreviewRows is how many rows of the dataset the rendered report previews
const PreviewRows = 10

// visibilityBanner is prepended to every rendered document, ahead of the
// templated body. Reports published through the deploy stage land on a
// world-readable website endpoint, so the warning is fixed: it cannot be
// suppressed or themed away by a custom template.
const visibilityBanner = `<!-- published report: publicly reachable -->
<div style="background:#b91c1c;color:#ffffff;padding:12px 16px;font-family:sans-serif;font-weight:700;text-align:center">
&#9888; PUBLIC REPORT &mdash; anyone with the URL can read this page. Do not publish sensitive data.
</div>
`

type columnInfo struct {
	Name       string
	Type       string
	Missing    int
	MissingPct string
}

type numericStat struct {
	Name   string
	Count  int
	Mean   string
	Std    string
	Min    string
	Q25    string
	Median string
	Q75    string
	Max    string
}

type summaryItem struct {
	Key   string
	Value string
}

// renderContext is the ephemeral binding between one dataset snapshot and the
// template. It exists only for the duration of one Render call.
type renderContext struct {
	Title          string
	GeneratedAt    string
	TotalRows      int
	TotalColumns   int
	Columns        []columnInfo
	PreviewHeaders []string
	PreviewRows    [][]string
	HasNumeric     bool
	NumericStats   []numericStat
	Summary        []summaryItem
}

// Render binds the dataset and processing summary into the template at
// templatePath and returns the finished document bytes, banner first.
// Zero-row datasets render fine: the preview is empty and missing
// percentages report as 0.
func Render(ds *dataset.Dataset, summary model.ProcessingSummary, title, templatePath string) ([]byte, error) {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return nil, &RenderError{Op: "parse template", Err: err}
	}

	ctx := buildContext(ds, summary, title)

	var body bytes.Buffer
	if err := tmpl.Execute(&body, ctx); err != nil {
		return nil, &RenderError{Op: "execute template", Err: err}
	}

	var doc bytes.Buffer
	doc.WriteString(visibilityBanner)
	doc.Write(body.Bytes())
	return doc.Bytes(), nil
}

func buildContext(ds *dataset.Dataset, summary model.ProcessingSummary, title string) renderContext {
	ctx := renderContext{
		Title:        title,
		GeneratedAt:  time.Now().UTC().Format("2006-01-02 15:04:05 UTC"),
		TotalRows:    ds.RowCount(),
		TotalColumns: ds.ColumnCount(),
	}

	for _, col := range ds.Columns() {
		miss := ds.MissingCount(col)
		pct := 0.0
		if ds.RowCount() > 0 {
			pct = float64(miss) / float64(ds.RowCount()) * 100
		}
		ctx.Columns = append(ctx.Columns, columnInfo{
			Name:       col,
			Type:       ds.ColumnType(col),
			Missing:    miss,
			MissingPct: fmt.Sprintf("%.1f", pct),
		})
	}

	ctx.PreviewHeaders = ds.Columns()
	for _, row := range ds.Head(PreviewRows) {
		cells := make([]string, 0, len(ctx.PreviewHeaders))
		for _, col := range ctx.PreviewHeaders {
			v := row[col]
			if v == nil {
				cells = append(cells, "")
			} else {
				cells = append(cells, fmt.Sprintf("%v", v))
			}
		}
		ctx.PreviewRows = append(ctx.PreviewRows, cells)
	}

	for _, col := range ds.NumericColumns() {
		stats, err := ds.ColumnStats(col)
		if err != nil {
			continue
		}
		ctx.NumericStats = append(ctx.NumericStats, numericStat{
			Name:   col,
			Count:  stats.Count,
			Mean:   fmt.Sprintf("%.2f", stats.Mean),
			Std:    fmt.Sprintf("%.2f", stats.Std),
			Min:    fmt.Sprintf("%.2f", stats.Min),
			Q25:    fmt.Sprintf("%.2f", stats.Q25),
			Median: fmt.Sprintf("%.2f", stats.Median),
			Q75:    fmt.Sprintf("%.2f", stats.Q75),
			Max:    fmt.Sprintf("%.2f", stats.Max),
		})
	}
	ctx.HasNumeric = len(ctx.NumericStats) > 0

	keys := make([]string, 0, len(summary))
	for k := range summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		ctx.Summary = append(ctx.Summary, summaryItem{Key: k, Value: fmt.Sprintf("%v", summary[k])})
	}

	return ctx
}
