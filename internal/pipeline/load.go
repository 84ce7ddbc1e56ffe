package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go-etl-pipeline/internal/dataset"
)

// ------------------- Load -------------------

// SaveToDestination writes the dataset to outputPath in the given format
// (csv or json).
func SaveToDestination(ds *dataset.Dataset, outputPath, format string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	switch strings.ToLower(format) {
	case "csv", "":
		return saveCSV(ds, outputPath)
	case "json":
		return saveJSON(ds, outputPath)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func saveCSV(ds *dataset.Dataset, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	cols := ds.Columns()
	if err := writer.Write(cols); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := 0; i < ds.RowCount(); i++ {
		row := make([]string, len(cols))
		for j, c := range cols {
			if v := ds.Value(i, c); v != nil {
				row[j] = fmt.Sprintf("%v", v)
			}
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	fmt.Printf("✅ Saved %d records to %s\n", ds.RowCount(), path)
	return nil
}

func saveJSON(ds *dataset.Dataset, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(ds.Head(ds.RowCount())); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	fmt.Printf("✅ Saved %d records to %s\n", ds.RowCount(), path)
	return nil
}

// CreateDataSummary writes a sidecar JSON file describing the dataset:
// row/column counts, per-column type labels and missing counts.
func CreateDataSummary(ds *dataset.Dataset, summaryPath string) error {
	columns := make([]map[string]interface{}, 0, ds.ColumnCount())
	for _, c := range ds.Columns() {
		columns = append(columns, map[string]interface{}{
			"name":    c,
			"type":    ds.ColumnType(c),
			"missing": ds.MissingCount(c),
		})
	}

	summary := map[string]interface{}{
		"rows":    ds.RowCount(),
		"columns": ds.ColumnCount(),
		"schema":  columns,
	}

	file, err := os.Create(summaryPath)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return nil
}

// SummaryPath derives the sidecar summary path from the output path,
// e.g. out/data.csv -> out/data_summary.json
func SummaryPath(outputPath, format string) string {
	ext := "." + strings.ToLower(format)
	if strings.HasSuffix(outputPath, ext) {
		return strings.TrimSuffix(outputPath, ext) + "_summary.json"
	}
	return outputPath + "_summary.json"
}
