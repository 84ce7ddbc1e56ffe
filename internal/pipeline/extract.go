package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go-etl-pipeline/internal/dataset"
	"go-etl-pipeline/pkg/utils"
)

// ------------------- Extraction -------------------

// ExtractFromSource reads a local CSV or JSON file into a Dataset
func ExtractFromSource(sourcePath, sourceType string) (*dataset.Dataset, error) {
	fmt.Printf("➡️ Extracting from %s (%s)\n", sourcePath, sourceType)

	switch strings.ToLower(sourceType) {
	case "csv", "":
		return extractCSV(sourcePath)
	case "json":
		return extractJSON(sourcePath)
	default:
		return nil, fmt.Errorf("unknown source type: %s", sourceType)
	}
}

func extractCSV(path string) (*dataset.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	csvReader := csv.NewReader(file)
	csvReader.LazyQuotes = true

	headers, err := csvReader.Read()
	if err != nil {
		if err == io.EOF {
			return dataset.New(nil, nil), nil
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	// Clean header names: trim whitespace and strip stray quotes
	for i, h := range headers {
		headers[i] = strings.Trim(strings.TrimSpace(h), `"`)
	}

	var rows []dataset.Row
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("CSV read error: %w", err)
		}

		row := make(dataset.Row, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = utils.ParseValue(record[i])
			}
		}
		rows = append(rows, row)
	}

	fmt.Printf("📄 CSV extraction done: %d records read from %s\n", len(rows), path)
	return dataset.New(headers, rows), nil
}

func extractJSON(path string) (*dataset.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open JSON file: %w", err)
	}
	defer file.Close()

	var raw []map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode JSON array: %w", err)
	}

	// Column order: each record's keys in sorted order, new keys appended as
	// records introduce them. Sorting keeps the order stable across
	// extractions of the same file.
	var columns []string
	seen := make(map[string]bool)
	rows := make([]dataset.Row, 0, len(raw))
	for _, rec := range raw {
		keys := make([]string, 0, len(rec))
		for k := range rec {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		row := make(dataset.Row, len(rec))
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
			// JSON numbers decode as float64; fold integral ones back to int
			if f, ok := rec[k].(float64); ok && f == float64(int(f)) {
				row[k] = int(f)
			} else {
				row[k] = rec[k]
			}
		}
		rows = append(rows, row)
	}

	fmt.Printf("📄 JSON extraction done: %d records read from %s\n", len(rows), path)
	return dataset.New(columns, rows), nil
}
