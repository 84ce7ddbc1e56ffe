package pipeline

import (
	"fmt"
	"strings"

	"go-etl-pipeline/internal/dataset"
)

// ------------------- Transformation -------------------

// NormaliseColumnNames lower-cases column names, trims them and replaces
// spaces with underscores. Returns a new Dataset; the input is untouched.
func NormaliseColumnNames(ds *dataset.Dataset) *dataset.Dataset {
	oldCols := ds.Columns()
	newCols := make([]string, len(oldCols))
	rename := make(map[string]string, len(oldCols))
	for i, c := range oldCols {
		n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(c)), " ", "_")
		newCols[i] = n
		rename[c] = n
	}

	rows := make([]dataset.Row, 0, ds.RowCount())
	for i := 0; i < ds.RowCount(); i++ {
		row := make(dataset.Row, len(oldCols))
		for _, c := range oldCols {
			row[rename[c]] = ds.Value(i, c)
		}
		rows = append(rows, row)
	}
	return dataset.New(newCols, rows)
}

// ApplyBusinessRules drops rows where every column is missing
func ApplyBusinessRules(ds *dataset.Dataset) *dataset.Dataset {
	cols := ds.Columns()
	var rows []dataset.Row
	dropped := 0
	for i := 0; i < ds.RowCount(); i++ {
		empty := true
		row := make(dataset.Row, len(cols))
		for _, c := range cols {
			v := ds.Value(i, c)
			row[c] = v
			if v != nil && v != "" {
				empty = false
			}
		}
		if empty {
			dropped++
			continue
		}
		rows = append(rows, row)
	}
	if dropped > 0 {
		fmt.Printf("🔄 Business rules: dropped %d empty rows\n", dropped)
	}
	return dataset.New(cols, rows)
}

// FilterData keeps only rows whose column values equal the given filters
func FilterData(ds *dataset.Dataset, filters map[string]interface{}) *dataset.Dataset {
	if len(filters) == 0 {
		return ds
	}
	cols := ds.Columns()
	var rows []dataset.Row
	for i := 0; i < ds.RowCount(); i++ {
		keep := true
		row := make(dataset.Row, len(cols))
		for _, c := range cols {
			row[c] = ds.Value(i, c)
		}
		for col, want := range filters {
			if fmt.Sprintf("%v", row[col]) != fmt.Sprintf("%v", want) {
				keep = false
				break
			}
		}
		if keep {
			rows = append(rows, row)
		}
	}
	fmt.Printf("🔄 Filters applied: %d of %d rows kept\n", len(rows), ds.RowCount())
	return dataset.New(cols, rows)
}
