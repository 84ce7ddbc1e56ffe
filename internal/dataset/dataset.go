package dataset

import (
	"fmt"
	"math"
	"sort"

	"go-etl-pipeline/pkg/utils"
)

// Row is a schema-agnostic record keyed by column name
type Row map[string]interface{}

// Dataset is an immutable snapshot of tabular data with ordered, named
// columns. The pipeline stages hand finished snapshots to the report and
// deploy stages, which never mutate them.
type Dataset struct {
	columns []string
	rows    []Row
}

// New builds a Dataset from a column order and rows. The inputs are copied so
// later mutation by the caller cannot leak into the snapshot.
func New(columns []string, rows []Row) *Dataset {
	cols := make([]string, len(columns))
	copy(cols, columns)

	rws := make([]Row, len(rows))
	for i, r := range rows {
		cp := make(Row, len(r))
		for k, v := range r {
			cp[k] = v
		}
		rws[i] = cp
	}
	return &Dataset{columns: cols, rows: rws}
}

// Columns returns the column names in order
func (d *Dataset) Columns() []string {
	cols := make([]string, len(d.columns))
	copy(cols, d.columns)
	return cols
}

func (d *Dataset) RowCount() int    { return len(d.rows) }
func (d *Dataset) ColumnCount() int { return len(d.columns) }

// Value returns the cell at row i, column name. Missing cells return nil.
func (d *Dataset) Value(i int, column string) interface{} {
	if i < 0 || i >= len(d.rows) {
		return nil
	}
	return d.rows[i][column]
}

// Head returns up to n rows for previews, preserving row order
func (d *Dataset) Head(n int) []Row {
	if n < 0 {
		n = 0
	}
	if n > len(d.rows) {
		n = len(d.rows)
	}
	out := make([]Row, n)
	for i := 0; i < n; i++ {
		cp := make(Row, len(d.rows[i]))
		for k, v := range d.rows[i] {
			cp[k] = v
		}
		out[i] = cp
	}
	return out
}

// missing reports whether a cell counts as a missing value
func missing(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// MissingCount returns how many rows have no value for the column
func (d *Dataset) MissingCount(column string) int {
	count := 0
	for _, r := range d.rows {
		if missing(r[column]) {
			count++
		}
	}
	return count
}

// ColumnType labels a column as "numeric", "text", "mixed" or "empty" based
// on its non-missing values.
func (d *Dataset) ColumnType(column string) string {
	numeric, text := 0, 0
	for _, r := range d.rows {
		v := r[column]
		if missing(v) {
			continue
		}
		if _, ok := utils.Numeric(v); ok {
			numeric++
		} else {
			text++
		}
	}
	switch {
	case numeric == 0 && text == 0:
		return "empty"
	case text == 0:
		return "numeric"
	case numeric == 0:
		return "text"
	default:
		return "mixed"
	}
}

// NumericColumns returns the names of all purely numeric columns, in column order
func (d *Dataset) NumericColumns() []string {
	var out []string
	for _, c := range d.columns {
		if d.ColumnType(c) == "numeric" {
			out = append(out, c)
		}
	}
	return out
}

// Stats holds summary statistics for one numeric column
type Stats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// ColumnStats computes count/mean/std/min/quartiles/max over the non-missing
// numeric values of a column. Returns an error when the column has no numeric
// values to summarize.
func (d *Dataset) ColumnStats(column string) (Stats, error) {
	var values []float64
	for _, r := range d.rows {
		v := r[column]
		if missing(v) {
			continue
		}
		if f, ok := utils.Numeric(v); ok {
			values = append(values, f)
		}
	}
	if len(values) == 0 {
		return Stats{}, fmt.Errorf("column %q has no numeric values", column)
	}

	sort.Float64s(values)

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	// sample standard deviation; zero for a single value
	std := 0.0
	if len(values) > 1 {
		ss := 0.0
		for _, v := range values {
			ss += (v - mean) * (v - mean)
		}
		std = math.Sqrt(ss / float64(len(values)-1))
	}

	return Stats{
		Count:  len(values),
		Mean:   mean,
		Std:    std,
		Min:    values[0],
		Q25:    quantile(values, 0.25),
		Median: quantile(values, 0.5),
		Q75:    quantile(values, 0.75),
		Max:    values[len(values)-1],
	}, nil
}

// quantile interpolates linearly between the closest ranks of sorted values
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
