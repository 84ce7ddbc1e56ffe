package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Dataset {
	return New([]string{"name", "age", "city"}, []Row{
		{"name": "alice", "age": 30, "city": "london"},
		{"name": "bob", "age": 25, "city": ""},
		{"name": "carol", "age": nil, "city": "paris"},
		{"name": "dave", "age": 35, "city": "berlin"},
	})
}

func TestCounts(t *testing.T) {
	ds := sample()
	assert.Equal(t, 4, ds.RowCount())
	assert.Equal(t, 3, ds.ColumnCount())
	assert.Equal(t, []string{"name", "age", "city"}, ds.Columns())
}

func TestMissingCount(t *testing.T) {
	ds := sample()
	assert.Equal(t, 0, ds.MissingCount("name"))
	assert.Equal(t, 1, ds.MissingCount("age"))
	assert.Equal(t, 1, ds.MissingCount("city")) // empty string counts as missing
}

func TestColumnType(t *testing.T) {
	ds := sample()
	assert.Equal(t, "text", ds.ColumnType("name"))
	assert.Equal(t, "numeric", ds.ColumnType("age"))

	mixed := New([]string{"v"}, []Row{{"v": 1}, {"v": "x"}})
	assert.Equal(t, "mixed", mixed.ColumnType("v"))

	empty := New([]string{"v"}, []Row{{"v": nil}, {"v": ""}})
	assert.Equal(t, "empty", empty.ColumnType("v"))
}

func TestNumericColumns(t *testing.T) {
	ds := sample()
	assert.Equal(t, []string{"age"}, ds.NumericColumns())

	noNumeric := New([]string{"a"}, []Row{{"a": "x"}})
	assert.Empty(t, noNumeric.NumericColumns())
}

func TestColumnStats(t *testing.T) {
	ds := New([]string{"v"}, []Row{
		{"v": 1}, {"v": 2}, {"v": 3}, {"v": 4}, {"v": 5},
	})
	stats, err := ds.ColumnStats("v")
	require.NoError(t, err)

	assert.Equal(t, 5, stats.Count)
	assert.InDelta(t, 3.0, stats.Mean, 1e-9)
	assert.InDelta(t, 1.5811, stats.Std, 1e-4)
	assert.Equal(t, 1.0, stats.Min)
	assert.Equal(t, 2.0, stats.Q25)
	assert.Equal(t, 3.0, stats.Median)
	assert.Equal(t, 4.0, stats.Q75)
	assert.Equal(t, 5.0, stats.Max)
}

func TestColumnStatsSkipsMissing(t *testing.T) {
	ds := New([]string{"v"}, []Row{{"v": 10}, {"v": nil}, {"v": 20}})
	stats, err := ds.ColumnStats("v")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Count)
	assert.InDelta(t, 15.0, stats.Mean, 1e-9)
}

func TestColumnStatsNoNumericValues(t *testing.T) {
	ds := New([]string{"v"}, []Row{{"v": "x"}})
	_, err := ds.ColumnStats("v")
	assert.Error(t, err)
}

func TestHead(t *testing.T) {
	ds := sample()
	head := ds.Head(2)
	require.Len(t, head, 2)
	assert.Equal(t, "alice", head[0]["name"])
	assert.Equal(t, "bob", head[1]["name"])

	assert.Len(t, ds.Head(100), 4)
	assert.Empty(t, ds.Head(-1))
	assert.Empty(t, New(nil, nil).Head(10))
}

func TestSnapshotIsolation(t *testing.T) {
	cols := []string{"a"}
	rows := []Row{{"a": 1}}
	ds := New(cols, rows)

	rows[0]["a"] = 99
	cols[0] = "mutated"

	assert.Equal(t, 1, ds.Value(0, "a"))
	assert.Equal(t, []string{"a"}, ds.Columns())
}
