package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseValue(t *testing.T) {
	assert.Equal(t, 42, ParseValue("42"))
	assert.Equal(t, 3.14, ParseValue(" 3.14 "))
	assert.Equal(t, "hello", ParseValue("hello"))
	assert.Equal(t, "", ParseValue("  "))
}

func TestNumeric(t *testing.T) {
	f, ok := Numeric(42)
	assert.True(t, ok)
	assert.Equal(t, 42.0, f)

	f, ok = Numeric(2.5)
	assert.True(t, ok)
	assert.Equal(t, 2.5, f)

	_, ok = Numeric("42")
	assert.False(t, ok)

	_, ok = Numeric(nil)
	assert.False(t, ok)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "my-project", Slug("My Project"))
	assert.Equal(t, "etl-results", Slug("ETL Results"))
	assert.Equal(t, "demo", Slug("  Demo  "))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Minute, ParseDuration("2m", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("bogus", time.Minute))
}
