package utils

import (
	"strconv"
	"strings"
	"time"
)

// ParseDuration safely parses duration strings like "2m", falling back to the
// given default on empty or malformed input.
func ParseDuration(d string, fallback time.Duration) time.Duration {
	if d == "" {
		return fallback
	}
	duration, err := time.ParseDuration(d)
	if err != nil {
		return fallback
	}
	return duration
}

// ParseValue coerces a raw cell string into int, float64 or string
func ParseValue(s string) interface{} {
	// Trim whitespace first
	s = strings.TrimSpace(s)

	// try int
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	// try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// Numeric safely converts supported types to float64. The second return
// reports whether the value was numeric at all.
func Numeric(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case float64:
		return val, true
	case float32:
		return float64(val), true
	default:
		return 0, false
	}
}

// Slug turns a project name into an object-storage key prefix:
// lower-cased, spaces replaced by hyphens.
func Slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(s, " ", "-")
}
