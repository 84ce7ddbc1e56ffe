package deploy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentTypeTable(t *testing.T) {
	tests := map[string]string{
		".html": "text/html",
		"htm":   "text/html",
		".css":  "text/css",
		".js":   "application/javascript",
		".json": "application/json",
		".png":  "image/png",
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".gif":  "image/gif",
		".svg":  "image/svg+xml",
		".ico":  "image/x-icon",
		".pdf":  "application/pdf",
		".csv":  "text/csv",
	}
	for ext, want := range tests {
		assert.Equal(t, want, ContentType(ext), "ext %s", ext)
	}
}

func TestContentTypeCaseInsensitive(t *testing.T) {
	assert.Equal(t, "text/html", ContentType(".HTML"))
	assert.Equal(t, "image/jpeg", ContentType("JPG"))
}

func TestContentTypeUnknownFallsBack(t *testing.T) {
	assert.Equal(t, "application/octet-stream", ContentType(".xyz"))
	assert.Equal(t, "application/octet-stream", ContentType(""))
}
