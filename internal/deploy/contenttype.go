package deploy

import "strings"

// contentTypes maps file extensions to the MIME type attached on upload
var contentTypes = map[string]string{
	"html": "text/html",
	"htm":  "text/html",
	"css":  "text/css",
	"js":   "application/javascript",
	"json": "application/json",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"svg":  "image/svg+xml",
	"ico":  "image/x-icon",
	"pdf":  "application/pdf",
	"csv":  "text/csv",
}

// ContentType resolves a file extension (with or without leading dot,
// any case) to a MIME type. Unknown extensions resolve to a generic
// binary type; there is no error path.
func ContentType(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
