package utils

import (
	"mime"
	"strings"
)

var mimeTypes = map[string]string{
	".html": "text/html",
	".htm":  "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
	".xml":  "application/xml",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
}

const DefaultMimeType = "application/octet-stream"

// GetMimeType maps a file extension (with its dot) to a media type. Unknown
// extensions fall back to the system table, then DefaultMimeType.
func GetMimeType(ext string) string {
	ext = strings.ToLower(ext)
	if mimeType, ok := mimeTypes[ext]; ok {
		return mimeType
	}
	if mimeType := mime.TypeByExtension(ext); mimeType != "" {
		return mimeType
	}
	return DefaultMimeType
}
