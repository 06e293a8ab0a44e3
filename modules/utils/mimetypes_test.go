package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMimeType(t *testing.T) {
	tests := map[string]string{
		".html":    "text/html",
		".HTML":    "text/html",
		".css":     "text/css",
		".png":     "image/png",
		".ico":     "image/x-icon",
		".xml":     "application/xml",
		"":         DefaultMimeType,
		".unknown": DefaultMimeType,
	}
	for ext, want := range tests {
		assert.Equal(t, want, GetMimeType(ext), "GetMimeType(%q)", ext)
	}
}
