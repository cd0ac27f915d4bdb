package utils

import (
	"net/url"
	"path/filepath"
	"strings"
)

// URIToPath converts a file:// URI to a filesystem path. Other URIs are
// returned unchanged.
func URIToPath(uri string) string {
	if !strings.HasPrefix(uri, "file://") {
		return uri
	}
	u, err := url.Parse(uri)
	if err != nil {
		// Fall back to stripping the scheme
		path := strings.TrimPrefix(uri, "file://")
		return strings.ReplaceAll(path, "%20", " ")
	}
	return filepath.FromSlash(u.Path)
}
