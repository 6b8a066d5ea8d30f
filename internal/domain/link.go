package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// EntryPath joins a directory prefix with a record name.
// Directories get a trailing separator so they can be used as the next prefix.
func EntryPath(base string, r CoverageRecord) string {
	path := base + r.Name
	if r.IsDirectory {
		path += "/"
	}
	return path
}

// EntryLink builds the dashboard link for a record.
// Query values are escaped except for "/", which is legal in a query.
func EntryLink(revision, base string, r CoverageRecord) string {
	return fmt.Sprintf("/#/file?revision=%s&path=%s", queryValue(revision), queryValue(EntryPath(base, r)))
}

func queryValue(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "%2F", "/")
}

// ParentPath returns the prefix one level up from a directory prefix.
// The root ("") is its own parent.
func ParentPath(path string) string {
	trimmed := strings.TrimSuffix(path, "/")
	if trimmed == "" {
		return ""
	}
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return ""
	}
	return trimmed[:idx+1]
}

// NormalizeDirPath makes a user-supplied path usable as a directory prefix:
// no leading slash and, unless it is the root, a trailing one.
func NormalizeDirPath(path string) string {
	path = strings.TrimSpace(path)
	path = strings.TrimLeft(path, "/")
	if path == "" {
		return ""
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return path
}
