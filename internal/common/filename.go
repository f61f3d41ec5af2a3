package common

import (
	"path/filepath"
	"strings"
)

// SanitizeFilename reduces name to a filesystem-safe base name. Directory
// components are dropped, runs of unsafe characters become one underscore
// and ".." never survives. An empty result becomes "statement".
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	sanitized := strings.TrimSpace(filepath.Base(name))
	sanitized = strings.ReplaceAll(sanitized, " ", "_")

	var result strings.Builder
	for _, r := range sanitized {
		if (r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') ||
			r == '_' || r == '-' || r == '.' {
			result.WriteRune(r)
		} else {
			result.WriteRune('_')
		}
	}
	sanitized = result.String()

	for strings.Contains(sanitized, "..") {
		sanitized = strings.ReplaceAll(sanitized, "..", "_")
	}
	for strings.Contains(sanitized, "__") {
		sanitized = strings.ReplaceAll(sanitized, "__", "_")
	}
	sanitized = strings.Trim(sanitized, "_.")

	if sanitized == "" {
		sanitized = "statement"
	}
	return sanitized
}

// StatementStem returns the sanitized file name of path without its extension.
func StatementStem(path string) string {
	base := filepath.Base(path)
	return SanitizeFilename(strings.TrimSuffix(base, filepath.Ext(base)))
}
