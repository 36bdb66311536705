package main

import (
	"fmt"
	"net/url"
)

// truncateURL shortens a URL for display by showing only the path.
// Long paths keep their unique suffix.
func truncateURL(rawURL string, maxLen int) string {
	if maxLen < 4 {
		return rawURL[:min(len(rawURL), max(maxLen, 0))]
	}
	path := rawURL
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Host != "" {
		path = parsed.Path
		if path == "" {
			path = "/"
		}
	}
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}

// formatBytes formats bytes in human-readable form.
func formatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
