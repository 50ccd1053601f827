package utils

import (
	"regexp"
	"strings"
)

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases a name and collapses runs of non-alphanumerics into
// single hyphens: "Deluxe King " -> "deluxe-king".
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugStrip.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NormalizeRoomType is the matching key for room type labels: trimmed and
// lowercased, nothing else.
func NormalizeRoomType(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
