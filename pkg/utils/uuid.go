package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	nonSlugChars = regexp.MustCompile("[^a-z0-9-]")
	hyphenRuns   = regexp.MustCompile("-+")
)

// Slugify converts a company name to a URL-friendly slug
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// GenerateBillNo returns a unique bill number with the given prefix
func GenerateBillNo(prefix string) string {
	return prefix + strings.ToUpper(uuid.New().String()[:8])
}
