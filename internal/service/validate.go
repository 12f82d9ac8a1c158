package service

import "strings"

// Per-field length caps. Over-length input is truncated, not rejected; the
// original forms behaved this way and listings depend on bounded rows.
const (
	MaxNameLen        = 100
	MaxCategoryLen    = 50
	MaxItemLen        = 200
	MaxDescriptionLen = 1000
	MaxIssueLen       = 2000
	MaxMessageLen     = 2000
	MaxCommentLen     = 1000
)

// allowedCategories is the fixed category set for lost-and-found posts.
var allowedCategories = map[string]bool{
	"School":    true,
	"College":   true,
	"Office":    true,
	"Hostel":    true,
	"Apartment": true,
}

// allowedTypes is the fixed type set for lost-and-found posts.
var allowedTypes = map[string]bool{
	"Lost":  true,
	"Found": true,
}

// cleanText trims surrounding whitespace and truncates to max. ok is false
// when nothing remains: an empty field fails validation, an over-long one
// does not.
func cleanText(value string, max int) (string, bool) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return "", false
	}
	if runes := []rune(cleaned); len(runes) > max {
		cleaned = strings.TrimSpace(string(runes[:max]))
	}
	return cleaned, cleaned != ""
}

// validCategory reports membership in the fixed category set. Matching is
// exact: the form presents these values verbatim.
func validCategory(category string) bool {
	return allowedCategories[category]
}

// validType reports membership in {Lost, Found}.
func validType(postType string) bool {
	return allowedTypes[postType]
}
