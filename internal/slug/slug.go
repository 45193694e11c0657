// Package slug derives URL-safe collection slugs from display names.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonWord matches anything that is not a word character, whitespace or hyphen.
	nonWord = regexp.MustCompile(`[^\w\s-]`)
	// whitespace collapses runs of spaces, tabs and newlines.
	whitespace = regexp.MustCompile(`\s+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a slug from the given name.
// Example: "My Great Post!" → "my-great-post"
func Generate(name string) string {
	result := strings.ToLower(strings.TrimSpace(name))
	result = nonWord.ReplaceAllString(result, "")
	result = whitespace.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}
