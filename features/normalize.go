package features

import (
	"regexp"
	"strings"
)

// annotationTags are the bracketed stage directions transcribers insert
// into speaker turns.
var annotationTags = []string{"crosstalk", "applause", "laughter", "inaudible", "cheering", "booing"}

var annotationRe = regexp.MustCompile(`(?i)\[\s*(?:` + strings.Join(annotationTags, "|") + `)\s*\]`)

// Normalize strips bracketed transcript annotations such as "[crosstalk]"
// or "[Applause]" and trims surrounding whitespace. Everything else,
// including interior spacing, is left as is.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(annotationRe.ReplaceAllString(raw, ""))
}
