package normalize

import (
	"html"
	"regexp"
	"strings"
)

var (
	scriptExpr = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	tagExpr    = regexp.MustCompile(`(?s)<[^>]*>`)
)

// StripMarkup decodes HTML entities, removes script blocks, and removes
// all remaining tags. Tag removal runs last so entities that decode into
// markup (double-escaped input) never survive into the output. Idempotent:
// running it on already-clean text returns the text unchanged.
func StripMarkup(s string) string {
	s = html.UnescapeString(s)
	s = scriptExpr.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return tagExpr.ReplaceAllString(s, "")
}

// CleanText cuts everything after a trailing "Tags" marker (several
// sources append a tag list after the body) and collapses runs of
// whitespace into single spaces.
func CleanText(s string) string {
	main, _, _ := strings.Cut(s, "Tags")
	return strings.Join(strings.Fields(main), " ")
}

// Text is the full free-text treatment applied to descriptions and other
// prose fields.
func Text(s string) string {
	return CleanText(StripMarkup(s))
}
