package urlrank

import (
	"regexp"
	"strings"
)

// A rule pairs an indicator with a signed weight. An indicator wrapped in
// slashes (`/.../`) is compiled as a regular expression matched against
// the canonical URL; anything else is a literal token matched against
// whole path segments only.
type rule struct {
	expr   string
	weight float64
	re     *regexp.Regexp
}

// positiveIndicators reward date conventions and content-type vocabulary
// common on government and organizational sites.
var positiveIndicators = compileRules([]rule{
	// Date patterns in the path are the strongest single signal.
	{expr: `/\d{4}/\d{2}/\d{2}/`, weight: 5},
	{expr: `/\d{4}-\d{2}-\d{2}/`, weight: 5},
	{expr: `/\d{4}/\d{2}/`, weight: 2},

	// Content-type slugs.
	{expr: "article", weight: 4},
	{expr: "issues", weight: 4},
	{expr: "blog", weight: 4},
	{expr: "news", weight: 3},
	{expr: "post", weight: 3},
	{expr: "story", weight: 3},
	{expr: "media", weight: 3},
	{expr: "press-release", weight: 3},
	{expr: "media-release", weight: 3},
	{expr: "speech", weight: 3},
	{expr: "report", weight: 3},
	{expr: "paper", weight: 3},
	{expr: "document", weight: 2},
	{expr: "publication", weight: 2},
	{expr: "release", weight: 2},

	// Government/official content vocabulary.
	{expr: "announcement", weight: 3},
	{expr: "update", weight: 2},
	{expr: "statement", weight: 3},
	{expr: "advisory", weight: 3},
	{expr: "notice", weight: 2},
	{expr: "bulletin", weight: 3},

	// Event and time-sensitive vocabulary.
	{expr: "month", weight: 2},
	{expr: "week", weight: 2},
	{expr: "day", weight: 2},
	{expr: "annual", weight: 2},
	{expr: "2024", weight: 2},
	{expr: "2025", weight: 2},
	{expr: "2023", weight: 1},
})

// negativeIndicators penalize navigational, category, and administrative
// pages. The `#` and `/page/` entries carry special matching rules (see
// scoreNegative).
var negativeIndicators = compileRules([]rule{
	{expr: "category", weight: -3},
	{expr: "tag", weight: -3},
	{expr: "archive", weight: -2},
	{expr: "/page/", weight: -2},
	{expr: "list", weight: -2},
	{expr: "search", weight: -3},
	{expr: "collection", weight: -2},
	{expr: "series", weight: -2},
	{expr: "topic", weight: -2},

	{expr: "about", weight: -1},
	{expr: "contact", weight: -1},
	{expr: "privacy", weight: -1},
	{expr: "terms", weight: -1},
	{expr: "dashboard", weight: -4},
	{expr: "admin", weight: -5},
	{expr: "login", weight: -5},
	{expr: "signup", weight: -3},
	{expr: "cart", weight: -2},
	{expr: "checkout", weight: -2},
	{expr: "sitemap", weight: -2},
	{expr: "feed", weight: -1},
	{expr: "json", weight: -1},
	{expr: "xml", weight: -1},
	{expr: "amp", weight: -1},
	{expr: "main-content", weight: -3},
	{expr: "#", weight: -1},

	{expr: "index", weight: -2},
	{expr: "home", weight: -2},
	{expr: "default", weight: -2},
})

// slugQualityPatterns score the last path segment; long hyphenated slugs
// read like headlines.
var slugQualityPatterns = compileSlugRules([]rule{
	{expr: `[-\w]{20,}`, weight: 3},
	{expr: `\w+-\w+-\w+-\w+`, weight: 2},
	{expr: `-\d+/?$`, weight: 1},

	{expr: `(safety|awareness|education|training|program|initiative)`, weight: 1},
	{expr: `(guide|tips|advice|how-to|faq)`, weight: 2},
})

// domainBonuses apply for every matching host suffix; they are not
// mutually exclusive.
var domainBonuses = []rule{
	{expr: ".gov", weight: 1},
	{expr: ".edu", weight: 1},
	{expr: ".org", weight: 0.5},
}

// paginationExpr implements the /page/ special case: only numbered
// pagination paths are penalized.
var paginationExpr = regexp.MustCompile(`/page/\d+`)

func isPattern(expr string) bool {
	return len(expr) > 1 && strings.HasPrefix(expr, "/") && strings.HasSuffix(expr, "/")
}

func compileRules(rules []rule) []rule {
	for i, r := range rules {
		if isPattern(r.expr) && r.expr != "/page/" {
			rules[i].re = regexp.MustCompile(r.expr)
		}
	}
	return rules
}

func compileSlugRules(rules []rule) []rule {
	for i, r := range rules {
		rules[i].re = regexp.MustCompile(`(?i)` + r.expr)
	}
	return rules
}
