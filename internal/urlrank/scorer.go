package urlrank

import (
	"math"
	"sort"
	"strings"
)

const (
	// DefaultThreshold is the minimum score a URL must reach to be
	// considered a likely article.
	DefaultThreshold = 5

	minPathSegments = 2

	// longSlugLength and longSlugWords rescue descriptive slugs that
	// carry no explicit keyword.
	longSlugLength = 30
	longSlugWords  = 5
	longSlugBonus  = 3
)

// Scored pairs a URL with the sum of all rule contributions for it.
type Scored struct {
	URL   string
	Score float64
}

// Ranker filters and orders candidate URLs by article likelihood.
type Ranker struct {
	threshold float64
}

// NewRanker builds a ranker; a non-positive threshold falls back to the
// default.
func NewRanker(threshold float64) *Ranker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Ranker{threshold: threshold}
}

// Rank scores every URL and returns only those meeting the threshold,
// sorted by score descending. Equal scores retain encounter order.
// Malformed URLs never cause an error; they simply score low.
func (r *Ranker) Rank(urls []string) []Scored {
	kept := make([]Scored, 0, len(urls))
	for _, u := range urls {
		if score := Score(u); score >= r.threshold {
			kept = append(kept, Scored{URL: u, Score: score})
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})

	return kept
}

// Score computes the article-likelihood score of one URL.
func Score(rawURL string) float64 {
	c := Features(rawURL)
	canon := canonical(c)
	score := 0.0

	for _, b := range domainBonuses {
		if strings.HasSuffix(c.Host, b.expr) {
			score += b.weight
		}
	}

	for _, rl := range positiveIndicators {
		switch {
		case rl.re != nil:
			if rl.re.MatchString(canon) {
				score += rl.weight
			}
		case c.HasSegment(rl.expr):
			score += rl.weight
		}
	}

	if c.LastSegment != "" {
		for _, rl := range slugQualityPatterns {
			if rl.re.MatchString(c.LastSegment) {
				score += rl.weight
			}
		}

		// Slugs that read like titles: several hyphenated words.
		if hyphens := strings.Count(c.LastSegment, "-"); hyphens >= 3 {
			score += math.Min(float64(hyphens-2), 3)
		}
	}

	for _, rl := range negativeIndicators {
		switch rl.expr {
		case "#":
			if strings.Contains(rawURL, "#") {
				score += rl.weight
			}
		case "/page/":
			if paginationExpr.MatchString(canon) {
				score += rl.weight
			}
		default:
			if c.HasSegment(rl.expr) {
				score += rl.weight
			}
		}
	}

	if c.SegmentCount < minPathSegments {
		score -= 3
	} else if c.SegmentCount > minPathSegments+1 {
		score += math.Min(float64(c.SegmentCount-minPathSegments), 2)
	}

	// Long-slug escape: a descriptive headline-like slug rescues URLs
	// that carry none of the keyword vocabulary.
	if score < DefaultThreshold && c.LastSegment != "" {
		if len(c.LastSegment) > longSlugLength && strings.Contains(c.LastSegment, "-") {
			if len(strings.Split(c.LastSegment, "-")) >= longSlugWords {
				score += longSlugBonus
			}
		}
	}

	return score
}

// canonical rebuilds the URL with a normalized path that always ends in a
// slash, so regex rules see the same text whether or not the input
// carried a trailing slash.
func canonical(c Candidate) string {
	var b strings.Builder
	if c.Scheme != "" {
		b.WriteString(c.Scheme)
		b.WriteString("://")
	}
	b.WriteString(c.Host)
	b.WriteString("/")
	if len(c.Segments) > 0 {
		b.WriteString(strings.Join(c.Segments, "/"))
		b.WriteString("/")
	}
	return b.String()
}
