package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"GovNewsCrawler/internal/urlrank"
)

// boilerplateSelectors name the structural page regions removed before
// link extraction so navigational chrome never reaches the scorer.
var boilerplateSelectors = []string{
	"header", "nav", "footer", "aside",
	".sidebar", ".footer", ".header", ".nav", ".sidenav", "sidebar",
	".pagination", ".pager",
	".related-links", ".related-posts",
	"comments", ".comment",
	".share-buttons", ".social-links",
	".ad", ".advertisement", ".promo", ".promotion",
}

// defaultBlockedHosts are social-media hosts excluded by exact match.
var defaultBlockedHosts = []string{
	"facebook.com", "www.facebook.com",
	"twitter.com", "www.twitter.com", "x.com", "www.x.com",
	"reddit.com", "www.reddit.com",
	"instagram.com", "www.instagram.com",
	"linkedin.com", "www.linkedin.com",
	"youtube.com", "www.youtube.com",
	"tiktok.com", "www.tiktok.com",
	"pinterest.com", "www.pinterest.com",
	"tumblr.com", "www.tumblr.com",
	"snapchat.com", "www.snapchat.com",
	"threads.net", "www.threads.net",
}

// DefaultAllowedSuffixes keep the crawl on government sites.
var DefaultAllowedSuffixes = []string{".gov", ".au"}

// GovNews is the default strategy for government landing pages: strip
// boilerplate, extract hyperlinks, filter hosts, rank by likelihood.
type GovNews struct {
	allowedSuffixes []string
	blockedHosts    map[string]struct{}
	ranker          *urlrank.Ranker
	logger          *slog.Logger
}

var _ Strategy = (*GovNews)(nil)

// NewGovNews wires the strategy; empty suffixes fall back to the
// defaults, a nil ranker gets the default threshold.
func NewGovNews(allowedSuffixes []string, blockedHosts []string, ranker *urlrank.Ranker, logger *slog.Logger) *GovNews {
	if len(allowedSuffixes) == 0 {
		allowedSuffixes = DefaultAllowedSuffixes
	}
	if len(blockedHosts) == 0 {
		blockedHosts = defaultBlockedHosts
	}
	if ranker == nil {
		ranker = urlrank.NewRanker(0)
	}

	blocked := make(map[string]struct{}, len(blockedHosts))
	for _, h := range blockedHosts {
		blocked[strings.ToLower(h)] = struct{}{}
	}

	return &GovNews{
		allowedSuffixes: allowedSuffixes,
		blockedHosts:    blocked,
		ranker:          ranker,
		logger:          logger,
	}
}

// Name identifies the strategy inside the registry.
func (g *GovNews) Name() string {
	return "govnews"
}

// Discover extracts and ranks candidate article links from a landing page.
func (g *GovNews) Discover(ctx context.Context, page Page) ([]urlrank.Scored, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body))
	if err != nil {
		return nil, fmt.Errorf("parse page %s: %w", page.URL, err)
	}

	for _, selector := range boilerplateSelectors {
		doc.Find(selector).Remove()
	}

	base, err := url.Parse(page.URL)
	if err != nil {
		return nil, fmt.Errorf("parse page url %s: %w", page.URL, err)
	}

	seen := map[string]struct{}{}
	var candidates []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") ||
			strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		resolved.Fragment = ""

		if !g.hostAllowed(resolved.Host) {
			return
		}

		abs := resolved.String()
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		candidates = append(candidates, abs)
	})

	ranked := g.ranker.Rank(candidates)
	g.debug("discovery done", "page", page.URL, "links", len(candidates), "ranked", len(ranked))
	return ranked, nil
}

func (g *GovNews) hostAllowed(host string) bool {
	host = strings.ToLower(host)
	if _, blocked := g.blockedHosts[host]; blocked {
		return false
	}

	for _, suffix := range g.allowedSuffixes {
		if strings.Contains(host, suffix) {
			return true
		}
	}
	return false
}

func (g *GovNews) debug(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Debug(msg, args...)
	}
}
