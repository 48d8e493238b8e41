// Package extract wraps the boilerplate-reduction library as the
// content-extraction collaborator.
package extract

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"GovNewsCrawler/internal/domain"
	"GovNewsCrawler/internal/ports"
)

// dateMetaSelectors are tried in order when the extractor itself found no
// published time.
var dateMetaSelectors = []struct {
	selector string
	attr     string
}{
	{`meta[property="article:published_time"]`, "content"},
	{`meta[name="date"]`, "content"},
	{`meta[name="dc.date"]`, "content"},
	{`time[datetime]`, "datetime"},
}

// ReadabilityExtractor produces structured article payloads from raw
// page markup.
type ReadabilityExtractor struct {
	logger *slog.Logger
}

var _ ports.Extractor = (*ReadabilityExtractor)(nil)

// NewReadabilityExtractor builds the extraction stage.
func NewReadabilityExtractor(logger *slog.Logger) *ReadabilityExtractor {
	return &ReadabilityExtractor{logger: logger}
}

// Extract runs readability over the page. Pages yielding neither a title
// nor any text fail with an ExtractionError; a partially-populated
// record is never emitted.
func (e *ReadabilityExtractor) Extract(ctx context.Context, page ports.Page) (ports.Extraction, error) {
	if err := ctx.Err(); err != nil {
		return ports.Extraction{}, err
	}

	// Without a parseable page URL relative URIs stay unresolved.
	pageURL, err := url.Parse(page.URL)
	if err != nil {
		pageURL = &url.URL{}
	}

	article, err := readability.FromReader(strings.NewReader(page.Body), pageURL)
	if err != nil {
		return ports.Extraction{}, &domain.ExtractionError{URL: page.URL, Err: err}
	}

	title := strings.TrimSpace(article.Title)
	text := strings.TrimSpace(article.TextContent)
	if title == "" && text == "" {
		return ports.Extraction{}, &domain.ExtractionError{URL: page.URL}
	}

	out := ports.Extraction{
		Title:       title,
		RawText:     text,
		Image:       article.Image,
		ContentHTML: article.Content,
	}

	if excerpt := strings.TrimSpace(article.Excerpt); excerpt != "" {
		out.Excerpt = &excerpt
	}

	if article.PublishedTime != nil {
		out.Date = article.PublishedTime.Format(time.RFC3339)
	} else {
		out.Date = metaDate(page.Body)
	}

	return out, nil
}

// metaDate scans document metadata for a publication date string.
func metaDate(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}

	for _, m := range dateMetaSelectors {
		if v, ok := doc.Find(m.selector).First().Attr(m.attr); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}
