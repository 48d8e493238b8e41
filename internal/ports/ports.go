package ports

import (
	"context"
	"time"

	"GovNewsCrawler/internal/domain"
)

// FetchOptions carries rendering hints for the fetch collaborator.
type FetchOptions struct {
	RenderJS   bool
	Screenshot bool
}

// Page is a fetched document: rendered markup plus the final URL after
// redirects.
type Page struct {
	URL  string
	Body string
}

// Fetcher retrieves page markup. Fetch failures are transport errors,
// never core-logic errors.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, opts FetchOptions) (Page, error)
}

// Extraction is the structured payload produced by the content-extraction
// collaborator. Excerpt is nil when the extractor found none, which is
// distinct from an empty excerpt.
type Extraction struct {
	Title       string
	Date        string
	Excerpt     *string
	RawText     string
	Image       string
	ContentHTML string
}

// Extractor obtains a structured article payload from raw page markup.
type Extractor interface {
	Extract(ctx context.Context, page Page) (Extraction, error)
}

// ArticleSink persists normalized articles. A successful insert returns
// the generated row id and, when the record's notification flag was set,
// a derived notification record.
type ArticleSink interface {
	Insert(ctx context.Context, article domain.Article) (int64, *domain.Notification, error)
}

// Notifier delivers notification records to an outbound channel.
type Notifier interface {
	Publish(ctx context.Context, n domain.Notification) error
}

// FeedSource supplies the landing pages to crawl, read once per run.
type FeedSource interface {
	Feeds(ctx context.Context) ([]domain.Feed, error)
}

// Scheduler controls when crawl runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
