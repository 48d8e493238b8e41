package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"GovNewsCrawler/internal/discovery"
	"GovNewsCrawler/internal/domain"
	"GovNewsCrawler/internal/normalize"
	"GovNewsCrawler/internal/ports"
)

const defaultStrategy = "govnews"

// PipelineDeps wires all driven adapters into the crawl pipeline.
type PipelineDeps struct {
	Feeds      ports.FeedSource
	Fetcher    ports.Fetcher
	Discovery  *discovery.Registry
	Extractor  ports.Extractor
	Normalizer *normalize.Pipeline
	Sink       ports.ArticleSink
	Notifier   ports.Notifier
	Logger     *slog.Logger

	// FanOut caps how many ranked candidates are fetched per landing
	// page; zero means one.
	FanOut int

	// MaxBodyBytes caps the raw markup captured into the md field;
	// zero means no cap.
	MaxBodyBytes int
}

// Pipeline implements the crawl workflow: landing page -> link discovery
// -> candidate fetch -> extraction -> normalization -> sink -> optional
// notification.
type Pipeline struct {
	feeds      ports.FeedSource
	fetcher    ports.Fetcher
	registry   *discovery.Registry
	extractor  ports.Extractor
	normalizer *normalize.Pipeline
	sink       ports.ArticleSink
	notifier   ports.Notifier
	logger     *slog.Logger
	fanOut     int
	maxBody    int
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	fanOut := deps.FanOut
	if fanOut <= 0 {
		fanOut = 1
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		feeds:      deps.Feeds,
		fetcher:    deps.Fetcher,
		registry:   deps.Discovery,
		extractor:  deps.Extractor,
		normalizer: deps.Normalizer,
		sink:       deps.Sink,
		notifier:   deps.Notifier,
		logger:     logger,
		fanOut:     fanOut,
		maxBody:    deps.MaxBodyBytes,
	}
}

// Run crawls every configured feed. Feeds are processed concurrently and
// isolated from each other: one feed's failure never aborts its
// siblings. Run itself only fails when the feed list cannot be read.
func (p *Pipeline) Run(ctx context.Context) error {
	feedList, err := p.feeds.Feeds(ctx)
	if err != nil {
		return fmt.Errorf("load feeds: %w", err)
	}

	p.logger.Info("crawl run started", "feeds", len(feedList))

	var wg sync.WaitGroup
	for _, feed := range feedList {
		wg.Add(1)
		go func(feed domain.Feed) {
			defer wg.Done()
			if err := p.processFeed(ctx, feed); err != nil {
				p.logger.Error("feed failed", "source", feed.SourceURL, "error", err)
			}
		}(feed)
	}
	wg.Wait()

	p.logger.Info("crawl run finished")
	return nil
}

func (p *Pipeline) processFeed(ctx context.Context, feed domain.Feed) error {
	landing, err := p.fetcher.Fetch(ctx, feed.SourceURL, ports.FetchOptions{
		RenderJS:   true,
		Screenshot: true,
	})
	if err != nil {
		return fmt.Errorf("fetch landing: %w", err)
	}

	strategyName := feed.Strategy
	if strategyName == "" {
		strategyName = defaultStrategy
	}
	strategy, err := p.registry.Resolve(strategyName)
	if err != nil {
		return err
	}

	ranked, err := strategy.Discover(ctx, discovery.Page{URL: landing.URL, Body: landing.Body})
	if err != nil {
		return fmt.Errorf("discover links: %w", err)
	}
	if len(ranked) == 0 {
		p.logger.Info("no article candidates", "source", feed.SourceURL)
		return nil
	}

	if len(ranked) > p.fanOut {
		ranked = ranked[:p.fanOut]
	}

	for _, candidate := range ranked {
		if err := p.processArticle(ctx, feed, candidate.URL); err != nil {
			p.logger.Error("article failed",
				"url", candidate.URL, "score", candidate.Score, "error", err)
		}
	}

	return nil
}

func (p *Pipeline) processArticle(ctx context.Context, feed domain.Feed, articleURL string) error {
	page, err := p.fetcher.Fetch(ctx, articleURL, ports.FetchOptions{})
	if err != nil {
		return fmt.Errorf("fetch article: %w", err)
	}

	extraction, err := p.extractor.Extract(ctx, page)
	if err != nil {
		return err
	}

	raw := p.buildRaw(feed, page, extraction)

	article, err := p.normalizer.Normalize(raw)
	if err != nil {
		return err
	}

	_, note, err := p.sink.Insert(ctx, article)
	if err != nil {
		return err
	}

	if note != nil {
		if p.notifier == nil {
			p.logger.Info("notification pending, no notifier configured",
				"table", note.TableName, "id", note.TableID)
			return nil
		}
		if err := p.notifier.Publish(ctx, *note); err != nil {
			return fmt.Errorf("publish notification: %w", err)
		}
	}

	return nil
}

// buildRaw assembles the raw article record from the extraction payload
// and the feed's routing metadata.
func (p *Pipeline) buildRaw(feed domain.Feed, page ports.Page, ext ports.Extraction) domain.RawArticle {
	markup := page.Body
	if p.maxBody > 0 && len(markup) > p.maxBody {
		markup = markup[:p.maxBody]
	}

	return domain.RawArticle{
		Title:          ext.Title,
		URL:            page.URL,
		ImageURL:       resolveImage(ext.Image, page.URL, feed.ImageURL),
		CreatedAt:      ext.Date,
		Description:    resolveDescription(ext.Excerpt, ext.RawText),
		Markup:         markup,
		CollectionName: feed.CollectionName,
		Topic:          feed.Topic,
		Branch:         feed.Branch,
		Country:        feed.Country,
		Notification:   feed.Notification,
	}
}
