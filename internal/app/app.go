package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	_ "github.com/lib/pq"

	"GovNewsCrawler/internal/config"
	"GovNewsCrawler/internal/discovery"
	"GovNewsCrawler/internal/infrastructure/extract"
	"GovNewsCrawler/internal/infrastructure/feeds"
	"GovNewsCrawler/internal/infrastructure/fetch"
	"GovNewsCrawler/internal/infrastructure/scheduler"
	"GovNewsCrawler/internal/infrastructure/storage"
	"GovNewsCrawler/internal/infrastructure/telegram"
	"GovNewsCrawler/internal/logging"
	"GovNewsCrawler/internal/normalize"
	"GovNewsCrawler/internal/ports"
	"GovNewsCrawler/internal/urlrank"
	"GovNewsCrawler/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	db        *sql.DB
	scheduler *usecase.Scheduler
	logger    *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	ranker := urlrank.NewRanker(cfg.Crawler.ScoreThreshold)

	registry := discovery.NewRegistry()
	registry.Register(discovery.NewGovNews(
		cfg.Crawler.AllowedHostSuffixes,
		cfg.Crawler.BlockedHosts,
		ranker,
		logging.Component(baseLogger, "discovery"),
	))

	httpClient := &http.Client{Timeout: cfg.Crawler.Timeout()}
	fetcher := fetch.NewHTTPFetcher(httpClient, cfg.Crawler.UserAgent, cfg.Crawler.RenderEndpoint)
	extractor := extract.NewReadabilityExtractor(logging.Component(baseLogger, "extract"))
	normalizer := normalize.NewPipeline(cfg.Normalize.Location())
	sink := storage.NewPostgresSink(db, cfg.Database.Schema, logging.Component(baseLogger, "storage"))
	source := feeds.NewFileSource(cfg.Feeds.File, cfg.Feeds.Limit)

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(
			cfg.Notifications.Telegram.BotToken,
			cfg.Notifications.Telegram.ChatID,
		)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Feeds:        source,
		Fetcher:      fetcher,
		Discovery:    registry,
		Extractor:    extractor,
		Normalizer:   normalizer,
		Sink:         sink,
		Notifier:     notifier,
		Logger:       logging.Component(baseLogger, "pipeline"),
		FanOut:       cfg.Crawler.FanOut,
		MaxBodyBytes: cfg.Crawler.MaxBodyBytes,
	})

	driver := scheduler.NewIntervalScheduler(cfg.Scheduler.Interval())

	return &Application{
		cfg:       cfg,
		db:        db,
		scheduler: usecase.NewScheduler(driver, pipeline),
		logger:    baseLogger,
	}, nil
}

// Run executes crawl runs until the context is done; with a zero
// scheduler interval it performs a single run and returns.
func (a *Application) Run(ctx context.Context) error {
	defer a.close()

	if err := a.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	if a.cfg.Scheduler.Interval() <= 0 {
		return nil
	}

	<-ctx.Done()
	return a.scheduler.Stop(context.Background())
}

func (a *Application) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("close database", "error", err)
		}
	}
}
