// ABOUTME: Assembles the reader's collaborators from configuration
// ABOUTME: Shared by the API server and the feedcheck CLI

package app

import (
	"context"
	"io"
	"time"

	"feedreader/core/domain"
	"feedreader/core/feed"
	"feedreader/core/interfaces"
	"feedreader/core/reader"
	"feedreader/core/render"
	"feedreader/core/suite"
	"feedreader/infrastructure/cache/memory"
	"feedreader/infrastructure/cache/redis"
	"feedreader/infrastructure/cache/sqlite"
	stdhttp "feedreader/infrastructure/http/standard"
	"feedreader/pkg/config"
)

const fetchTimeout = 30 * time.Second

// App holds the long-lived collaborators every page shares
type App struct {
	Config   *config.Config
	Logger   interfaces.Logger
	Feeds    domain.FeedCollection
	Cache    interfaces.Cache
	Service  *feed.FeedService
	Renderer *render.HTMLRenderer

	closers []io.Closer
}

// New builds the application. The cache backend falls back to memory when
// redis or sqlite cannot be opened.
func New(cfg *config.Config, logger interfaces.Logger) (*App, error) {
	feeds, err := cfg.Feeds()
	if err != nil {
		return nil, err
	}

	var renderOpts []render.Option
	if cfg.Reader.FullContent {
		renderOpts = append(renderOpts, render.WithFullContent())
	}

	a := &App{
		Config:   cfg,
		Logger:   logger,
		Feeds:    feeds,
		Renderer: render.NewHTMLRenderer(renderOpts...),
	}
	a.Cache = a.newCache()

	a.Service = feed.NewFeedService(interfaces.Dependencies{
		Cache:      a.Cache,
		HTTPClient: stdhttp.NewStandardHTTPClient(fetchTimeout, stdhttp.WithLogger(logger)),
		Logger:     logger,
	})

	return a, nil
}

func (a *App) newCache() interfaces.Cache {
	cfg := a.Config.Cache
	memoryTTL := time.Duration(cfg.Memory.DefaultExpiration) * time.Second

	switch cfg.Type {
	case "redis":
		c, err := redis.NewRedisCache(cfg.Redis)
		if err == nil {
			a.closers = append(a.closers, c)
			a.Logger.Info("Using Redis cache", map[string]interface{}{"address": cfg.Redis.Address})
			return c
		}
		a.Logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
			"error": err.Error(),
		})
	case "sqlite":
		c, err := sqlite.NewSQLiteCache(cfg.SQLitePath)
		if err == nil {
			a.closers = append(a.closers, c)
			a.Logger.Info("Using SQLite cache", map[string]interface{}{"path": cfg.SQLitePath})
			return c
		}
		a.Logger.Error("Failed to create SQLite cache, falling back to memory", map[string]interface{}{
			"error": err.Error(),
		})
	}

	a.Logger.Info("Using memory cache", nil)
	return memory.NewMemoryCache(memoryTTL, 10*time.Minute)
}

// NewPage creates a fresh reader page over the configured feeds
func (a *App) NewPage() (*reader.Page, error) {
	return reader.NewPage(reader.Options{
		Feeds:    a.Feeds,
		Parser:   a.Service,
		Renderer: a.Renderer,
		Logger:   a.Logger,
	})
}

// RunChecks runs every behavioural check against a fresh page
func (a *App) RunChecks(ctx context.Context) (suite.Report, error) {
	page, err := a.NewPage()
	if err != nil {
		return suite.Report{}, err
	}
	return suite.Check(ctx, page, a.Config.Reader.LoadTimeout, a.Logger), nil
}

// Warm fetches every configured feed once so the first page loads hit the cache
func (a *App) Warm(ctx context.Context) {
	urls := make([]string, 0, a.Feeds.Len())
	for _, f := range a.Feeds {
		if f.URL != "" {
			urls = append(urls, f.URL)
		}
	}

	feeds, err := a.Service.ParseFeeds(ctx, urls)
	fields := map[string]interface{}{
		"requested": len(urls),
		"parsed":    len(feeds),
	}
	if err != nil {
		fields["error"] = err.Error()
		a.Logger.Warn("Feed warm-up interrupted", fields)
		return
	}
	a.Logger.Info("Feed cache warmed", fields)
}

// Close releases the cache backend
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
