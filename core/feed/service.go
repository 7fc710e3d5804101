// ABOUTME: Feed service fetches RSS/Atom documents and maps them to domain feeds
// ABOUTME: Parsed feeds are cached so repeated page loads avoid the network

package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"feedreader/core/domain"
	coreerrors "feedreader/core/errors"
	"feedreader/core/interfaces"
	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html"
)

const (
	cacheTTL       = 1 * time.Hour
	maxConcurrency = 10
	snippetLength  = 240
)

// FeedService handles feed fetching and parsing
type FeedService struct {
	deps interfaces.Dependencies
}

// NewFeedService creates a new feed service instance
func NewFeedService(deps interfaces.Dependencies) *FeedService {
	return &FeedService{
		deps: deps,
	}
}

// ParseSingleFeed fetches and parses the feed at feedURL
func (s *FeedService) ParseSingleFeed(ctx context.Context, feedURL string) (*domain.Feed, error) {
	if feedURL == "" {
		return nil, &coreerrors.ValidationError{Field: "url", Message: "feed URL cannot be empty"}
	}

	parsedURL, err := url.Parse(feedURL)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &coreerrors.ValidationError{Field: "url", Message: "invalid URL format"}
	}

	if cached, err := s.getCachedFeed(ctx, feedURL); err == nil && cached != nil {
		s.logDebug("Feed served from cache", map[string]interface{}{"url": feedURL})
		return cached, nil
	}

	if s.deps.HTTPClient == nil {
		return nil, errors.New("HTTP client not configured")
	}

	resp, err := s.deps.HTTPClient.Get(ctx, feedURL)
	if err != nil {
		return nil, coreerrors.WrapError(err, "failed to fetch feed")
	}
	defer resp.Body().Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, &coreerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    "feed returned non-200 status code",
			API:        parsedURL.Host,
		}
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, coreerrors.WrapError(err, "failed to read feed body")
	}

	feed, err := s.parseFeedContent(body, feedURL)
	if err != nil {
		return nil, err
	}

	// Cache errors only cost a refetch.
	if err := s.cacheFeed(ctx, feedURL, feed); err != nil {
		s.logDebug("Failed to cache feed", map[string]interface{}{
			"url":   feedURL,
			"error": err.Error(),
		})
	}

	return feed, nil
}

// parseFeedContent parses feed content from bytes
func (s *FeedService) parseFeedContent(content []byte, feedURL string) (*domain.Feed, error) {
	if len(content) == 0 {
		return nil, errors.New("empty feed content")
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(content))
	if err != nil {
		return nil, coreerrors.WrapError(err, "failed to parse feed")
	}

	feed := &domain.Feed{
		Title:       parsed.Title,
		Description: parsed.Description,
		URL:         feedURL,
		Link:        parsed.Link,
		Language:    parsed.Language,
		Items:       make([]domain.FeedItem, 0, len(parsed.Items)),
	}

	switch {
	case parsed.UpdatedParsed != nil:
		feed.LastUpdated = *parsed.UpdatedParsed
	case parsed.PublishedParsed != nil:
		feed.LastUpdated = *parsed.PublishedParsed
	default:
		feed.LastUpdated = time.Now()
	}

	if parsed.Image != nil {
		feed.Image = parsed.Image.URL
	}

	skipped := 0
	for _, item := range parsed.Items {
		fi := convertItem(item)
		if !fi.IsValid() {
			skipped++
			continue
		}
		feed.Items = append(feed.Items, fi)
	}
	if skipped > 0 {
		s.logDebug("Skipped feed items without a title or link", map[string]interface{}{
			"url":     feedURL,
			"skipped": skipped,
		})
	}

	return feed, nil
}

// convertItem converts a gofeed item to a domain item
func convertItem(item *gofeed.Item) domain.FeedItem {
	fi := domain.FeedItem{
		ID:    item.GUID,
		Title: strings.TrimSpace(item.Title),
		Link:  item.Link,
	}

	if fi.ID == "" {
		fi.ID = item.Link
	}

	if item.PublishedParsed != nil {
		fi.Published = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		fi.Published = *item.UpdatedParsed
	}

	if item.Author != nil {
		fi.Author = item.Author.Name
	} else if len(item.Authors) > 0 && item.Authors[0] != nil {
		fi.Author = item.Authors[0].Name
	}

	fi.Content = item.Content
	if fi.Content == "" {
		fi.Content = item.Description
	}

	source := item.Description
	if source == "" {
		source = item.Content
	}
	fi.Snippet = truncate(htmlToText(source), snippetLength)

	return fi
}

// htmlToText extracts the text nodes of an HTML fragment
func htmlToText(fragment string) string {
	if fragment == "" {
		return ""
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			name, _ := z.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				skip++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if tag := string(name); (tag == "script" || tag == "style") && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
				b.WriteByte(' ')
			}
		}
	}
}

// truncate shortens s to at most n runes, ending with an ellipsis
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}

func cacheKey(feedURL string) string {
	return fmt.Sprintf("feed:%s", feedURL)
}

// getCachedFeed retrieves a feed from cache
func (s *FeedService) getCachedFeed(ctx context.Context, feedURL string) (*domain.Feed, error) {
	if s.deps.Cache == nil {
		return nil, nil
	}

	data, err := s.deps.Cache.Get(ctx, cacheKey(feedURL))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var feed domain.Feed
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, err
	}

	return &feed, nil
}

// cacheFeed stores a feed in cache
func (s *FeedService) cacheFeed(ctx context.Context, feedURL string, feed *domain.Feed) error {
	if s.deps.Cache == nil {
		return nil
	}

	data, err := json.Marshal(feed)
	if err != nil {
		return err
	}

	return s.deps.Cache.Set(ctx, cacheKey(feedURL), data, cacheTTL)
}

// ParseFeeds parses multiple feeds concurrently.
// Failed feeds are logged and skipped; the result keeps input order for the feeds that succeeded.
func (s *FeedService) ParseFeeds(ctx context.Context, urls []string) ([]*domain.Feed, error) {
	if urls == nil {
		return nil, errors.New("urls cannot be nil")
	}

	if len(urls) == 0 {
		return []*domain.Feed{}, nil
	}

	type feedResult struct {
		feed *domain.Feed
		err  error
	}

	results := make([]feedResult, len(urls))
	semaphore := make(chan struct{}, maxConcurrency)
	var wg sync.WaitGroup

	for i, u := range urls {
		wg.Add(1)
		go func(index int, feedURL string) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				results[index] = feedResult{err: err}
				return
			}

			select {
			case <-ctx.Done():
				results[index] = feedResult{err: ctx.Err()}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			feed, err := s.ParseSingleFeed(ctx, feedURL)
			results[index] = feedResult{feed: feed, err: err}
		}(i, u)
	}
	wg.Wait()

	feeds := make([]*domain.Feed, 0, len(urls))
	var cancelErr error

	for i, result := range results {
		if result.err != nil {
			s.logError("Failed to parse feed", map[string]interface{}{
				"url":   urls[i],
				"error": result.err.Error(),
			})
			if cancelErr == nil && (errors.Is(result.err, context.Canceled) || errors.Is(result.err, context.DeadlineExceeded)) {
				cancelErr = result.err
			}
			continue
		}
		if result.feed != nil {
			feeds = append(feeds, result.feed)
		}
	}

	return feeds, cancelErr
}

func (s *FeedService) logDebug(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Debug(msg, fields)
	}
}

func (s *FeedService) logError(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Error(msg, fields)
	}
}
