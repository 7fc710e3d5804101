// ABOUTME: Service interfaces shared by the reader page and its collaborators
// ABOUTME: Lets the page be assembled from real or fake parsers and renderers

package interfaces

import (
	"context"

	"feedreader/core/domain"
)

// FeedParser fetches and parses the feed document at a URL
type FeedParser interface {
	ParseSingleFeed(ctx context.Context, feedURL string) (*domain.Feed, error)
}

// ContentRenderer turns feeds and page state into markup
type ContentRenderer interface {
	// RenderEntries renders the inner markup of the .feed container
	RenderEntries(feed *domain.Feed) (string, error)

	// RenderPage renders the whole reader page
	RenderPage(view PageView) (string, error)
}

// PageView is the state a full page render needs
type PageView struct {
	Title   string
	Menu    domain.MenuState
	Feeds   domain.FeedCollection
	Content domain.Snapshot
}
