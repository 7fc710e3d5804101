// ABOUTME: Feed domain model for parsed RSS/Atom feeds and the descriptors that name them
// ABOUTME: Provides validation logic to ensure feed data integrity

package domain

import (
	"errors"
	"net/url"
	"time"
)

// FeedDescriptor names one content feed the reader page can load
type FeedDescriptor struct {
	// Name is the human-readable label shown in the feed list
	Name string `json:"name" yaml:"name"`

	// URL is the address of the RSS/Atom document
	URL string `json:"url" yaml:"url"`
}

// Validate checks that the descriptor has a usable name and URL
func (d FeedDescriptor) Validate() error {
	if d.Name == "" {
		return errors.New("feed name cannot be empty")
	}

	if d.URL == "" {
		return errors.New("feed URL cannot be empty")
	}

	parsed, err := url.Parse(d.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errors.New("feed URL is not valid format")
	}

	return nil
}

// Feed represents a parsed RSS or Atom feed
type Feed struct {
	// Title is the title the feed document declares
	Title string

	// Description provides a brief description of the feed's content
	Description string

	// URL is the feed's source URL (the actual RSS/Atom URL)
	URL string

	// Link is the website URL associated with the feed
	Link string

	// Items contains the feed entries
	Items []FeedItem

	// LastUpdated indicates when the feed was last refreshed
	LastUpdated time.Time

	Language string // Feed language (e.g., "en-US")
	Image    string // Feed image URL
}
