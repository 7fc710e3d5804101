// ABOUTME: FeedCollection is the ordered list of feeds the reader page offers
// ABOUTME: Feeds are addressed by their integer position (feed ID)

package domain

import (
	"fmt"
	"strconv"

	"feedreader/core/errors"
)

// FeedCollection is an ordered sequence of feed descriptors.
// It is read-only once handed to a page.
type FeedCollection []FeedDescriptor

// NewFeedCollection copies descriptors into a collection and validates it
func NewFeedCollection(descriptors ...FeedDescriptor) (FeedCollection, error) {
	c := make(FeedCollection, len(descriptors))
	copy(c, descriptors)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Len returns the number of feeds
func (c FeedCollection) Len() int {
	return len(c)
}

// At returns the descriptor for the given feed ID
func (c FeedCollection) At(id int) (FeedDescriptor, error) {
	if id < 0 || id >= len(c) {
		return FeedDescriptor{}, &errors.NotFoundError{
			Resource: "feed",
			ID:       strconv.Itoa(id),
		}
	}
	return c[id], nil
}

// Validate checks the collection is non-empty and every descriptor is valid
func (c FeedCollection) Validate() error {
	if len(c) == 0 {
		return &errors.ValidationError{
			Field:   "feeds",
			Message: "collection cannot be empty",
		}
	}

	for i, d := range c {
		if err := d.Validate(); err != nil {
			return &errors.ValidationError{
				Field:   fmt.Sprintf("feeds[%d]", i),
				Message: err.Error(),
			}
		}
	}

	return nil
}

// DefaultFeeds returns the collection the reader ships with
func DefaultFeeds() FeedCollection {
	return FeedCollection{
		{Name: "Udacity Blog", URL: "http://blog.udacity.com/feed"},
		{Name: "CSS Tricks", URL: "http://feeds.feedburner.com/CssTricks"},
		{Name: "HTML5 Rocks", URL: "http://feeds.feedburner.com/html5rocks"},
		{Name: "Linear Digressions", URL: "http://feeds.feedburner.com/udacity-linear-digressions"},
	}
}
