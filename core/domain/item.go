// ABOUTME: FeedItem is one entry of a parsed feed
// ABOUTME: Only items with a title and a link can be rendered as an entry link

package domain

import "time"

// FeedItem is a single entry in a feed
type FeedItem struct {
	ID        string
	Title     string
	Link      string
	Published time.Time
	Author    string

	Snippet string // Plain text summary shown under the title
	Content string // HTML content as published
}

// IsValid reports whether the item can be shown in the content region
func (fi *FeedItem) IsValid() bool {
	return fi.Title != "" && fi.Link != ""
}
