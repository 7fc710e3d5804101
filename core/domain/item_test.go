package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedItem_IsValid(t *testing.T) {
	tests := []struct {
		name string
		item FeedItem
		want bool
	}{
		{"title and link", FeedItem{Title: "Post", Link: "https://example.com/post"}, true},
		{"snippet does not stand in for a title", FeedItem{Link: "https://example.com/post", Snippet: "text"}, false},
		{"no link", FeedItem{Title: "Post", Content: "<p>body</p>"}, false},
		{"empty", FeedItem{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.IsValid())
		})
	}
}
