package domain

// Snapshot is the rendered markup of the page's content region.
// Two snapshots are compared by value.
type Snapshot struct {
	// FeedID is the feed the markup was rendered from, -1 when nothing was loaded
	FeedID int

	// HTML is the inner markup of the .feed container
	HTML string
}

// EmptySnapshot is the content region before the first load completes
var EmptySnapshot = Snapshot{FeedID: -1}

// Equal reports whether two snapshots carry the same markup
func (s Snapshot) Equal(other Snapshot) bool {
	return s.HTML == other.HTML
}

// IsEmpty reports whether the snapshot has no markup
func (s Snapshot) IsEmpty() bool {
	return s.HTML == ""
}
