// ABOUTME: Behavioural checks for the feed reader page
// ABOUTME: Covers the feed collection, the menu toggle and asynchronous feed loading

package suite

import (
	"context"
	"sync/atomic"
	"time"

	"feedreader/core/completion"
	"feedreader/core/domain"
	"feedreader/core/interfaces"
	"feedreader/core/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Application is the page surface the checks drive
type Application interface {
	Feeds() domain.FeedCollection
	MenuState() domain.MenuState
	ClickMenuIcon() domain.MenuState
	LoadFeed(ctx context.Context, id int, onComplete func()) *completion.Signal
	Content() domain.Snapshot
	Document() (*render.Document, error)
}

// FeedReaderSuites returns every feed reader check in declaration order
func FeedReaderSuites(app Application) []Suite {
	return []Suite{
		FeedCollectionSuite(app),
		MenuSuite(app),
		InitialEntriesSuite(app),
	}
}

// FeedCollectionSuite checks the feed definitions
func FeedCollectionSuite(app Application) Suite {
	return Suite{
		Name: "RSS Feeds",
		BeforeAll: func(t *T) {
			require.NotNil(t, app.Feeds(), "feed collection must be defined")
		},
		Cases: []Case{
			{
				Name: "are defined",
				Run: func(t *T) {
					assert.NotZero(t, app.Feeds().Len(), "feed collection must not be empty")
				},
			},
			{
				Name: "all feeds have a URL defined",
				Run: func(t *T) {
					for i, feed := range app.Feeds() {
						assert.NotEmpty(t, feed.URL, "feed %d has no URL", i)
					}
				},
			},
			{
				Name: "all feeds have a name defined",
				Run: func(t *T) {
					for i, feed := range app.Feeds() {
						assert.NotEmpty(t, feed.Name, "feed %d has no name", i)
					}
				},
			},
		},
	}
}

// MenuSuite checks the slide menu
func MenuSuite(app Application) Suite {
	return Suite{
		Name: "The menu",
		Cases: []Case{
			{
				Name: "is by default hidden",
				Run: func(t *T) {
					assertMenu(t, app, domain.MenuHidden)
				},
			},
			{
				Name: "toggles visibility when clicked",
				Run: func(t *T) {
					app.ClickMenuIcon()
					assertMenu(t, app, domain.MenuVisible)
					app.ClickMenuIcon()
					assertMenu(t, app, domain.MenuHidden)
				},
			},
		},
	}
}

func assertMenu(t *T, app Application, want domain.MenuState) {
	assert.Equal(t, want, app.MenuState(), "menu state")

	doc, err := app.Document()
	require.NoError(t, err, "rendering the page")
	assert.Equal(t, want.IsHidden(), doc.HasClass("body", domain.HiddenClass),
		"body %s class while menu is %s", domain.HiddenClass, want)
}

// InitialEntriesSuite checks that loading feeds fills and replaces the content region
func InitialEntriesSuite(app Application) Suite {
	const feedID = 0

	return Suite{
		Name: "Initial Entries",
		BeforeEach: func(t *T) {
			loadAndWait(t, app, feedID)
		},
		Cases: []Case{
			{
				Name: "in the feed contains at least a single .entry element",
				Run: func(t *T) {
					doc, err := render.ParseSnapshot(app.Content())
					require.NoError(t, err)
					assert.Greater(t, doc.EntryCount(), 0, "entries after loading feed %d", feedID)
				},
			},
		},
		Suites: []Suite{newFeedSelectionSuite(app, feedID)},
	}
}

func newFeedSelectionSuite(app Application, feedID int) Suite {
	var initial domain.Snapshot

	return Suite{
		Name: "New Feed Selection",
		BeforeEach: func(t *T) {
			loadAndWait(t, app, feedID)
			initial = app.Content()
		},
		Cases: []Case{
			{
				Name: "results in different feed content",
				Run: func(t *T) {
					loadAndWait(t, app, feedID+1)
					second := app.Content()
					assert.False(t, initial.Equal(second), "feeds %d and %d rendered the same content", feedID, feedID+1)
				},
			},
		},
	}
}

// repeatWindow is how long after a load's first completion callback a
// second invocation is still caught
const repeatWindow = 100 * time.Millisecond

// loadAndWait loads a feed and suspends the case until its completion
// callback fires. The callback must fire exactly once: a repeat seen
// within repeatWindow of the first fails the case, even after the case
// body has returned.
func loadAndWait(t *T, app Application, id int) {
	var calls atomic.Int32
	var firstAt time.Time
	done := completion.New()
	repeated := make(chan struct{})

	sig := app.LoadFeed(t.Context(), id, func() {
		switch calls.Add(1) {
		case 1:
			firstAt = time.Now()
			_ = done.Fire(nil)
		case 2:
			close(repeated)
		}
	})

	t.Cleanup(func() {
		if !done.Fired() {
			return
		}
		select {
		case <-repeated:
		case <-time.After(time.Until(firstAt.Add(repeatWindow))):
		}
		if n := calls.Load(); n > 1 {
			t.Errorf("feed %d: completion callback fired %d times", id, n)
		}
	})

	require.NoError(t, done.Wait(t.Context()), "waiting for feed %d", id)
	require.NoError(t, sig.Err(), "loading feed %d", id)
}

// Check runs every feed reader check against app
func Check(ctx context.Context, app Application, timeout time.Duration, logger interfaces.Logger) Report {
	return NewRunner(timeout, logger).Run(ctx, FeedReaderSuites(app)...)
}
