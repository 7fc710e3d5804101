package suite

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"feedreader/core/completion"
	"feedreader/core/domain"
	"feedreader/core/feed"
	"feedreader/core/interfaces"
	"feedreader/core/reader"
	"feedreader/core/render"
	stdhttp "feedreader/infrastructure/http/standard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rssTemplate = `<?xml version="1.0"?>
<rss version="2.0"><channel><title>%[1]s</title><link>http://%[1]s.example.com</link>
<item><title>%[1]s post</title><link>http://%[1]s.example.com/post</link><description>About %[1]s</description></item>
</channel></rss>`

func fixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path[1:]
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprintf(w, rssTemplate, name)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newPage(t *testing.T, feeds domain.FeedCollection) *reader.Page {
	t.Helper()
	service := feed.NewFeedService(interfaces.Dependencies{
		HTTPClient: stdhttp.NewStandardHTTPClient(5 * time.Second),
	})
	page, err := reader.NewPage(reader.Options{
		Feeds:    feeds,
		Parser:   service,
		Renderer: render.NewHTMLRenderer(),
	})
	require.NoError(t, err)
	return page
}

func TestFeedReaderSuites_PassAgainstRealPage(t *testing.T) {
	srv := fixtureServer(t)
	page := newPage(t, domain.FeedCollection{
		{Name: "A", URL: srv.URL + "/alpha"},
		{Name: "B", URL: srv.URL + "/beta"},
	})

	report := NewRunner(5*time.Second, nil).Run(context.Background(), FeedReaderSuites(page)...)

	assert.True(t, report.OK(), report.Summary())
	assert.Equal(t, 7, report.Passed)
	names := make([]string, 0, len(report.Results))
	for _, r := range report.Results {
		names = append(names, r.FullName())
	}
	assert.Equal(t, []string{
		"RSS Feeds are defined",
		"RSS Feeds all feeds have a URL defined",
		"RSS Feeds all feeds have a name defined",
		"The menu is by default hidden",
		"The menu toggles visibility when clicked",
		"Initial Entries in the feed contains at least a single .entry element",
		"Initial Entries New Feed Selection results in different feed content",
	}, names)
}

func TestFeedCollectionSuite_Failures(t *testing.T) {
	tests := []struct {
		name   string
		feeds  domain.FeedCollection
		failed []string
	}{
		{
			name:   "undefined collection fails every case",
			feeds:  nil,
			failed: []string{"are defined", "all feeds have a URL defined", "all feeds have a name defined"},
		},
		{
			name:   "empty collection",
			feeds:  domain.FeedCollection{},
			failed: []string{"are defined"},
		},
		{
			name:   "missing url",
			feeds:  domain.FeedCollection{{Name: "A"}},
			failed: []string{"all feeds have a URL defined"},
		},
		{
			name:   "missing name",
			feeds:  domain.FeedCollection{{URL: "http://a"}},
			failed: []string{"all feeds have a name defined"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &fakeApp{feeds: tt.feeds}

			report := NewRunner(time.Second, nil).Run(context.Background(), FeedCollectionSuite(app))

			var failed []string
			for _, r := range report.Results {
				if !r.Passed {
					failed = append(failed, r.Case)
				}
			}
			assert.Equal(t, tt.failed, failed)
		})
	}
}

func TestMenuSuite_DetectsBrokenToggle(t *testing.T) {
	app := &fakeApp{feeds: domain.FeedCollection{{Name: "A", URL: "http://a"}}, stuckMenu: true}

	report := NewRunner(time.Second, nil).Run(context.Background(), MenuSuite(app))

	require.Len(t, report.Results, 2)
	assert.True(t, report.Results[0].Passed)
	assert.False(t, report.Results[1].Passed)
}

func TestInitialEntriesSuite_DetectsProblems(t *testing.T) {
	tests := []struct {
		name      string
		app       *fakeApp
		wantFails int
	}{
		{"healthy", &fakeApp{contents: []string{entry("a"), entry("b")}}, 0},
		{"no entries", &fakeApp{contents: []string{"<p>nothing</p>", entry("b")}}, 1},
		{"identical feeds", &fakeApp{contents: []string{entry("a"), entry("a")}}, 1},
		{"callback fires twice", &fakeApp{contents: []string{entry("a"), entry("b")}, doubleCallback: true}, 2},
		{"callback repeats after the case ends", &fakeApp{contents: []string{entry("a"), entry("b")}, lateRepeat: 20 * time.Millisecond}, 2},
		{"load fails", &fakeApp{contents: []string{entry("a"), entry("b")}, loadErr: fmt.Errorf("offline")}, 2},
		{"callback never fires", &fakeApp{contents: []string{entry("a"), entry("b")}, neverComplete: true}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := NewRunner(50*time.Millisecond, nil).Run(context.Background(), InitialEntriesSuite(tt.app))

			assert.Equal(t, tt.wantFails, report.Failed, report.Summary())
		})
	}
}

func entry(title string) string {
	return `<a class="entry-link" href="#"><article class="entry"><h2>` + title + `</h2></article></a>`
}

// fakeApp is a scripted Application
type fakeApp struct {
	feeds          domain.FeedCollection
	contents       []string
	stuckMenu      bool
	doubleCallback bool
	neverComplete  bool
	lateRepeat     time.Duration
	loadErr        error

	mu      sync.Mutex
	menu    domain.MenuState
	content domain.Snapshot
}

func (f *fakeApp) Feeds() domain.FeedCollection { return f.feeds }

func (f *fakeApp) MenuState() domain.MenuState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.menu
}

func (f *fakeApp) ClickMenuIcon() domain.MenuState {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.stuckMenu {
		f.menu = f.menu.Toggle()
	}
	return f.menu
}

func (f *fakeApp) LoadFeed(ctx context.Context, id int, onComplete func()) *completion.Signal {
	sig := completion.New()
	if f.neverComplete {
		return sig
	}
	finish := func() {
		if f.loadErr == nil {
			f.mu.Lock()
			f.content = domain.Snapshot{FeedID: id, HTML: f.contents[id]}
			f.mu.Unlock()
		}
		_ = sig.Fire(f.loadErr)
		onComplete()
		if f.lateRepeat > 0 {
			time.AfterFunc(f.lateRepeat, onComplete)
		}
	}
	if f.doubleCallback {
		// Synchronous so both calls land before the caller starts waiting.
		finish()
		onComplete()
		return sig
	}
	go finish()
	return sig
}

func (f *fakeApp) Content() domain.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.content
}

func (f *fakeApp) Document() (*render.Document, error) {
	class := ""
	if f.MenuState().IsHidden() {
		class = domain.HiddenClass
	}
	return render.Parse(`<html><body class="` + class + `"></body></html>`)
}
