// ABOUTME: Reader handlers expose the feed reader page over HTTP
// ABOUTME: Menu clicks, feed loads and check runs map onto page operations

package handlers

import (
	"context"
	"net/http"
	"time"

	"feedreader/core/completion"
	"feedreader/core/domain"
	"feedreader/core/render"
	"feedreader/core/suite"
	"github.com/danielgtaylor/huma/v2"
)

// Page is the reader page surface the handlers drive
type Page interface {
	Feeds() domain.FeedCollection
	MenuState() domain.MenuState
	ClickMenuIcon() domain.MenuState
	View() (string, domain.Snapshot)
	Load(ctx context.Context, id int) *completion.Signal
}

// CheckFunc runs the behavioural checks against a fresh page
type CheckFunc func(ctx context.Context) (suite.Report, error)

// ReaderHandler handles reader page requests
type ReaderHandler struct {
	page        Page
	checks      CheckFunc
	loadTimeout time.Duration
}

// NewReaderHandler creates a reader handler. A nil checks func leaves
// POST /checks unregistered.
func NewReaderHandler(page Page, checks CheckFunc, loadTimeout time.Duration) *ReaderHandler {
	if loadTimeout <= 0 {
		loadTimeout = suite.DefaultTimeout
	}
	return &ReaderHandler{
		page:        page,
		checks:      checks,
		loadTimeout: loadTimeout,
	}
}

// RegisterRoutes registers all reader routes
func (h *ReaderHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listFeeds",
		Method:      http.MethodGet,
		Path:        "/feeds",
		Summary:     "List the feed collection",
		Tags:        []string{"Reader"},
	}, h.ListFeeds)

	huma.Register(api, huma.Operation{
		OperationID: "getMenu",
		Method:      http.MethodGet,
		Path:        "/menu",
		Summary:     "Get the menu visibility",
		Tags:        []string{"Reader"},
	}, h.GetMenu)

	huma.Register(api, huma.Operation{
		OperationID: "toggleMenu",
		Method:      http.MethodPost,
		Path:        "/menu/toggle",
		Summary:     "Click the menu icon",
		Tags:        []string{"Reader"},
	}, h.ToggleMenu)

	huma.Register(api, huma.Operation{
		OperationID: "loadFeed",
		Method:      http.MethodPost,
		Path:        "/feeds/{id}/load",
		Summary:     "Load a feed into the content region",
		Description: "Starts loading the feed and waits for its completion, bounded by the load timeout",
		Tags:        []string{"Reader"},
	}, h.LoadFeed)

	huma.Register(api, huma.Operation{
		OperationID: "getContent",
		Method:      http.MethodGet,
		Path:        "/content",
		Summary:     "Get the header title and content region",
		Tags:        []string{"Reader"},
	}, h.GetContent)

	if h.checks != nil {
		huma.Register(api, huma.Operation{
			OperationID: "runChecks",
			Method:      http.MethodPost,
			Path:        "/checks",
			Summary:     "Run the behavioural checks",
			Description: "Runs every feed reader check against a fresh page and returns the report",
			Tags:        []string{"Checks"},
		}, h.RunChecks)
	}
}

// FeedEntry is one feed in the list
type FeedEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ListFeedsOutput defines the output for the ListFeeds operation
type ListFeedsOutput struct {
	Body struct {
		Feeds []FeedEntry `json:"feeds"`
	}
}

// ListFeeds handles GET /feeds
func (h *ReaderHandler) ListFeeds(ctx context.Context, _ *struct{}) (*ListFeedsOutput, error) {
	out := &ListFeedsOutput{}
	out.Body.Feeds = make([]FeedEntry, 0, h.page.Feeds().Len())
	for i, f := range h.page.Feeds() {
		out.Body.Feeds = append(out.Body.Feeds, FeedEntry{ID: i, Name: f.Name, URL: f.URL})
	}
	return out, nil
}

// MenuOutput reports the menu state
type MenuOutput struct {
	Body struct {
		State string `json:"state" enum:"hidden,visible"`
	}
}

func menuOutput(state domain.MenuState) *MenuOutput {
	out := &MenuOutput{}
	out.Body.State = state.String()
	return out
}

// GetMenu handles GET /menu
func (h *ReaderHandler) GetMenu(ctx context.Context, _ *struct{}) (*MenuOutput, error) {
	return menuOutput(h.page.MenuState()), nil
}

// ToggleMenu handles POST /menu/toggle
func (h *ReaderHandler) ToggleMenu(ctx context.Context, _ *struct{}) (*MenuOutput, error) {
	return menuOutput(h.page.ClickMenuIcon()), nil
}

// LoadFeedInput defines the input for the LoadFeed operation
type LoadFeedInput struct {
	ID int `path:"id" minimum:"0" doc:"Feed position in the collection"`
}

// ContentBody is the header title and content region
type ContentBody struct {
	FeedID  int    `json:"feed_id" doc:"-1 when nothing has loaded"`
	Title   string `json:"title"`
	Entries int    `json:"entries"`
	HTML    string `json:"html"`
}

// ContentOutput wraps ContentBody
type ContentOutput struct {
	Body ContentBody
}

// LoadFeed handles POST /feeds/{id}/load
func (h *ReaderHandler) LoadFeed(ctx context.Context, input *LoadFeedInput) (*ContentOutput, error) {
	// The load outlives a disconnected client; only the wait is bounded.
	sig := h.page.Load(context.WithoutCancel(ctx), input.ID)

	waitCtx, cancel := context.WithTimeout(ctx, h.loadTimeout)
	defer cancel()

	if err := sig.Wait(waitCtx); err != nil {
		return nil, toHumaError(err)
	}

	return h.content()
}

// GetContent handles GET /content
func (h *ReaderHandler) GetContent(ctx context.Context, _ *struct{}) (*ContentOutput, error) {
	return h.content()
}

func (h *ReaderHandler) content() (*ContentOutput, error) {
	title, snap := h.page.View()
	out := &ContentOutput{Body: ContentBody{
		FeedID: snap.FeedID,
		Title:  title,
		HTML:   snap.HTML,
	}}

	if !snap.IsEmpty() {
		doc, err := render.ParseSnapshot(snap)
		if err != nil {
			return nil, toHumaError(err)
		}
		out.Body.Entries = doc.EntryCount()
	}

	return out, nil
}

// ChecksOutput defines the output for the RunChecks operation
type ChecksOutput struct {
	Body struct {
		OK     bool         `json:"ok"`
		Report suite.Report `json:"report"`
	}
}

// RunChecks handles POST /checks
func (h *ReaderHandler) RunChecks(ctx context.Context, _ *struct{}) (*ChecksOutput, error) {
	report, err := h.checks(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}

	out := &ChecksOutput{}
	out.Body.OK = report.OK()
	out.Body.Report = report
	return out, nil
}
