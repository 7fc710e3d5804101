// ABOUTME: Page models the feed reader page: its feed list, menu and content region
// ABOUTME: Feeds load asynchronously and report completion exactly once

package reader

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"feedreader/core/completion"
	"feedreader/core/domain"
	coreerrors "feedreader/core/errors"
	"feedreader/core/interfaces"
	"feedreader/core/render"
)

// Options holds everything a page needs
type Options struct {
	// Feeds is the collection shown in the feed list
	Feeds domain.FeedCollection

	// Parser fetches and parses feed documents
	Parser interfaces.FeedParser

	// Renderer turns parsed feeds into markup
	Renderer interfaces.ContentRenderer

	// Logger is optional
	Logger interfaces.Logger
}

// Page is one reader page. It is safe for concurrent use; the content
// region holds whichever load completed last.
type Page struct {
	feeds    domain.FeedCollection
	parser   interfaces.FeedParser
	renderer interfaces.ContentRenderer
	logger   interfaces.Logger

	mu      sync.RWMutex
	menu    domain.MenuState
	title   string
	content domain.Snapshot

	loads sync.WaitGroup
}

// NewPage creates a page with the menu hidden and nothing loaded
func NewPage(opts Options) (*Page, error) {
	if opts.Parser == nil {
		return nil, errors.New("feed parser is required")
	}
	if opts.Renderer == nil {
		return nil, errors.New("content renderer is required")
	}

	p := &Page{
		feeds:    opts.Feeds,
		parser:   opts.Parser,
		renderer: opts.Renderer,
		logger:   opts.Logger,
		menu:     domain.MenuHidden,
		content:  domain.EmptySnapshot,
	}

	if err := opts.Feeds.Validate(); err != nil {
		p.warn("Page created with an invalid feed collection", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return p, nil
}

// Feeds returns the feed collection
func (p *Page) Feeds() domain.FeedCollection {
	return p.feeds
}

// MenuState returns the current menu visibility
func (p *Page) MenuState() domain.MenuState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.menu
}

// ClickMenuIcon flips the menu visibility and returns the new state
func (p *Page) ClickMenuIcon() domain.MenuState {
	p.mu.Lock()
	p.menu = p.menu.Toggle()
	state := p.menu
	p.mu.Unlock()

	p.debug("Menu toggled", map[string]interface{}{"state": state.String()})
	return state
}

// Title returns the header title, the name of the last loaded feed
func (p *Page) Title() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.title
}

// Content returns the current content region
func (p *Page) Content() domain.Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.content
}

// View returns the header title and content region as one consistent pair
func (p *Page) View() (string, domain.Snapshot) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.title, p.content
}

// Load starts loading feed id and returns its completion signal
func (p *Page) Load(ctx context.Context, id int) *completion.Signal {
	return p.LoadFeed(ctx, id, nil)
}

// LoadFeed starts loading feed id in the background. When the load ends,
// successfully or not, the content region is settled, the returned signal
// fires with the load's error, and then onComplete (if any) is called once.
// A failed load leaves the previous content in place.
func (p *Page) LoadFeed(ctx context.Context, id int, onComplete func()) *completion.Signal {
	sig := completion.New()

	p.loads.Add(1)
	go func() {
		defer p.loads.Done()

		err := p.load(ctx, id)
		if err != nil {
			p.logError("Feed load failed", map[string]interface{}{
				"feed_id": id,
				"error":   err.Error(),
			})
		}

		_ = sig.Fire(err)
		if onComplete != nil {
			onComplete()
		}
	}()

	return sig
}

func (p *Page) load(ctx context.Context, id int) error {
	desc, err := p.feeds.At(id)
	if err != nil {
		return err
	}

	feed, err := p.parser.ParseSingleFeed(ctx, desc.URL)
	if err != nil {
		return err
	}
	if feed == nil {
		return &coreerrors.NotFoundError{Resource: "feed", ID: strconv.Itoa(id)}
	}

	markup, err := p.renderer.RenderEntries(feed)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.title = desc.Name
	p.content = domain.Snapshot{FeedID: id, HTML: markup}
	p.mu.Unlock()

	p.info("Feed loaded", map[string]interface{}{
		"feed_id": id,
		"name":    desc.Name,
		"entries": len(feed.Items),
	})
	return nil
}

// SelectFeed is a click on a feed-list link: it hides the menu and loads the feed
func (p *Page) SelectFeed(ctx context.Context, id int) *completion.Signal {
	p.mu.Lock()
	p.menu = domain.MenuHidden
	p.mu.Unlock()

	return p.Load(ctx, id)
}

// HTML renders the whole page in its current state
func (p *Page) HTML() (string, error) {
	p.mu.RLock()
	view := interfaces.PageView{
		Title:   p.title,
		Menu:    p.menu,
		Feeds:   p.feeds,
		Content: p.content,
	}
	p.mu.RUnlock()

	return p.renderer.RenderPage(view)
}

// Document renders the page and parses it for DOM queries
func (p *Page) Document() (*render.Document, error) {
	markup, err := p.HTML()
	if err != nil {
		return nil, err
	}
	return render.Parse(markup)
}

// Wait blocks until every load started so far has finished
func (p *Page) Wait() {
	p.loads.Wait()
}

func (p *Page) debug(msg string, fields map[string]interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, fields)
	}
}

func (p *Page) info(msg string, fields map[string]interface{}) {
	if p.logger != nil {
		p.logger.Info(msg, fields)
	}
}

func (p *Page) warn(msg string, fields map[string]interface{}) {
	if p.logger != nil {
		p.logger.Warn(msg, fields)
	}
}

func (p *Page) logError(msg string, fields map[string]interface{}) {
	if p.logger != nil {
		p.logger.Error(msg, fields)
	}
}
