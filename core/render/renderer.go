// ABOUTME: HTML renderer for the reader page and its feed entries
// ABOUTME: Entry bodies are sanitised with bluemonday before they reach the page

package render

import (
	"bytes"
	"html/template"

	"feedreader/core/domain"
	"feedreader/core/interfaces"
	"github.com/microcosm-cc/bluemonday"
)

// Class names the page markup uses
const (
	FeedClass        = "feed"
	EntryClass       = "entry"
	EntryLinkClass   = "entry-link"
	MenuIconClass    = "menu-icon-link"
	HeaderTitleClass = "header-title"
	FeedListClass    = "feed-list"
)

var entriesTemplate = template.Must(template.New("entries").Parse(
	`{{range .}}<a class="` + EntryLinkClass + `" href="{{.Link}}"><article class="` + EntryClass + `"><h2>{{.Title}}</h2>` +
		`<p>{{.Snippet}}</p>{{if .Body}}<div class="entry-body">{{.Body}}</div>{{end}}</article></a>{{end}}`))

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Feed Reader</title></head>
<body class="{{if .Hidden}}` + domain.HiddenClass + `{{end}}">
<div class="header"><a class="` + MenuIconClass + `" href="#"><i class="icon-list"></i></a><h1 class="` + HeaderTitleClass + `">{{.Title}}</h1></div>
<div class="slide-menu"><ul class="` + FeedListClass + `">{{range $i, $f := .Feeds}}<li><a href="#" data-id="{{$i}}">{{$f.Name}}</a></li>{{end}}</ul></div>
<div class="` + FeedClass + `">{{.Content}}</div>
</body>
</html>
`))

type entryView struct {
	Link    string
	Title   string
	Snippet string
	Body    template.HTML
}

type pageView struct {
	Hidden  bool
	Title   string
	Feeds   domain.FeedCollection
	Content template.HTML
}

// HTMLRenderer renders feeds into the reader page markup
type HTMLRenderer struct {
	policy      *bluemonday.Policy
	fullContent bool
}

// Option configures an HTMLRenderer
type Option func(*HTMLRenderer)

// WithFullContent renders each entry's sanitised body under its snippet
func WithFullContent() Option {
	return func(r *HTMLRenderer) {
		r.fullContent = true
	}
}

// NewHTMLRenderer creates a renderer
func NewHTMLRenderer(opts ...Option) *HTMLRenderer {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	r := &HTMLRenderer{policy: p}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ interfaces.ContentRenderer = (*HTMLRenderer)(nil)

// RenderEntries renders the inner markup of the .feed container
func (r *HTMLRenderer) RenderEntries(feed *domain.Feed) (string, error) {
	if feed == nil {
		return "", nil
	}

	views := make([]entryView, 0, len(feed.Items))
	for _, item := range feed.Items {
		v := entryView{
			Link:    item.Link,
			Title:   item.Title,
			Snippet: item.Snippet,
		}
		if r.fullContent && item.Content != "" {
			// Sanitised by the policy, so safe to embed unescaped.
			v.Body = template.HTML(r.policy.Sanitize(item.Content))
		}
		views = append(views, v)
	}

	var buf bytes.Buffer
	if err := entriesTemplate.Execute(&buf, views); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderPage renders the whole reader page
func (r *HTMLRenderer) RenderPage(view interfaces.PageView) (string, error) {
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, pageView{
		Hidden: view.Menu.IsHidden(),
		Title:  view.Title,
		Feeds:  view.Feeds,
		// Content was produced by RenderEntries.
		Content: template.HTML(view.Content.HTML),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
