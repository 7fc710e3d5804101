// ABOUTME: DOM query helpers over rendered reader markup
// ABOUTME: Wraps goquery so checks can select by class, count and compare content

package render

import (
	"strings"

	"feedreader/core/domain"
	"github.com/PuerkitoBio/goquery"
)

// Document is a parsed page or content snapshot
type Document struct {
	doc *goquery.Document
}

// Parse parses an HTML document or fragment
func Parse(markup string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc}, nil
}

// ParseSnapshot parses a content snapshot inside its .feed container,
// so selectors like ".feed .entry" work the same as on the full page.
func ParseSnapshot(s domain.Snapshot) (*Document, error) {
	return Parse(`<div class="` + FeedClass + `">` + s.HTML + `</div>`)
}

// Find returns the selection matching selector
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// Count returns the number of elements matching selector
func (d *Document) Count(selector string) int {
	return d.doc.Find(selector).Length()
}

// HasClass reports whether any element matching selector carries class
func (d *Document) HasClass(selector, class string) bool {
	return d.doc.Find(selector).HasClass(class)
}

// HTML returns the inner markup of the first element matching selector
func (d *Document) HTML(selector string) (string, error) {
	return d.doc.Find(selector).First().Html()
}

// Text returns the trimmed text of the first element matching selector
func (d *Document) Text(selector string) string {
	return strings.TrimSpace(d.doc.Find(selector).First().Text())
}

// EntryCount returns the number of .entry elements inside the .feed container
func (d *Document) EntryCount() int {
	return d.Count("." + FeedClass + " ." + EntryClass)
}
