// Package core contains the feed reader's page model and the checks that
// exercise it. It has no HTTP framework or storage dependencies; those are
// injected through the interfaces package.
//
// Sub-packages:
//
//   - domain: feed descriptors and collections, parsed feeds, menu state, content snapshots
//   - feed: fetches and parses RSS/Atom feeds with caching
//   - render: renders entries and pages, and parses markup for DOM queries
//   - reader: the page itself (menu toggle, asynchronous feed loads)
//   - completion: exactly-once completion signals for asynchronous loads
//   - suite: a small suite runner and the feed reader's behavioural checks
//   - errors: typed errors shared by every layer
//   - interfaces: contracts for cache, HTTP, logging, parsing and rendering
//
// # Usage Example
//
//	service := feed.NewFeedService(interfaces.Dependencies{
//	    Cache:      myCache,
//	    HTTPClient: myHTTPClient,
//	    Logger:     myLogger,
//	})
//
//	page, err := reader.NewPage(reader.Options{
//	    Feeds:    domain.DefaultFeeds(),
//	    Parser:   service,
//	    Renderer: render.NewHTMLRenderer(),
//	})
//
//	report := suite.Check(ctx, page, suite.DefaultTimeout, myLogger)
//	fmt.Print(report.Summary())
package core
