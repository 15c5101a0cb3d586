package linkexport

import (
	"context"
	"net/url"
)

// PageHandle identifies the page links are collected from.
type PageHandle struct {
	// ID is the bridge-specific identifier (browser target ID, file path).
	ID string

	// URL is the page's address. Its hostname drives ExcludeInternal.
	URL string
}

// Validate returns ENOPAGE if the handle does not carry a usable page URL.
func (p *PageHandle) Validate() error {
	if p == nil || p.URL == "" {
		return Errorf(ENOPAGE, "No active tab found")
	}
	if _, err := url.Parse(p.URL); err != nil {
		return Errorf(ENOPAGE, "active tab has an invalid URL: %v", err)
	}
	return nil
}

// Hostname returns the canonical hostname of the page URL,
// or an empty string if the URL cannot be parsed.
func (p *PageHandle) Hostname() string {
	u, err := url.Parse(p.URL)
	if err != nil {
		return ""
	}
	return CanonicalHost(u.Hostname())
}

// LinkSnapshot is the raw link list of a document at one point in time.
type LinkSnapshot struct {
	// BaseURI is the document's base URL used to resolve relative hrefs.
	BaseURI string

	// Hrefs holds the href of every link in document order.
	Hrefs []string
}

// PageResolver finds the page the user is looking at.
type PageResolver interface {
	// ActivePage returns the current foreground page.
	// Returns ENOPAGE if there is none.
	ActivePage(ctx context.Context) (*PageHandle, error)
}

// LinkSource reaches into a page's document and collects its links.
// Implementations may drive a live browser, parse an HTML fixture, or be
// a test double.
type LinkSource interface {
	// Links returns the page's link snapshot. A nil snapshot with a nil
	// error means the page produced no result payload, which callers treat
	// differently from a snapshot without links.
	Links(ctx context.Context, page *PageHandle) (*LinkSnapshot, error)
}
