// Package goquery provides a linkexport.LinkSource over parsed HTML documents
// such as saved pages, fixtures or HTML piped on stdin.
package goquery

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/linkexport"
)

// DocumentID is the page handle ID of a Document.
const DocumentID = "document"

// linkSelector matches the elements browsers expose as document.links.
const linkSelector = "a[href], area[href]"

// Ensure Document implements linkexport.PageResolver and linkexport.LinkSource at compile time.
var (
	_ linkexport.PageResolver = (*Document)(nil)
	_ linkexport.LinkSource   = (*Document)(nil)
)

// Document serves a single parsed HTML document as the active page.
// Document is safe for concurrent use; it is immutable after creation.
type Document struct {
	doc *goquery.Document
	url string
}

// NewDocument parses html served from pageURL.
func NewDocument(html string, pageURL string) (*Document, error) {
	return ReadDocument(strings.NewReader(html), pageURL)
}

// ReadDocument parses HTML from r served from pageURL.
// If pageURL is empty, an absolute <base href> is used as the page URL.
func ReadDocument(r io.Reader, pageURL string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, linkexport.Errorf(linkexport.EINVALID, "failed to parse HTML: %v", err)
	}

	if pageURL == "" {
		if href, ok := baseHref(doc); ok {
			if u, err := url.Parse(href); err == nil && u.IsAbs() {
				pageURL = u.String()
			}
		}
	}

	return &Document{doc: doc, url: pageURL}, nil
}

// ActivePage returns the handle of the document.
// Returns ENOPAGE if the document has no page URL.
func (d *Document) ActivePage(ctx context.Context) (*linkexport.PageHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page := &linkexport.PageHandle{ID: DocumentID, URL: d.url}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return page, nil
}

// Links returns the href of every link in document order together with
// the document's base URI.
func (d *Document) Links(ctx context.Context, page *linkexport.PageHandle) (*linkexport.LinkSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if page == nil || page.ID != DocumentID {
		return nil, linkexport.Errorf(linkexport.ENOTFOUND, "page not found")
	}

	hrefs := []string{}
	d.doc.Find(linkSelector).Each(func(_ int, sel *goquery.Selection) {
		if href, exists := sel.Attr("href"); exists {
			hrefs = append(hrefs, href)
		}
	})

	return &linkexport.LinkSnapshot{
		BaseURI: BaseURI(d.doc, page.URL),
		Hrefs:   hrefs,
	}, nil
}

// BaseURI returns the base URL of doc served from pageURL: the first
// <base href> resolved against pageURL, or pageURL itself.
func BaseURI(doc *goquery.Document, pageURL string) string {
	href, ok := baseHref(doc)
	if !ok {
		return pageURL
	}

	page, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return pageURL
	}
	return page.ResolveReference(ref).String()
}

// baseHref returns the href of the first <base> element carrying one.
func baseHref(doc *goquery.Document) (string, bool) {
	return doc.Find("base[href]").First().Attr("href")
}
