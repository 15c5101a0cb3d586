package goquery_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/linkexport"
	"github.com/fwojciec/linkexport/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_ActivePage(t *testing.T) {
	t.Parallel()

	t.Run("returns a handle for the page URL", func(t *testing.T) {
		t.Parallel()

		d, err := goquery.NewDocument(`<html><body></body></html>`, "https://site.com/page")
		require.NoError(t, err)

		page, err := d.ActivePage(context.Background())

		require.NoError(t, err)
		assert.Equal(t, goquery.DocumentID, page.ID)
		assert.Equal(t, "https://site.com/page", page.URL)
		assert.Equal(t, "site.com", page.Hostname())
	})

	t.Run("falls back to an absolute base href", func(t *testing.T) {
		t.Parallel()

		d, err := goquery.NewDocument(`<html><head><base href="https://saved.com/dir/"></head></html>`, "")
		require.NoError(t, err)

		page, err := d.ActivePage(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "https://saved.com/dir/", page.URL)
	})

	t.Run("returns ENOPAGE without a page URL", func(t *testing.T) {
		t.Parallel()

		d, err := goquery.NewDocument(`<html><head><base href="/relative/"></head></html>`, "")
		require.NoError(t, err)

		_, err = d.ActivePage(context.Background())

		assert.Equal(t, linkexport.ENOPAGE, linkexport.ErrorCode(err))
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		t.Parallel()

		d, err := goquery.NewDocument(`<html></html>`, "https://site.com/")
		require.NoError(t, err)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = d.ActivePage(ctx)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDocument_Links(t *testing.T) {
	t.Parallel()

	t.Run("collects anchor and area hrefs in document order", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<nav><a href="/docs">Docs</a></nav>
<a name="anchor-without-href">Top</a>
<map><area href="https://map.com/region" alt="region"></map>
<main>
	<a href="https://other.com/x">Other</a>
	<a href="">Empty</a>
</main>
</body>
</html>`

		d, err := goquery.NewDocument(html, "https://site.com/page")
		require.NoError(t, err)
		page, err := d.ActivePage(context.Background())
		require.NoError(t, err)

		snap, err := d.Links(context.Background(), page)

		require.NoError(t, err)
		assert.Equal(t, "https://site.com/page", snap.BaseURI)
		assert.Equal(t, []string{"/docs", "https://map.com/region", "https://other.com/x", ""}, snap.Hrefs)
	})

	t.Run("resolves the base URI from the first base element", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><base href="/static/"><base href="/ignored/"></head>
<body><a href="page.html">Page</a></body></html>`

		d, err := goquery.NewDocument(html, "https://site.com/a/b")
		require.NoError(t, err)

		snap, err := d.Links(context.Background(), &linkexport.PageHandle{ID: goquery.DocumentID, URL: "https://site.com/a/b"})

		require.NoError(t, err)
		assert.Equal(t, "https://site.com/static/", snap.BaseURI)

		urls := linkexport.ExtractURLs(snap.Hrefs, snap.BaseURI, "site.com", linkexport.FilterConfig{})
		assert.Equal(t, linkexport.ResultSet{"https://site.com/static/page.html"}, urls)
	})

	t.Run("returns an empty snapshot for a document without links", func(t *testing.T) {
		t.Parallel()

		d, err := goquery.ReadDocument(strings.NewReader(`<p>no links</p>`), "https://site.com/")
		require.NoError(t, err)

		snap, err := d.Links(context.Background(), &linkexport.PageHandle{ID: goquery.DocumentID, URL: "https://site.com/"})

		require.NoError(t, err)
		require.NotNil(t, snap)
		assert.Empty(t, snap.Hrefs)
	})

	t.Run("returns ENOTFOUND for a foreign page handle", func(t *testing.T) {
		t.Parallel()

		d, err := goquery.NewDocument(`<a href="/x">x</a>`, "https://site.com/")
		require.NoError(t, err)

		_, err = d.Links(context.Background(), &linkexport.PageHandle{ID: "tab-7", URL: "https://site.com/"})

		assert.Equal(t, linkexport.ENOTFOUND, linkexport.ErrorCode(err))
	})
}
