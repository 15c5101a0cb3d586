package linkexport_test

import (
	"testing"
	"time"

	"github.com/fwojciec/linkexport"
	"github.com/stretchr/testify/assert"
)

func TestResultSet_Text(t *testing.T) {
	t.Parallel()

	urls := linkexport.ResultSet{"https://a.com/", "https://b.com/"}

	assert.Equal(t, "https://a.com/\nhttps://b.com/", urls.Text())
	assert.Empty(t, linkexport.ResultSet{}.Text())
}

func TestExportFilename(t *testing.T) {
	t.Parallel()

	t.Run("replaces colons and dots in the ISO timestamp", func(t *testing.T) {
		t.Parallel()

		ts := time.Date(2025, 1, 15, 10, 4, 5, 123_000_000, time.UTC)

		assert.Equal(t, "urls-2025-01-15T10-04-05-123Z.txt", linkexport.ExportFilename(ts))
	})

	t.Run("converts to UTC", func(t *testing.T) {
		t.Parallel()

		ts := time.Date(2025, 1, 15, 12, 0, 0, 0, time.FixedZone("CET", 2*60*60))

		assert.Equal(t, "urls-2025-01-15T10-00-00-000Z.txt", linkexport.ExportFilename(ts))
	})
}

func TestPageHandle(t *testing.T) {
	t.Parallel()

	t.Run("validates a handle with a URL", func(t *testing.T) {
		t.Parallel()

		p := &linkexport.PageHandle{ID: "1", URL: "https://Site.com:8443/page"}

		assert.NoError(t, p.Validate())
		assert.Equal(t, "site.com", p.Hostname())
	})

	t.Run("reports ENOPAGE without a URL", func(t *testing.T) {
		t.Parallel()

		var nilPage *linkexport.PageHandle
		assert.Equal(t, linkexport.ENOPAGE, linkexport.ErrorCode(nilPage.Validate()))
		assert.Equal(t, linkexport.ENOPAGE, linkexport.ErrorCode((&linkexport.PageHandle{ID: "1"}).Validate()))
	})
}

func TestDefaultSettings(t *testing.T) {
	t.Parallel()

	s := linkexport.DefaultSettings()

	assert.True(t, s.ExcludeGoogle)
	assert.Empty(t, s.CustomDomains)
}
