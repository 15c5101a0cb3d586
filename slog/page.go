package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/linkexport"
)

// Compile-time interface verification.
var (
	_ linkexport.PageResolver = (*LoggingPageResolver)(nil)
	_ linkexport.LinkSource   = (*LoggingLinkSource)(nil)
)

// LoggingPageResolver wraps a PageResolver with debug logging.
type LoggingPageResolver struct {
	next   linkexport.PageResolver
	logger *slog.Logger
}

// NewLoggingPageResolver creates a new LoggingPageResolver.
func NewLoggingPageResolver(next linkexport.PageResolver, logger *slog.Logger) *LoggingPageResolver {
	return &LoggingPageResolver{next: next, logger: logger}
}

// ActivePage delegates to the wrapped resolver and logs the page found.
func (r *LoggingPageResolver) ActivePage(ctx context.Context) (page *linkexport.PageHandle, err error) {
	defer func(begin time.Time) {
		var id, url string
		if page != nil {
			id, url = page.ID, page.URL
		}
		r.logger.Info("active page",
			"id", id,
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.ActivePage(ctx)
}

// LoggingLinkSource wraps a LinkSource with debug logging.
type LoggingLinkSource struct {
	next   linkexport.LinkSource
	logger *slog.Logger
}

// NewLoggingLinkSource creates a new LoggingLinkSource.
func NewLoggingLinkSource(next linkexport.LinkSource, logger *slog.Logger) *LoggingLinkSource {
	return &LoggingLinkSource{next: next, logger: logger}
}

// Links delegates to the wrapped source and logs how many links came back.
// A missing payload is logged as payload=false.
func (s *LoggingLinkSource) Links(ctx context.Context, page *linkexport.PageHandle) (snap *linkexport.LinkSnapshot, err error) {
	defer func(begin time.Time) {
		var url, base string
		if page != nil {
			url = page.URL
		}
		count := 0
		if snap != nil {
			base = snap.BaseURI
			count = len(snap.Hrefs)
		}
		s.logger.Info("collect links",
			"url", url,
			"base", base,
			"payload", snap != nil,
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Links(ctx, page)
}
