package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/linkexport"
)

// Compile-time interface verification.
var (
	_ linkexport.Clipboard  = (*LoggingClipboard)(nil)
	_ linkexport.Downloader = (*LoggingDownloader)(nil)
)

// LoggingClipboard wraps a Clipboard with debug logging.
type LoggingClipboard struct {
	next   linkexport.Clipboard
	logger *slog.Logger
}

// NewLoggingClipboard creates a new LoggingClipboard.
func NewLoggingClipboard(next linkexport.Clipboard, logger *slog.Logger) *LoggingClipboard {
	return &LoggingClipboard{next: next, logger: logger}
}

func (c *LoggingClipboard) WriteText(ctx context.Context, text string) (err error) {
	defer func(begin time.Time) {
		c.logger.Info("copy to clipboard",
			"bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.WriteText(ctx, text)
}

// LoggingDownloader wraps a Downloader with debug logging.
type LoggingDownloader struct {
	next   linkexport.Downloader
	logger *slog.Logger
}

// NewLoggingDownloader creates a new LoggingDownloader.
func NewLoggingDownloader(next linkexport.Downloader, logger *slog.Logger) *LoggingDownloader {
	return &LoggingDownloader{next: next, logger: logger}
}

func (d *LoggingDownloader) Download(ctx context.Context, dl *linkexport.Download) (path string, err error) {
	defer func(begin time.Time) {
		var filename string
		var size int
		if dl != nil {
			filename, size = dl.Filename, len(dl.Content)
		}
		d.logger.Info("download",
			"filename", filename,
			"bytes", size,
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Download(ctx, dl)
}
