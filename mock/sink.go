package mock

import (
	"context"

	"github.com/fwojciec/linkexport"
)

// Compile-time interface verification.
var (
	_ linkexport.Clipboard  = (*Clipboard)(nil)
	_ linkexport.Downloader = (*Downloader)(nil)
)

// Clipboard is a mock implementation of linkexport.Clipboard.
type Clipboard struct {
	WriteTextFn func(ctx context.Context, text string) error
}

func (c *Clipboard) WriteText(ctx context.Context, text string) error {
	return c.WriteTextFn(ctx, text)
}

// Downloader is a mock implementation of linkexport.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, d *linkexport.Download) (string, error)
}

func (d *Downloader) Download(ctx context.Context, dl *linkexport.Download) (string, error) {
	return d.DownloadFn(ctx, dl)
}
