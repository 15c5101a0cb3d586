package linkexport

import "context"

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	// WriteText copies text. Implementations try a fallback mechanism
	// before reporting failure.
	WriteText(ctx context.Context, text string) error
}

// Download is a file offered to the user for saving.
type Download struct {
	// Filename is the suggested file name.
	Filename string

	Content []byte

	// SaveAs asks the user to confirm or change the location.
	SaveAs bool
}

// Downloader saves files on the user's behalf.
type Downloader interface {
	// Download stores d and returns the path it was written to.
	Download(ctx context.Context, d *Download) (path string, err error)
}
