// Package clipboard copies text to the system clipboard with atotto/clipboard
// and falls back to an OSC 52 terminal escape sequence when no clipboard
// utility is available.
package clipboard

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/fwojciec/linkexport"
)

// Ensure Clipboard implements linkexport.Clipboard at compile time.
var _ linkexport.Clipboard = (*Clipboard)(nil)

// WriteFunc writes text to a clipboard.
type WriteFunc func(text string) error

// Clipboard writes through a primary clipboard and falls back to a
// secondary one when the primary fails.
type Clipboard struct {
	primary  WriteFunc
	fallback WriteFunc
}

// Option configures a Clipboard.
type Option func(*Clipboard)

// WithPrimary replaces the system clipboard writer.
func WithPrimary(fn WriteFunc) Option {
	return func(c *Clipboard) {
		c.primary = fn
	}
}

// WithFallback sets the writer used when the primary fails.
func WithFallback(fn WriteFunc) Option {
	return func(c *Clipboard) {
		c.fallback = fn
	}
}

// NewClipboard creates a Clipboard writing to the system clipboard, with an
// OSC 52 fallback written to term. A nil term disables the fallback.
func NewClipboard(term io.Writer, opts ...Option) *Clipboard {
	c := &Clipboard{primary: systemWrite}
	if term != nil {
		c.fallback = OSC52(term)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WriteText copies text to the clipboard.
// Returns the joined errors of both writers when neither succeeds.
func (c *Clipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := c.primary(text)
	if err == nil {
		return nil
	}
	if c.fallback == nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}

	if fbErr := c.fallback(text); fbErr != nil {
		return fmt.Errorf("writing clipboard: %w", errors.Join(err, fbErr))
	}
	return nil
}

// systemWrite writes through the platform clipboard utility.
func systemWrite(text string) error {
	if clipboard.Unsupported {
		return errors.New("no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}

// OSC52 returns a WriteFunc that asks the terminal behind w to set the
// clipboard with an OSC 52 escape sequence.
func OSC52(w io.Writer) WriteFunc {
	return func(text string) error {
		seq := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\a"
		_, err := io.WriteString(w, seq)
		return err
	}
}
