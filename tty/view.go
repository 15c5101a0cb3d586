// Package tty renders an extraction session to a terminal.
package tty

import (
	"fmt"
	"io"
	"sync"

	"github.com/fwojciec/linkexport"
	"github.com/mattn/go-isatty"
)

// Ensure View implements linkexport.View at compile time.
var _ linkexport.View = (*View)(nil)

const (
	colorRed   = "\x1b[31m"
	colorGreen = "\x1b[32m"
	colorDim   = "\x1b[2m"
	colorReset = "\x1b[0m"

	loadingText = "Extracting URLs..."
)

// View writes result rows to out and everything else to errOut.
// The loading indicator and colors are only drawn when errOut is a terminal.
type View struct {
	mu       sync.Mutex
	out      io.Writer
	errOut   io.Writer
	term     bool
	loading  bool
	quiet    bool
	lastRows int
}

// Option configures a View.
type Option func(*View)

// WithTerminal overrides terminal detection for errOut.
func WithTerminal(term bool) Option {
	return func(v *View) {
		v.term = term
	}
}

// WithQuiet suppresses result rows. Status messages are still written.
func WithQuiet() Option {
	return func(v *View) {
		v.quiet = true
	}
}

// NewView creates a View writing rows to out and status to errOut.
func NewView(out, errOut io.Writer, opts ...Option) *View {
	v := &View{
		out:    out,
		errOut: errOut,
		term:   IsTerminal(errOut),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// IsTerminal reports whether f is backed by a terminal file descriptor,
// such as os.Stdin or os.Stderr attached to a console.
func IsTerminal(f any) bool {
	file, ok := f.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (v *View) SetLoading(loading bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.term || v.loading == loading {
		v.loading = loading
		return
	}
	v.loading = loading
	if loading {
		fmt.Fprintf(v.errOut, "\r%s%s%s", colorDim, loadingText, colorReset)
		return
	}
	v.clearLine()
}

func (v *View) ShowResults(urls linkexport.ResultSet) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.clearLoading()
	v.lastRows = len(urls)
	if v.quiet {
		return
	}
	if len(urls) == 0 {
		fmt.Fprintln(v.errOut, "No matching URLs found")
		return
	}
	for _, u := range urls {
		fmt.Fprintln(v.out, u)
	}
}

// HideResults forgets the previously rendered rows. Rows already written
// to the output stream stay there.
func (v *View) HideResults() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastRows = 0
}

func (v *View) SetCount(text string) {
	if text == "" {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.clearLoading()
	if v.term {
		fmt.Fprintf(v.errOut, "%s%s%s\n", colorDim, text, colorReset)
		return
	}
	fmt.Fprintln(v.errOut, text)
}

// ShowActions is a no-op: copy and save are chosen with flags before the run.
func (v *View) ShowActions(visible bool) {}

func (v *View) Status(msg string, isError bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.clearLoading()
	switch {
	case !v.term:
		if isError {
			fmt.Fprintf(v.errOut, "Error: %s\n", msg)
			return
		}
		fmt.Fprintln(v.errOut, msg)
	case isError:
		fmt.Fprintf(v.errOut, "%sError: %s%s\n", colorRed, msg, colorReset)
	default:
		fmt.Fprintf(v.errOut, "%s%s%s\n", colorGreen, msg, colorReset)
	}
}

// Rows returns the number of rows shown by the last ShowResults call.
func (v *View) Rows() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastRows
}

// clearLoading erases the loading line before other output is written.
func (v *View) clearLoading() {
	if v.term && v.loading {
		v.clearLine()
		v.loading = false
	}
}

func (v *View) clearLine() {
	fmt.Fprintf(v.errOut, "\r%80s\r", "")
}
