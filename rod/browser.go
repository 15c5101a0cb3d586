// Package rod provides the live-page bridge: it resolves the active page of a
// Chrome browser and collects the page's links from inside its document
// using go-rod.
package rod

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/linkexport"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

// DefaultTimeout bounds page navigation and in-page evaluation.
const DefaultTimeout = 30 * time.Second

// collectLinksJS runs inside the page and mirrors what a content script sees.
const collectLinksJS = `() => ({
	baseURI: document.baseURI,
	hrefs: Array.from(document.links, (link) =>
		typeof link.href === "string" ? link.href : link.getAttribute("href")),
})`

// visibilityJS reports whether the page is in the foreground.
const visibilityJS = `() => document.visibilityState`

// Ensure Browser implements linkexport.PageResolver and linkexport.LinkSource at compile time.
var (
	_ linkexport.PageResolver = (*Browser)(nil)
	_ linkexport.LinkSource   = (*Browser)(nil)
)

// Browser drives a Chrome instance, either launched headless or attached to
// a running browser through its DevTools endpoint.
//
// Browser is safe for concurrent use.
type Browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher // nil when attached

	controlURL string
	targetURL  string
	timeout    time.Duration

	mu     sync.Mutex
	opened []*rod.Page
	closed atomic.Bool
}

// Option configures a Browser.
type Option func(*Browser)

// WithControlURL attaches to a running browser instead of launching one.
// Accepts a DevTools websocket URL, an http://host:port address or a bare port.
func WithControlURL(u string) Option {
	return func(b *Browser) {
		b.controlURL = u
	}
}

// WithTargetURL makes ActivePage open u in a new tab instead of picking the
// visible page of the browser.
func WithTargetURL(u string) Option {
	return func(b *Browser) {
		b.targetURL = u
	}
}

// WithTimeout bounds each navigation and evaluation.
// Defaults to DefaultTimeout. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(b *Browser) {
		b.timeout = d
	}
}

// NewBrowser launches or attaches to a browser.
// Close must be called when the Browser is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found, launched or reached.
func NewBrowser(opts ...Option) (*Browser, error) {
	b := &Browser{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(b)
	}

	if b.controlURL != "" {
		if err := b.attach(); err != nil {
			return nil, err
		}
		return b, nil
	}

	if err := b.launch(); err != nil {
		return nil, err
	}
	return b, nil
}

// ActivePage returns the page links are collected from. With a target URL
// it opens the URL in a new tab and waits for it to load; otherwise it
// returns the first page whose document is visible.
//
// Returns ENOPAGE if no page is visible.
func (b *Browser) ActivePage(ctx context.Context) (*linkexport.PageHandle, error) {
	if b.closed.Load() {
		return nil, linkexport.Errorf(linkexport.EINVALID, "browser is closed")
	}

	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	if b.targetURL != "" {
		return b.openTarget(ctx)
	}
	return b.visiblePage(ctx)
}

// Links evaluates the link collector inside the page's document.
// A page that evaluates to nothing yields a nil snapshot.
func (b *Browser) Links(ctx context.Context, page *linkexport.PageHandle) (*linkexport.LinkSnapshot, error) {
	if b.closed.Load() {
		return nil, linkexport.Errorf(linkexport.EINVALID, "browser is closed")
	}
	if page == nil || page.ID == "" {
		return nil, linkexport.Errorf(linkexport.ENOPAGE, "No active tab found")
	}

	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	p, err := b.browser.PageFromTarget(proto.TargetTargetID(page.ID))
	if err != nil {
		return nil, fmt.Errorf("attaching to page %s: %w", page.ID, err)
	}

	res, err := p.Context(ctx).Eval(collectLinksJS)
	if err != nil {
		return nil, fmt.Errorf("collecting links: %w", err)
	}
	if res == nil {
		return nil, nil
	}
	return snapshotFromValue(res.Value), nil
}

// Close closes the tabs opened by ActivePage and, for a launched browser,
// the browser itself. An attached browser keeps running.
// Close is safe to call multiple times.
func (b *Browser) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, p := range b.opened {
		_ = p.Close()
	}
	b.opened = nil

	if b.launcher == nil {
		return nil
	}

	err := b.browser.Close()
	b.launcher.Kill()
	b.launcher = nil
	return err
}

func (b *Browser) openTarget(ctx context.Context) (*linkexport.PageHandle, error) {
	p, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("opening tab: %w", err)
	}

	b.mu.Lock()
	b.opened = append(b.opened, p)
	b.mu.Unlock()

	p = p.Context(ctx)
	if err := p.Navigate(b.targetURL); err != nil {
		return nil, fmt.Errorf("navigating to %s: %w", b.targetURL, err)
	}
	if err := p.WaitLoad(); err != nil {
		return nil, fmt.Errorf("waiting for %s: %w", b.targetURL, err)
	}

	return pageHandle(p)
}

func (b *Browser) visiblePage(ctx context.Context) (*linkexport.PageHandle, error) {
	pages, err := b.browser.Pages()
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}

	for _, p := range pages {
		p = p.Context(ctx)
		info, err := p.Info()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		if isBlankURL(info.URL) {
			continue
		}

		res, err := p.Eval(visibilityJS)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// Pages that refuse evaluation (crashed, chrome://) are not candidates.
			continue
		}
		if res.Value.Str() == "visible" {
			return pageHandle(p)
		}
	}

	return nil, linkexport.Errorf(linkexport.ENOPAGE, "No active tab found")
}

// isBlankURL reports whether u is an about: page such as about:blank.
func isBlankURL(u string) bool {
	scheme, _, ok := strings.Cut(u, ":")
	return ok && strings.EqualFold(scheme, "about")
}

func (b *Browser) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, b.timeout)
}

// launch starts a headless browser with stability flags.
func (b *Browser) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return fmt.Errorf("connecting to browser: %w", err)
	}

	b.browser = browser
	b.launcher = l
	return nil
}

// attach connects to the browser behind controlURL.
func (b *Browser) attach() error {
	u, err := launcher.ResolveURL(b.controlURL)
	if err != nil {
		return fmt.Errorf("resolving browser URL %q: %w", b.controlURL, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connecting to browser: %w", err)
	}

	b.browser = browser
	return nil
}

func pageHandle(p *rod.Page) (*linkexport.PageHandle, error) {
	info, err := p.Info()
	if err != nil {
		return nil, fmt.Errorf("reading page info: %w", err)
	}

	page := &linkexport.PageHandle{ID: string(p.TargetID), URL: info.URL}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return page, nil
}

// snapshotFromValue converts the collector's result. Nil and non-object
// results mean the page produced no payload.
func snapshotFromValue(v gson.JSON) *linkexport.LinkSnapshot {
	fields, ok := v.Val().(map[string]any)
	if !ok {
		return nil
	}

	snap := &linkexport.LinkSnapshot{Hrefs: []string{}}
	snap.BaseURI, _ = fields["baseURI"].(string)

	hrefs, _ := fields["hrefs"].([]any)
	for _, href := range hrefs {
		if s, ok := href.(string); ok {
			snap.Hrefs = append(snap.Hrefs, s)
		}
	}
	return snap
}
