// Package session coordinates one extraction surface: it loads remembered
// settings, resolves the active page, runs the filter engine over its links
// and exports the results.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/linkexport"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// Status messages shown to the user.
const (
	MsgNoPage     = "No active tab found"
	MsgNoResult   = "No URLs found matching criteria"
	MsgInFlight   = "Extraction already in progress"
	MsgCopyFailed = "Failed to copy URLs"
	MsgSaveFailed = "Failed to save URLs"
	MsgNothing    = "No URLs to export"
)

// Form is the filter state the user submits with an extraction.
type Form struct {
	ExcludeGoogle   bool
	ExcludeInternal bool
	OnlySearch      bool

	// CustomDomains is the raw comma-separated text.
	CustomDomains string

	HTTPOnly bool
}

// Config converts the form into an engine configuration.
func (f Form) Config() linkexport.FilterConfig {
	return linkexport.FilterConfig{
		ExcludeGoogle:   f.ExcludeGoogle,
		ExcludeInternal: f.ExcludeInternal,
		OnlySearch:      f.OnlySearch,
		CustomDomains:   linkexport.ParseDomains(f.CustomDomains),
		HTTPOnly:        f.HTTPOnly,
	}
}

// Settings returns the part of the form that is remembered across sessions.
func (f Form) Settings() *linkexport.Settings {
	return &linkexport.Settings{
		ExcludeGoogle: f.ExcludeGoogle,
		CustomDomains: f.CustomDomains,
	}
}

// Session orchestrates extraction requests against its collaborators.
// Only one extraction runs at a time.
type Session struct {
	Settings  linkexport.SettingsStore
	Pages     linkexport.PageResolver
	Links     linkexport.LinkSource
	Engine    *linkexport.Engine
	View      linkexport.View
	Clipboard linkexport.Clipboard
	Downloads linkexport.Downloader
	Logger    *slog.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	once   sync.Once
	flight *semaphore.Weighted

	mu      sync.Mutex
	results linkexport.ResultSet
}

func (s *Session) init() {
	s.once.Do(func() {
		s.flight = semaphore.NewWeighted(1)
	})
}

func (s *Session) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.Logger
}

func (s *Session) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Load returns the initial form state from the remembered settings.
// A failing store is logged and the defaults are used.
func (s *Session) Load(ctx context.Context) (Form, error) {
	if err := ctx.Err(); err != nil {
		return Form{}, err
	}

	settings := linkexport.DefaultSettings()
	if s.Settings != nil {
		stored, err := s.Settings.Settings(ctx)
		if err != nil {
			s.logger().Warn("loading settings failed, using defaults", "err", err)
		} else if stored != nil {
			settings = stored
		}
	}

	return Form{
		ExcludeGoogle: settings.ExcludeGoogle,
		CustomDomains: settings.CustomDomains,
	}, nil
}

// Extract runs one extraction for the active page.
//
// A call made while another extraction is running fails immediately with
// ECONFLICT. ENOPAGE is returned when there is no active page and ENORESULT
// when the link source produced no payload. An empty ResultSet with a nil
// error means the page had no matching links.
func (s *Session) Extract(ctx context.Context, form Form) (linkexport.ResultSet, error) {
	s.init()
	if !s.flight.TryAcquire(1) {
		err := linkexport.Errorf(linkexport.ECONFLICT, MsgInFlight)
		s.logger().Warn("extraction rejected", "err", err)
		return nil, err
	}
	defer s.flight.Release(1)

	logger := s.logger().With("request", uuid.NewString())
	begin := time.Now()

	s.mu.Lock()
	s.results = nil
	s.mu.Unlock()

	s.View.HideResults()
	s.View.ShowActions(false)
	s.View.SetCount("")
	s.View.SetLoading(true)

	urls, err := s.extract(ctx, logger, form)
	s.View.SetLoading(false)
	if err != nil {
		logger.Info("extraction failed", "duration", time.Since(begin), "err", err)
		s.View.Status(statusMessage(err), true)
		return nil, err
	}

	s.mu.Lock()
	s.results = urls
	s.mu.Unlock()

	s.View.ShowResults(urls)
	s.View.SetCount(fmt.Sprintf("%d URLs found", len(urls)))
	s.View.ShowActions(len(urls) > 0)

	logger.Info("extraction finished", "count", len(urls), "duration", time.Since(begin))
	return urls, nil
}

func (s *Session) extract(ctx context.Context, logger *slog.Logger, form Form) (linkexport.ResultSet, error) {
	page, err := s.Pages.ActivePage(ctx)
	if err != nil {
		if linkexport.ErrorCode(err) == linkexport.ENOPAGE {
			return nil, err
		}
		return nil, fmt.Errorf("resolving active page: %w", err)
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	cfg := form.Config()

	// Saving settings never blocks extraction.
	if s.Settings != nil {
		if err := s.Settings.SaveSettings(ctx, form.Settings()); err != nil {
			logger.Warn("saving settings failed", "err", err)
		}
	}

	snap, err := s.Links.Links(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("collecting links: %w", err)
	}
	if snap == nil {
		return nil, linkexport.Errorf(linkexport.ENORESULT, MsgNoResult)
	}

	engine := s.Engine
	if engine == nil {
		engine = linkexport.NewEngine(nil)
	}
	return engine.Extract(snap, page.Hostname(), cfg), nil
}

// Results returns the result set of the last successful extraction.
// Starting a new extraction clears it.
func (s *Session) Results() linkexport.ResultSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

func (s *Session) exportable() (linkexport.ResultSet, error) {
	urls := s.Results()
	if len(urls) == 0 {
		return nil, linkexport.Errorf(linkexport.EINVALID, MsgNothing)
	}
	return urls, nil
}

// Copy writes the current results to the clipboard, one URL per line.
func (s *Session) Copy(ctx context.Context) error {
	urls, err := s.exportable()
	if err != nil {
		return err
	}

	if err := s.Clipboard.WriteText(ctx, urls.Text()); err != nil {
		s.logger().Error("copy failed", "err", err)
		s.View.Status(MsgCopyFailed, true)
		return fmt.Errorf("copying results: %w", err)
	}

	s.View.Status(fmt.Sprintf("%d URLs copied to clipboard!", len(urls)), false)
	return nil
}

// Save offers the current results as a timestamped text file.
// It returns the path the file was written to.
func (s *Session) Save(ctx context.Context) (string, error) {
	urls, err := s.exportable()
	if err != nil {
		return "", err
	}

	path, err := s.Downloads.Download(ctx, &linkexport.Download{
		Filename: linkexport.ExportFilename(s.now()),
		Content:  []byte(urls.Text()),
		SaveAs:   true,
	})
	if err != nil {
		s.logger().Error("save failed", "err", err)
		s.View.Status(MsgSaveFailed, true)
		return "", fmt.Errorf("saving results: %w", err)
	}

	s.View.Status(fmt.Sprintf("Saved %d URLs to %s", len(urls), path), false)
	return path, nil
}

// statusMessage returns the user-facing text for an extraction error.
// Application errors carry their own message; anything else is a bridge
// failure shown with its cause.
func statusMessage(err error) string {
	if linkexport.ErrorCode(err) == linkexport.ENOPAGE {
		return MsgNoPage
	}
	var e *linkexport.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
