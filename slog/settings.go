// Package slog provides logging decorators for linkexport services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/linkexport"
)

// Ensure LoggingSettingsStore implements linkexport.SettingsStore.
var _ linkexport.SettingsStore = (*LoggingSettingsStore)(nil)

// LoggingSettingsStore wraps a SettingsStore with debug logging.
type LoggingSettingsStore struct {
	next   linkexport.SettingsStore
	logger *slog.Logger
}

// NewLoggingSettingsStore creates a new LoggingSettingsStore.
func NewLoggingSettingsStore(next linkexport.SettingsStore, logger *slog.Logger) *LoggingSettingsStore {
	return &LoggingSettingsStore{next: next, logger: logger}
}

// Settings delegates to the wrapped store and logs the operation.
func (s *LoggingSettingsStore) Settings(ctx context.Context) (settings *linkexport.Settings, err error) {
	defer func(begin time.Time) {
		attrs := []any{"duration", time.Since(begin), "err", err}
		if settings != nil {
			attrs = append(attrs,
				"exclude_google", settings.ExcludeGoogle,
				"custom_domains", settings.CustomDomains,
			)
		}
		s.logger.Info("load settings", attrs...)
	}(time.Now())
	return s.next.Settings(ctx)
}

// SaveSettings delegates to the wrapped store and logs the operation.
func (s *LoggingSettingsStore) SaveSettings(ctx context.Context, settings *linkexport.Settings) (err error) {
	defer func(begin time.Time) {
		attrs := []any{"duration", time.Since(begin), "err", err}
		if settings != nil {
			attrs = append(attrs,
				"exclude_google", settings.ExcludeGoogle,
				"custom_domains", settings.CustomDomains,
			)
		}
		s.logger.Info("save settings", attrs...)
	}(time.Now())
	return s.next.SaveSettings(ctx, settings)
}
