package linkexport

import "context"

// Settings is the subset of filter state remembered across sessions.
type Settings struct {
	ExcludeGoogle bool `json:"excludeGoogle"`

	// CustomDomains is the raw comma-separated text as the user typed it.
	CustomDomains string `json:"customDomains"`
}

// DefaultSettings returns the settings used when nothing has been stored.
func DefaultSettings() *Settings {
	return &Settings{ExcludeGoogle: true}
}

// SettingsStore persists Settings in a key-value store.
type SettingsStore interface {
	// Settings returns the stored settings, with defaults for absent keys.
	Settings(ctx context.Context) (*Settings, error)

	// SaveSettings overwrites the stored settings.
	SaveSettings(ctx context.Context, s *Settings) error
}
