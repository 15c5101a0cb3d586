package mock

import (
	"context"

	"github.com/fwojciec/linkexport"
)

var _ linkexport.SettingsStore = (*SettingsStore)(nil)

// SettingsStore is a mock implementation of linkexport.SettingsStore.
type SettingsStore struct {
	SettingsFn     func(ctx context.Context) (*linkexport.Settings, error)
	SaveSettingsFn func(ctx context.Context, s *linkexport.Settings) error
}

func (s *SettingsStore) Settings(ctx context.Context) (*linkexport.Settings, error) {
	return s.SettingsFn(ctx)
}

func (s *SettingsStore) SaveSettings(ctx context.Context, settings *linkexport.Settings) error {
	return s.SaveSettingsFn(ctx, settings)
}
