package sqlite

import (
	"context"
	"strconv"
	"time"

	"github.com/fwojciec/linkexport"
)

// Setting keys as stored in the settings table.
const (
	keyExcludeGoogle = "excludeGoogle"
	keyCustomDomains = "customDomains"
)

// Compile-time interface verification.
var _ linkexport.SettingsStore = (*SettingsStore)(nil)

// SettingsStore implements linkexport.SettingsStore as key-value rows in SQLite.
type SettingsStore struct {
	db *DB
}

// NewSettingsStore creates a new SettingsStore.
func NewSettingsStore(db *DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Settings returns the stored settings. Absent keys take their default values.
func (s *SettingsStore) Settings(ctx context.Context) (*linkexport.Settings, error) {
	settings := linkexport.DefaultSettings()

	rows, err := s.db.QueryContext(ctx, `
		SELECT key, value FROM settings WHERE key IN (?, ?)
	`, keyExcludeGoogle, keyCustomDomains)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}

		switch key {
		case keyExcludeGoogle:
			settings.ExcludeGoogle, err = parseBool(value, key)
			if err != nil {
				return nil, err
			}
		case keyCustomDomains:
			settings.CustomDomains = value
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return settings, nil
}

// SaveSettings overwrites both stored settings in one transaction.
func (s *SettingsStore) SaveSettings(ctx context.Context, settings *linkexport.Settings) error {
	if settings == nil {
		return linkexport.Errorf(linkexport.EINVALID, "settings required")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	values := [][2]string{
		{keyExcludeGoogle, strconv.FormatBool(settings.ExcludeGoogle)},
		{keyCustomDomains, settings.CustomDomains},
	}
	for _, kv := range values {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO settings (key, value, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, kv[0], kv[1], now); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ResetSettings removes all stored settings so defaults apply again.
func (s *SettingsStore) ResetSettings(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM settings`)
	return err
}

// UpdatedAt returns when the settings were last saved.
// Returns ENOTFOUND if nothing has been saved yet.
func (s *SettingsStore) UpdatedAt(ctx context.Context) (time.Time, error) {
	var value *string
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(updated_at) FROM settings`).Scan(&value); err != nil {
		return time.Time{}, err
	}
	if value == nil {
		return time.Time{}, linkexport.Errorf(linkexport.ENOTFOUND, "settings have not been saved")
	}
	return parseRFC3339(*value, "updated_at")
}
