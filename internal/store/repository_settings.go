package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/enki-somer/qs-sync/internal/logger"
)

type settingsRepository struct {
	*DB
	logger *logger.Logger
}

// NewSettingsRepository constructs the key/value settings repository over
// the app_settings table.
func NewSettingsRepository(db *DB, logger *logger.Logger) SettingsRepository {
	return &settingsRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *settingsRepository) Set(ctx context.Context, key, value string) error {
	if _, err := r.DB.ExecContext(ctx, setSetting, key, value, time.Now()); err != nil {
		return fmt.Errorf("%w: %s", ErrExecutingStatement, err)
	}

	return nil
}

func (r *settingsRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	if err := r.DB.QueryRowContext(ctx, getSetting, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: %s", ErrSettingNotFound, key)
		}
		return "", fmt.Errorf("%w: %s", ErrExecutingQuery, err)
	}

	return value, nil
}

func (r *settingsRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.DB.ExecContext(ctx, deleteSetting, key); err != nil {
		return fmt.Errorf("%w: %s", ErrExecutingStatement, err)
	}

	return nil
}
