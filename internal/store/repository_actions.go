// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Enki Somer

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/enki-somer/qs-sync/internal/logger"
	"github.com/enki-somer/qs-sync/models"
)

type actionRepository struct {
	*DB
	logger *logger.Logger
}

// NewActionRepository constructs the durable pending action queue over the
// pending_actions table.
func NewActionRepository(db *DB, logger *logger.Logger) ActionRepository {
	return &actionRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *actionRepository) Save(ctx context.Context, action models.PendingAction) error {
	log := logger.FromContext(ctx)

	var syncedAt any
	if action.SyncedAt != nil {
		syncedAt = *action.SyncedAt
	}

	_, err := r.DB.ExecContext(ctx, saveAction,
		action.ID,
		string(action.Type),
		[]byte(action.Payload),
		action.Timestamp,
		action.Synced,
		action.RetryCount,
		syncedAt,
		action.LastError,
	)
	if err != nil {
		log.Err(err).
			Str("func", "actionRepository.Save").
			Str("action_id", action.ID).
			Str("action_type", string(action.Type)).
			Msg("failed to upsert pending action")
		return fmt.Errorf("%w: %s", ErrExecutingStatement, err)
	}

	return nil
}

func (r *actionRepository) Get(ctx context.Context, id string) (models.PendingAction, error) {
	row := r.DB.QueryRowContext(ctx, getAction, id)

	action, err := scanAction(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PendingAction{}, fmt.Errorf("%w: %s", ErrActionNotFound, id)
		}
		return models.PendingAction{}, err
	}

	return action, nil
}

func (r *actionRepository) GetAll(ctx context.Context) ([]models.PendingAction, error) {
	return r.queryActions(ctx, getAllActions)
}

func (r *actionRepository) GetUnsynced(ctx context.Context) ([]models.PendingAction, error) {
	return r.queryActions(ctx, getUnsyncedActions)
}

func (r *actionRepository) MarkSynced(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, markActionSynced, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrExecutingStatement, err)
	}

	return requireAffected(res, id)
}

func (r *actionRepository) RecordFailure(ctx context.Context, id, message string) error {
	res, err := r.DB.ExecContext(ctx, recordActionFailure, message, id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrExecutingStatement, err)
	}

	return requireAffected(res, id)
}

func (r *actionRepository) ResetRetries(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, resetActionRetries, id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrExecutingStatement, err)
	}

	return requireAffected(res, id)
}

func (r *actionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, deleteAction, id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrExecutingStatement, err)
	}

	return nil
}

func (r *actionRepository) PurgeSynced(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx, purgeSyncedActions)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrExecutingStatement, err)
	}

	purged, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrExecutingStatement, err)
	}

	return purged, nil
}

func (r *actionRepository) CountUnsynced(ctx context.Context) (int64, error) {
	var count int64
	if err := r.DB.QueryRowContext(ctx, countUnsyncedActions).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrExecutingQuery, err)
	}

	return count, nil
}

func (r *actionRepository) queryActions(ctx context.Context, query string) ([]models.PendingAction, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var actions []models.PendingAction
	for rows.Next() {
		action, err := scanAction(rows.Scan)
		if err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrExecutingQuery, err)
	}

	return actions, nil
}

// scanAction reads one pending_actions row through the provided scan
// function, shared by single-row and multi-row queries.
func scanAction(scan func(dest ...any) error) (models.PendingAction, error) {
	var (
		action   models.PendingAction
		kind     string
		payload  []byte
		syncedAt sql.NullTime
	)

	err := scan(
		&action.ID,
		&kind,
		&payload,
		&action.Timestamp,
		&action.Synced,
		&action.RetryCount,
		&syncedAt,
		&action.LastError,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PendingAction{}, err
		}
		return models.PendingAction{}, fmt.Errorf("%w: %s", ErrScanningRow, err)
	}

	action.Type = models.ActionType(kind)
	action.Payload = payload
	if syncedAt.Valid {
		t := syncedAt.Time
		action.SyncedAt = &t
	}

	return action, nil
}

func requireAffected(res sql.Result, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrActionNotFound, id)
	}

	return nil
}
