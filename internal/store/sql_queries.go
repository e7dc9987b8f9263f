// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Enki Somer

package store

const (
	saveAction = `
		INSERT OR REPLACE INTO pending_actions (
			id,
			type,
			payload,
			ts,
			synced,
			retry_count,
			synced_at,
			last_error
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`

	getAction = `
		SELECT
			id,
			type,
			payload,
			ts,
			synced,
			retry_count,
			synced_at,
			last_error
		FROM pending_actions
		WHERE id = $1;`

	getAllActions = `
		SELECT
			id,
			type,
			payload,
			ts,
			synced,
			retry_count,
			synced_at,
			last_error
		FROM pending_actions
		ORDER BY ts, id;`

	getUnsyncedActions = `
		SELECT
			id,
			type,
			payload,
			ts,
			synced,
			retry_count,
			synced_at,
			last_error
		FROM pending_actions
		WHERE synced = 0
		ORDER BY ts, id;`

	markActionSynced = `
		UPDATE pending_actions SET
			synced     = 1,
			synced_at  = $1,
			last_error = ''
		WHERE id = $2;`

	recordActionFailure = `
		UPDATE pending_actions SET
			retry_count = retry_count + 1,
			last_error  = $1
		WHERE id = $2;`

	resetActionRetries = `
		UPDATE pending_actions SET
			retry_count = 0,
			last_error  = ''
		WHERE id = $1 AND synced = 0;`

	deleteAction = `
		DELETE FROM pending_actions
		WHERE id = $1;`

	purgeSyncedActions = `
		DELETE FROM pending_actions
		WHERE synced = 1;`

	countUnsyncedActions = `
		SELECT COUNT(*)
		FROM pending_actions
		WHERE synced = 0;`

	setSetting = `
		INSERT OR REPLACE INTO app_settings (key, value, last_modified)
		VALUES ($1, $2, $3);`

	getSetting = `
		SELECT value
		FROM app_settings
		WHERE key = $1;`

	deleteSetting = `
		DELETE FROM app_settings
		WHERE key = $1;`
)
