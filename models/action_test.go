// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Enki Somer

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPendingAction_AssignsIdentityAndTimestamp(t *testing.T) {
	action, err := NewPendingAction(ActionCreateProject, Project{ID: "p1", Name: "Tower A"})
	require.NoError(t, err)

	assert.NotEmpty(t, action.ID)
	assert.Equal(t, ActionCreateProject, action.Type)
	assert.False(t, action.Timestamp.IsZero())
	assert.False(t, action.Synced)
	assert.Zero(t, action.RetryCount)

	var decoded Project
	require.NoError(t, json.Unmarshal(action.Payload, &decoded))
	assert.Equal(t, "Tower A", decoded.Name)
}

func TestNewPendingAction_UniqueIDs(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		action, err := NewPendingAction(ActionFundSafe, FundSafePayload{Amount: 1})
		require.NoError(t, err)
		_, dup := seen[action.ID]
		require.False(t, dup, "duplicate id %s", action.ID)
		seen[action.ID] = struct{}{}
	}
}

func TestNewPendingAction_RejectsUnknownType(t *testing.T) {
	_, err := NewPendingAction("MERGE_PROJECTS", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown action type")
}

func TestNewPendingAction_RejectsUnserialisablePayload(t *testing.T) {
	_, err := NewPendingAction(ActionCreateProject, func() {})
	require.Error(t, err)
}

func TestActionType_Valid(t *testing.T) {
	for typ := range actionTypes {
		assert.True(t, typ.Valid(), "type %q", typ)
	}
	assert.False(t, ActionType("").Valid())
	assert.False(t, ActionType("create_project").Valid(), "values are upper snake case")
}

func TestDeleteConstructors_CarryTarget(t *testing.T) {
	action, err := NewDeleteContractorAction("c42")
	require.NoError(t, err)

	var target DeleteTarget
	require.NoError(t, json.Unmarshal(action.Payload, &target))
	assert.Equal(t, "c42", target.ID)
}
