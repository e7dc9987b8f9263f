// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Enki Somer

package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/enki-somer/qs-sync/internal/adapter"
	"github.com/enki-somer/qs-sync/models"
)

// dispatch delivers one queued action to the server, unmarshalling the
// payload into the concrete type each route expects. The switch is
// exhaustive over the closed ActionType set; an unknown type is a local
// error and nothing goes on the wire.
func dispatch(ctx context.Context, api adapter.APIClient, action models.PendingAction) error {
	switch action.Type {
	case models.ActionCreateProject:
		return sendPayload(ctx, action, api.CreateProject)
	case models.ActionUpdateProject:
		return sendPayload(ctx, action, api.UpdateProject)
	case models.ActionDeleteProject:
		return sendDelete(ctx, action, api.DeleteProject)

	case models.ActionCreateInvoice:
		return sendPayload(ctx, action, api.CreateInvoice)
	case models.ActionUpdateInvoice:
		return sendPayload(ctx, action, api.UpdateInvoice)
	case models.ActionDeleteInvoice:
		return sendDelete(ctx, action, api.DeleteInvoice)
	case models.ActionApproveInvoice:
		return sendPayload(ctx, action, api.ApproveInvoice)

	case models.ActionCreateContractor:
		return sendPayload(ctx, action, api.CreateContractor)
	case models.ActionUpdateContractor:
		return sendPayload(ctx, action, api.UpdateContractor)
	case models.ActionDeleteContractor:
		return sendDelete(ctx, action, api.DeleteContractor)

	case models.ActionFundSafe:
		return sendPayload(ctx, action, api.FundSafe)

	case models.ActionCreateEmployee:
		return sendPayload(ctx, action, api.CreateEmployee)
	case models.ActionUpdateEmployee:
		return sendPayload(ctx, action, api.UpdateEmployee)

	case models.ActionCreateExpense:
		return sendPayload(ctx, action, api.CreateExpense)
	case models.ActionUpdateExpense:
		return sendPayload(ctx, action, api.UpdateExpense)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownActionType, action.Type)
	}
}

// sendPayload decodes the action payload into T and hands it to the route.
func sendPayload[T any](ctx context.Context, action models.PendingAction, send func(context.Context, T) error) error {
	var payload T
	if err := json.Unmarshal(action.Payload, &payload); err != nil {
		return fmt.Errorf("decode %s payload: %w", action.Type, err)
	}
	return send(ctx, payload)
}

// sendDelete extracts the target id for the delete routes.
func sendDelete(ctx context.Context, action models.PendingAction, send func(context.Context, string) error) error {
	var target models.DeleteTarget
	if err := json.Unmarshal(action.Payload, &target); err != nil {
		return fmt.Errorf("decode %s payload: %w", action.Type, err)
	}
	if target.ID == "" {
		return fmt.Errorf("decode %s payload: missing id", action.Type)
	}
	return send(ctx, target.ID)
}
