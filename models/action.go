// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Enki Somer

package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ActionType identifies which remote operation a [PendingAction] performs.
// The set is closed: the replay dispatcher matches exhaustively and treats an
// unknown tag as a local programming error, never sending it over the wire.
type ActionType string

const (
	ActionCreateProject ActionType = "CREATE_PROJECT"
	ActionUpdateProject ActionType = "UPDATE_PROJECT"
	ActionDeleteProject ActionType = "DELETE_PROJECT"

	ActionCreateInvoice  ActionType = "CREATE_INVOICE"
	ActionUpdateInvoice  ActionType = "UPDATE_INVOICE"
	ActionDeleteInvoice  ActionType = "DELETE_INVOICE"
	ActionApproveInvoice ActionType = "APPROVE_INVOICE"

	ActionCreateContractor ActionType = "CREATE_CONTRACTOR"
	ActionUpdateContractor ActionType = "UPDATE_CONTRACTOR"
	ActionDeleteContractor ActionType = "DELETE_CONTRACTOR"

	ActionFundSafe ActionType = "FUND_SAFE"

	ActionCreateEmployee ActionType = "CREATE_EMPLOYEE"
	ActionUpdateEmployee ActionType = "UPDATE_EMPLOYEE"

	ActionCreateExpense ActionType = "CREATE_EXPENSE"
	ActionUpdateExpense ActionType = "UPDATE_EXPENSE"
)

// actionTypes is the closed set used by [ActionType.Valid].
var actionTypes = map[ActionType]struct{}{
	ActionCreateProject:    {},
	ActionUpdateProject:    {},
	ActionDeleteProject:    {},
	ActionCreateInvoice:    {},
	ActionUpdateInvoice:    {},
	ActionDeleteInvoice:    {},
	ActionApproveInvoice:   {},
	ActionCreateContractor: {},
	ActionUpdateContractor: {},
	ActionDeleteContractor: {},
	ActionFundSafe:         {},
	ActionCreateEmployee:   {},
	ActionUpdateEmployee:   {},
	ActionCreateExpense:    {},
	ActionUpdateExpense:    {},
}

// Valid reports whether t belongs to the closed action-type set.
func (t ActionType) Valid() bool {
	_, ok := actionTypes[t]
	return ok
}

// PendingAction is the unit of deferred work: one queued mutation that must
// eventually reach the remote API.
//
// Lifecycle: created by the sync manager on enqueue with Synced=false and
// RetryCount=0; each failed replay attempt increments RetryCount and records
// LastError; a successful replay sets Synced=true and SyncedAt. A row with
// Synced=false is never deleted except by an explicit discard or data reset.
type PendingAction struct {
	// ID is unique and generated at enqueue time (unix-milli timestamp plus
	// a random suffix). IDs are never reused, so enqueueing the same logical
	// mutation twice produces two distinct queue entries.
	ID string `json:"id"`

	// Type selects the remote endpoint; Payload's shape is defined by it.
	Type    ActionType      `json:"type"`
	Payload json.RawMessage `json:"data"`

	// Timestamp preserves FIFO replay order.
	Timestamp time.Time `json:"timestamp"`

	Synced     bool       `json:"synced"`
	RetryCount int        `json:"retry_count"`
	SyncedAt   *time.Time `json:"synced_at,omitempty"`
	LastError  string     `json:"error,omitempty"`
}

// DeleteTarget is the payload of the delete-* action variants.
type DeleteTarget struct {
	ID string `json:"id"`
}

// ApproveInvoicePayload is the payload of APPROVE_INVOICE.
type ApproveInvoicePayload struct {
	ID         string `json:"id"`
	ApprovedBy string `json:"approved_by,omitempty"`
}

// FundSafePayload is the payload of FUND_SAFE.
type FundSafePayload struct {
	Amount float64 `json:"amount"`
	Note   string  `json:"note,omitempty"`
}

// NewPendingAction builds a queue-ready action of the given type, assigning
// the id, enqueue timestamp, and zeroed bookkeeping fields. The payload is
// marshalled to JSON immediately so that a non-serialisable payload fails at
// enqueue time rather than mid-replay.
func NewPendingAction(t ActionType, payload any) (PendingAction, error) {
	if !t.Valid() {
		return PendingAction{}, fmt.Errorf("unknown action type %q", t)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return PendingAction{}, fmt.Errorf("marshal %s payload: %w", t, err)
	}

	now := time.Now()
	return PendingAction{
		ID:        fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8]),
		Type:      t,
		Payload:   raw,
		Timestamp: now,
	}, nil
}

// Typed constructors, one per action variant. Application code goes through
// these so every payload shape is checked at compile time.

func NewCreateProjectAction(p Project) (PendingAction, error) {
	return NewPendingAction(ActionCreateProject, p)
}

func NewUpdateProjectAction(p Project) (PendingAction, error) {
	return NewPendingAction(ActionUpdateProject, p)
}

func NewDeleteProjectAction(id string) (PendingAction, error) {
	return NewPendingAction(ActionDeleteProject, DeleteTarget{ID: id})
}

func NewCreateInvoiceAction(inv Invoice) (PendingAction, error) {
	return NewPendingAction(ActionCreateInvoice, inv)
}

func NewUpdateInvoiceAction(inv Invoice) (PendingAction, error) {
	return NewPendingAction(ActionUpdateInvoice, inv)
}

func NewDeleteInvoiceAction(id string) (PendingAction, error) {
	return NewPendingAction(ActionDeleteInvoice, DeleteTarget{ID: id})
}

func NewApproveInvoiceAction(payload ApproveInvoicePayload) (PendingAction, error) {
	return NewPendingAction(ActionApproveInvoice, payload)
}

func NewCreateContractorAction(c Contractor) (PendingAction, error) {
	return NewPendingAction(ActionCreateContractor, c)
}

func NewUpdateContractorAction(c Contractor) (PendingAction, error) {
	return NewPendingAction(ActionUpdateContractor, c)
}

func NewDeleteContractorAction(id string) (PendingAction, error) {
	return NewPendingAction(ActionDeleteContractor, DeleteTarget{ID: id})
}

func NewFundSafeAction(payload FundSafePayload) (PendingAction, error) {
	return NewPendingAction(ActionFundSafe, payload)
}

func NewCreateEmployeeAction(e Employee) (PendingAction, error) {
	return NewPendingAction(ActionCreateEmployee, e)
}

func NewUpdateEmployeeAction(e Employee) (PendingAction, error) {
	return NewPendingAction(ActionUpdateEmployee, e)
}

func NewCreateExpenseAction(e Expense) (PendingAction, error) {
	return NewPendingAction(ActionCreateExpense, e)
}

func NewUpdateExpenseAction(e Expense) (PendingAction, error) {
	return NewPendingAction(ActionUpdateExpense, e)
}
