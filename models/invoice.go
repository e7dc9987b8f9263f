// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Enki Somer

package models

import "time"

// Invoice statuses used by the status secondary index.
const (
	InvoiceStatusPending  = "pending"
	InvoiceStatusApproved = "approved"
	InvoiceStatusPaid     = "paid"
)

// Invoice is a cached copy of a category invoice raised by a contractor
// against a project.
type Invoice struct {
	ID           string     `json:"id"`
	ProjectID    string     `json:"project_id"`
	ContractorID string     `json:"contractor_id,omitempty"`
	Number       string     `json:"number,omitempty"`
	Category     string     `json:"category,omitempty"`
	Amount       float64    `json:"amount"`
	Status       string     `json:"status,omitempty"`
	IssuedAt     time.Time  `json:"issued_at,omitempty"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
	LastModified time.Time  `json:"last_modified,omitempty"`
}
