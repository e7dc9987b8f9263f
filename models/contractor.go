package models

import "time"

// Contractor statuses.
const (
	ContractorStatusAssigned = "assigned"
	ContractorStatusDone     = "done"
)

// Contractor is a cached copy of a contractor assignment on a project.
type Contractor struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"project_id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone,omitempty"`
	Trade          string    `json:"trade,omitempty"`
	Status         string    `json:"status,omitempty"`
	ContractAmount float64   `json:"contract_amount,omitempty"`
	LastModified   time.Time `json:"last_modified,omitempty"`
}
