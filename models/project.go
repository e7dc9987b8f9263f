package models

import "time"

// Project statuses used by the status secondary index.
const (
	ProjectStatusActive    = "active"
	ProjectStatusPaused    = "paused"
	ProjectStatusCompleted = "completed"
)

// Project is a cached copy of a construction project. The local store is a
// cache, not the source of truth: no validation is applied on write.
type Project struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location,omitempty"`
	Budget       float64   `json:"budget,omitempty"`
	Status       string    `json:"status,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	LastModified time.Time `json:"last_modified,omitempty"`
}
