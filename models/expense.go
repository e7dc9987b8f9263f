package models

import "time"

// Expense is a cached copy of a project expense entry.
type Expense struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"project_id"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category,omitempty"`
	Amount       float64   `json:"amount"`
	SpentAt      time.Time `json:"spent_at,omitempty"`
	LastModified time.Time `json:"last_modified,omitempty"`
}
