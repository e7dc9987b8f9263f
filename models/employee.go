package models

import "time"

// Employee is a cached copy of a payroll employee record.
type Employee struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Role         string    `json:"role,omitempty"`
	Salary       float64   `json:"salary,omitempty"`
	Active       bool      `json:"active"`
	HiredAt      time.Time `json:"hired_at,omitempty"`
	LastModified time.Time `json:"last_modified,omitempty"`
}
