package models

import "time"

// SafeStateKey is the primary key of the singleton treasury snapshot row.
const SafeStateKey = "current"

// SafeState is the cached snapshot of the company safe (treasury). Exactly
// one row exists locally, keyed by [SafeStateKey].
type SafeState struct {
	Key            string     `json:"key"`
	Balance        float64    `json:"balance"`
	TotalFunded    float64    `json:"total_funded,omitempty"`
	TotalWithdrawn float64    `json:"total_withdrawn,omitempty"`
	LastFundedAt   *time.Time `json:"last_funded_at,omitempty"`
	LastModified   time.Time  `json:"last_modified,omitempty"`
}
