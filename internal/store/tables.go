// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Enki Somer

package store

import (
	"encoding/json"
	"time"
)

// Entity cache table names. One table per cached domain type, plus the
// singleton safe snapshot.
const (
	TableProjects    = "projects"
	TableContractors = "contractors"
	TableInvoices    = "invoices"
	TableEmployees   = "employees"
	TableExpenses    = "expenses"
	TableSafeState   = "safe_state"
)

// Secondary index column names shared across the registry.
const (
	IndexStatus    = "status"
	IndexActive    = "active"
	IndexProjectID = "project_id"
)

// tableSpec describes one registered entity table: its primary key column
// and the secondary index columns writes may populate. Secondary indexes are
// non-unique and used only for retrieval, never for integrity enforcement.
type tableSpec struct {
	name    string
	pk      string
	indexes map[string]struct{}
}

func (t tableSpec) hasIndex(column string) bool {
	_, ok := t.indexes[column]
	return ok
}

// entityTables is the closed registry the entity repository validates every
// table and index name against. Unknown names are programming errors.
var entityTables = map[string]tableSpec{
	TableProjects: {
		name:    TableProjects,
		pk:      "id",
		indexes: map[string]struct{}{IndexStatus: {}, IndexActive: {}},
	},
	TableContractors: {
		name:    TableContractors,
		pk:      "id",
		indexes: map[string]struct{}{IndexProjectID: {}, IndexStatus: {}},
	},
	TableInvoices: {
		name:    TableInvoices,
		pk:      "id",
		indexes: map[string]struct{}{IndexProjectID: {}, IndexStatus: {}},
	},
	TableEmployees: {
		name:    TableEmployees,
		pk:      "id",
		indexes: map[string]struct{}{IndexActive: {}},
	},
	TableExpenses: {
		name:    TableExpenses,
		pk:      "id",
		indexes: map[string]struct{}{IndexProjectID: {}},
	},
	TableSafeState: {
		name:    TableSafeState,
		pk:      "id",
		indexes: map[string]struct{}{},
	},
}

// EntityTableNames returns the registered cache table names, used by the
// data-reset path and by storage diagnostics.
func EntityTableNames() []string {
	names := make([]string, 0, len(entityTables))
	for name := range entityTables {
		names = append(names, name)
	}
	return names
}

// Record is one cached entity row: an opaque JSON payload plus the
// store-stamped modification time.
type Record struct {
	ID           string          `json:"id"`
	Payload      json.RawMessage `json:"payload"`
	LastModified time.Time       `json:"last_modified"`
}
