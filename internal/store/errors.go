package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUnknownTable is returned when an operation names a table that is
	// not part of the registered schema. This is a programming error on
	// the caller's side, never a storage fault.
	ErrUnknownTable = errors.New("unknown table")

	// ErrUnknownIndex is returned when a lookup or write references a
	// secondary index column the table does not declare.
	ErrUnknownIndex = errors.New("unknown index column")

	// ErrRecordNotFound is returned when a Get targets a primary key that
	// does not exist in the table.
	ErrRecordNotFound = errors.New("record not found")

	// ErrActionNotFound is returned when a queue operation targets a
	// pending action id that does not exist.
	ErrActionNotFound = errors.New("pending action not found")

	// ErrSettingNotFound is returned when a settings key is absent.
	ErrSettingNotFound = errors.New("setting not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a result
	// row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")
)
