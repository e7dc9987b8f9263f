// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Enki Somer

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/enki-somer/qs-sync/models"
)

// Cache provides typed convenience wrappers per entity kind. Every wrapper
// funnels through the [EntityRepository] primitives and stamps LastModified
// on the payload before it is written.
type Cache struct {
	entities EntityRepository
}

// NewCache wraps an [EntityRepository] with the typed per-entity API.
func NewCache(entities EntityRepository) *Cache {
	return &Cache{entities: entities}
}

func putTyped(ctx context.Context, c *Cache, table, id string, v any, indexes map[string]any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s record: %w", table, err)
	}
	return c.entities.Put(ctx, table, id, payload, indexes)
}

func getTyped[T any](ctx context.Context, c *Cache, table, id string) (T, error) {
	var out T
	rec, err := c.entities.Get(ctx, table, id)
	if err != nil {
		return out, err
	}
	if err = json.Unmarshal(rec.Payload, &out); err != nil {
		return out, fmt.Errorf("decode %s record %s: %w", table, id, err)
	}
	return out, nil
}

func decodeAll[T any](table string, recs []Record) ([]T, error) {
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		var v T
		if err := json.Unmarshal(rec.Payload, &v); err != nil {
			return nil, fmt.Errorf("decode %s record %s: %w", table, rec.ID, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// ── Projects ─────────────────────────────────────────────────────────────────

func (c *Cache) StoreProject(ctx context.Context, p models.Project) error {
	p.LastModified = time.Now()
	return putTyped(ctx, c, TableProjects, p.ID, p, map[string]any{
		IndexStatus: p.Status,
		IndexActive: p.Active,
	})
}

func (c *Cache) GetProject(ctx context.Context, id string) (models.Project, error) {
	return getTyped[models.Project](ctx, c, TableProjects, id)
}

func (c *Cache) GetProjects(ctx context.Context) ([]models.Project, error) {
	recs, err := c.entities.GetAll(ctx, TableProjects)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Project](TableProjects, recs)
}

func (c *Cache) GetProjectsByStatus(ctx context.Context, status string) ([]models.Project, error) {
	recs, err := c.entities.GetByIndex(ctx, TableProjects, IndexStatus, status)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Project](TableProjects, recs)
}

func (c *Cache) DeleteProject(ctx context.Context, id string) error {
	return c.entities.Delete(ctx, TableProjects, id)
}

// ── Contractors ──────────────────────────────────────────────────────────────

func (c *Cache) StoreContractor(ctx context.Context, ct models.Contractor) error {
	ct.LastModified = time.Now()
	return putTyped(ctx, c, TableContractors, ct.ID, ct, map[string]any{
		IndexProjectID: ct.ProjectID,
		IndexStatus:    ct.Status,
	})
}

func (c *Cache) GetContractor(ctx context.Context, id string) (models.Contractor, error) {
	return getTyped[models.Contractor](ctx, c, TableContractors, id)
}

func (c *Cache) GetContractorsByProject(ctx context.Context, projectID string) ([]models.Contractor, error) {
	recs, err := c.entities.GetByIndex(ctx, TableContractors, IndexProjectID, projectID)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Contractor](TableContractors, recs)
}

func (c *Cache) DeleteContractor(ctx context.Context, id string) error {
	return c.entities.Delete(ctx, TableContractors, id)
}

// ── Invoices ─────────────────────────────────────────────────────────────────

func (c *Cache) StoreInvoice(ctx context.Context, inv models.Invoice) error {
	inv.LastModified = time.Now()
	return putTyped(ctx, c, TableInvoices, inv.ID, inv, map[string]any{
		IndexProjectID: inv.ProjectID,
		IndexStatus:    inv.Status,
	})
}

func (c *Cache) GetInvoice(ctx context.Context, id string) (models.Invoice, error) {
	return getTyped[models.Invoice](ctx, c, TableInvoices, id)
}

func (c *Cache) GetInvoicesByProject(ctx context.Context, projectID string) ([]models.Invoice, error) {
	recs, err := c.entities.GetByIndex(ctx, TableInvoices, IndexProjectID, projectID)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Invoice](TableInvoices, recs)
}

func (c *Cache) GetInvoicesByStatus(ctx context.Context, status string) ([]models.Invoice, error) {
	recs, err := c.entities.GetByIndex(ctx, TableInvoices, IndexStatus, status)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Invoice](TableInvoices, recs)
}

func (c *Cache) DeleteInvoice(ctx context.Context, id string) error {
	return c.entities.Delete(ctx, TableInvoices, id)
}

// ── Employees ────────────────────────────────────────────────────────────────

func (c *Cache) StoreEmployee(ctx context.Context, e models.Employee) error {
	e.LastModified = time.Now()
	return putTyped(ctx, c, TableEmployees, e.ID, e, map[string]any{
		IndexActive: e.Active,
	})
}

func (c *Cache) GetEmployee(ctx context.Context, id string) (models.Employee, error) {
	return getTyped[models.Employee](ctx, c, TableEmployees, id)
}

func (c *Cache) GetActiveEmployees(ctx context.Context) ([]models.Employee, error) {
	recs, err := c.entities.GetByIndex(ctx, TableEmployees, IndexActive, true)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Employee](TableEmployees, recs)
}

// ── Expenses ─────────────────────────────────────────────────────────────────

func (c *Cache) StoreExpense(ctx context.Context, e models.Expense) error {
	e.LastModified = time.Now()
	return putTyped(ctx, c, TableExpenses, e.ID, e, map[string]any{
		IndexProjectID: e.ProjectID,
	})
}

func (c *Cache) GetExpensesByProject(ctx context.Context, projectID string) ([]models.Expense, error) {
	recs, err := c.entities.GetByIndex(ctx, TableExpenses, IndexProjectID, projectID)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Expense](TableExpenses, recs)
}

// ── Safe snapshot ────────────────────────────────────────────────────────────

func (c *Cache) StoreSafeState(ctx context.Context, s models.SafeState) error {
	s.Key = models.SafeStateKey
	s.LastModified = time.Now()
	return putTyped(ctx, c, TableSafeState, s.Key, s, nil)
}

func (c *Cache) GetSafeState(ctx context.Context) (models.SafeState, error) {
	return getTyped[models.SafeState](ctx, c, TableSafeState, models.SafeStateKey)
}
