package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enki-somer/qs-sync/models"
)

func TestCache_StoreProject_StampsLastModified(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	require.NoError(t, s.Cache.StoreProject(ctx, models.Project{
		ID:     "p1",
		Name:   "Tower A",
		Status: models.ProjectStatusActive,
		Active: true,
	}))

	got, err := s.Cache.GetProject(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Tower A", got.Name)
	assert.WithinDuration(t, time.Now(), got.LastModified, 5*time.Second)
}

func TestCache_GetProjectsByStatus(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	require.NoError(t, s.Cache.StoreProject(ctx, models.Project{ID: "p1", Status: models.ProjectStatusActive}))
	require.NoError(t, s.Cache.StoreProject(ctx, models.Project{ID: "p2", Status: models.ProjectStatusCompleted}))
	require.NoError(t, s.Cache.StoreProject(ctx, models.Project{ID: "p3", Status: models.ProjectStatusActive}))

	active, err := s.Cache.GetProjectsByStatus(ctx, models.ProjectStatusActive)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "p1", active[0].ID)
	assert.Equal(t, "p3", active[1].ID)
}

func TestCache_GetInvoicesByProject(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	require.NoError(t, s.Cache.StoreInvoice(ctx, models.Invoice{ID: "inv1", ProjectID: "p1", Amount: 100}))
	require.NoError(t, s.Cache.StoreInvoice(ctx, models.Invoice{ID: "inv2", ProjectID: "p2", Amount: 50}))

	got, err := s.Cache.GetInvoicesByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "inv1", got[0].ID)
	assert.Equal(t, float64(100), got[0].Amount)
}

func TestCache_GetActiveEmployees(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	require.NoError(t, s.Cache.StoreEmployee(ctx, models.Employee{ID: "emp1", Active: true}))
	require.NoError(t, s.Cache.StoreEmployee(ctx, models.Employee{ID: "emp2", Active: false}))

	got, err := s.Cache.GetActiveEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "emp1", got[0].ID)
}

// TestCache_SafeStateSingleton verifies the treasury snapshot always lands
// on the single "current" row regardless of the key supplied by the caller.
func TestCache_SafeStateSingleton(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	require.NoError(t, s.Cache.StoreSafeState(ctx, models.SafeState{Key: "whatever", Balance: 1000}))
	require.NoError(t, s.Cache.StoreSafeState(ctx, models.SafeState{Balance: 2500}))

	count, err := s.Entities.Count(ctx, TableSafeState)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	got, err := s.Cache.GetSafeState(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SafeStateKey, got.Key)
	assert.Equal(t, float64(2500), got.Balance)
}

func TestStorages_Reset_WipesEverything(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	require.NoError(t, s.Cache.StoreProject(ctx, models.Project{ID: "p1"}))
	action := mustAction(t, models.ActionCreateProject, models.Project{ID: "p1"})
	require.NoError(t, s.Actions.Save(ctx, action))
	require.NoError(t, s.Settings.Set(ctx, "last_user", "u1"))

	require.NoError(t, s.Reset(ctx))

	count, err := s.Entities.Count(ctx, TableProjects)
	require.NoError(t, err)
	assert.Zero(t, count)

	pending, err := s.Actions.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	_, err = s.Settings.Get(ctx, "last_user")
	assert.ErrorIs(t, err, ErrSettingNotFound)
}
