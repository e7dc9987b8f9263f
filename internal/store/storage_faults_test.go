package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enki-somer/qs-sync/internal/logger"
	"github.com/enki-somer/qs-sync/models"
)

// Storage faults (quota exceeded, corruption) must propagate to the caller
// as wrapped errors without any store-level retry. sqlmock stands in for a
// failing SQLite engine.

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &DB{DB: conn, logger: logger.Nop()}, mock
}

func TestActionRepository_Save_PropagatesStorageFault(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewActionRepository(db, logger.Nop())

	mock.ExpectExec("INSERT OR REPLACE INTO pending_actions").
		WillReturnError(errors.New("database or disk is full"))

	action, err := models.NewPendingAction(models.ActionCreateProject, models.Project{ID: "p1"})
	require.NoError(t, err)

	err = repo.Save(context.Background(), action)
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.ErrorContains(t, err, "disk is full")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestActionRepository_GetUnsynced_PropagatesQueryFault(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewActionRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT(.|\n)*FROM pending_actions").
		WillReturnError(errors.New("database disk image is malformed"))

	_, err := repo.GetUnsynced(context.Background())
	assert.ErrorIs(t, err, ErrExecutingQuery)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntityRepository_Count_PropagatesQueryFault(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEntityRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT COUNT").
		WillReturnError(errors.New("database disk image is malformed"))

	_, err := repo.Count(context.Background(), TableProjects)
	assert.ErrorIs(t, err, ErrExecutingQuery)
	require.NoError(t, mock.ExpectationsWereMet())
}
