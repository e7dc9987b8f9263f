// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Enki Somer

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enki-somer/qs-sync/internal/config"
	"github.com/enki-somer/qs-sync/models"
)

type recordedRequest struct {
	method string
	path   string
	body   []byte
	auth   string
}

// newTestClient spins up an httptest server capturing every request and
// responding with the given status.
func newTestClient(t *testing.T, status int) (APIClient, *[]recordedRequest) {
	t.Helper()

	var recorded []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		recorded = append(recorded, recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			body:   body,
			auth:   r.Header.Get("Authorization"),
		})
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)

	cli := NewHTTPAPIClient(config.ClientAdapter{
		BaseURL:        srv.URL,
		RequestTimeout: 5 * time.Second,
	})

	return cli, &recorded
}

// TestHTTPAPIClient_RouteMapping walks the full action surface and checks
// that each call produces exactly one request with the documented verb and
// path.
func TestHTTPAPIClient_RouteMapping(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		call       func(cli APIClient) error
		wantMethod string
		wantPath   string
	}{
		{
			name:       "create project",
			call:       func(cli APIClient) error { return cli.CreateProject(ctx, models.Project{ID: "p1"}) },
			wantMethod: http.MethodPost,
			wantPath:   "/projects",
		},
		{
			name:       "update project",
			call:       func(cli APIClient) error { return cli.UpdateProject(ctx, models.Project{ID: "p1"}) },
			wantMethod: http.MethodPut,
			wantPath:   "/projects/p1",
		},
		{
			name:       "delete project",
			call:       func(cli APIClient) error { return cli.DeleteProject(ctx, "p1") },
			wantMethod: http.MethodDelete,
			wantPath:   "/projects/p1",
		},
		{
			name:       "create invoice",
			call:       func(cli APIClient) error { return cli.CreateInvoice(ctx, models.Invoice{ID: "inv1"}) },
			wantMethod: http.MethodPost,
			wantPath:   "/category-invoices",
		},
		{
			name:       "update invoice",
			call:       func(cli APIClient) error { return cli.UpdateInvoice(ctx, models.Invoice{ID: "inv1"}) },
			wantMethod: http.MethodPut,
			wantPath:   "/category-invoices/inv1",
		},
		{
			name:       "delete invoice",
			call:       func(cli APIClient) error { return cli.DeleteInvoice(ctx, "inv1") },
			wantMethod: http.MethodDelete,
			wantPath:   "/category-invoices/inv1",
		},
		{
			name: "approve invoice",
			call: func(cli APIClient) error {
				return cli.ApproveInvoice(ctx, models.ApproveInvoicePayload{ID: "inv1"})
			},
			wantMethod: http.MethodPost,
			wantPath:   "/category-invoices/inv1/approve",
		},
		{
			name:       "create contractor",
			call:       func(cli APIClient) error { return cli.CreateContractor(ctx, models.Contractor{ID: "c1"}) },
			wantMethod: http.MethodPost,
			wantPath:   "/contractors",
		},
		{
			name:       "update contractor",
			call:       func(cli APIClient) error { return cli.UpdateContractor(ctx, models.Contractor{ID: "c1"}) },
			wantMethod: http.MethodPut,
			wantPath:   "/contractors/c1",
		},
		{
			name:       "delete contractor",
			call:       func(cli APIClient) error { return cli.DeleteContractor(ctx, "c1") },
			wantMethod: http.MethodDelete,
			wantPath:   "/contractors/c1",
		},
		{
			name:       "fund safe",
			call:       func(cli APIClient) error { return cli.FundSafe(ctx, models.FundSafePayload{Amount: 100}) },
			wantMethod: http.MethodPost,
			wantPath:   "/safe/fund",
		},
		{
			name:       "create employee",
			call:       func(cli APIClient) error { return cli.CreateEmployee(ctx, models.Employee{ID: "emp1"}) },
			wantMethod: http.MethodPost,
			wantPath:   "/employees",
		},
		{
			name:       "update employee",
			call:       func(cli APIClient) error { return cli.UpdateEmployee(ctx, models.Employee{ID: "emp1"}) },
			wantMethod: http.MethodPut,
			wantPath:   "/employees/emp1",
		},
		{
			name:       "create expense",
			call:       func(cli APIClient) error { return cli.CreateExpense(ctx, models.Expense{ID: "e1"}) },
			wantMethod: http.MethodPost,
			wantPath:   "/expenses",
		},
		{
			name:       "update expense",
			call:       func(cli APIClient) error { return cli.UpdateExpense(ctx, models.Expense{ID: "e1"}) },
			wantMethod: http.MethodPut,
			wantPath:   "/expenses/e1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, recorded := newTestClient(t, http.StatusOK)

			require.NoError(t, tt.call(cli))

			require.Len(t, *recorded, 1)
			got := (*recorded)[0]
			assert.Equal(t, tt.wantMethod, got.method)
			assert.Equal(t, tt.wantPath, got.path)
		})
	}
}

func TestHTTPAPIClient_SendsJSONBody(t *testing.T) {
	cli, recorded := newTestClient(t, http.StatusCreated)

	inv := models.Invoice{ID: "inv1", ProjectID: "p1", Amount: 250.5}
	require.NoError(t, cli.CreateInvoice(context.Background(), inv))

	require.Len(t, *recorded, 1)
	var got models.Invoice
	require.NoError(t, json.Unmarshal((*recorded)[0].body, &got))
	assert.Equal(t, inv.ID, got.ID)
	assert.Equal(t, inv.Amount, got.Amount)
}

func TestHTTPAPIClient_AttachesBearerToken(t *testing.T) {
	cli, recorded := newTestClient(t, http.StatusOK)
	cli.SetToken("  token-123  ")

	require.NoError(t, cli.FundSafe(context.Background(), models.FundSafePayload{Amount: 1}))

	require.Len(t, *recorded, 1)
	assert.Equal(t, "Bearer token-123", (*recorded)[0].auth)
}

func TestHTTPAPIClient_MapsServerErrors(t *testing.T) {
	t.Run("non-2xx becomes error with body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "invoice already approved", http.StatusConflict)
		}))
		defer srv.Close()

		cli := NewHTTPAPIClient(config.ClientAdapter{BaseURL: srv.URL, RequestTimeout: 5 * time.Second})
		err := cli.ApproveInvoice(context.Background(), models.ApproveInvoicePayload{ID: "inv1"})
		require.Error(t, err)
		assert.ErrorContains(t, err, "http 409")
		assert.ErrorContains(t, err, "invoice already approved")
	})

	t.Run("401 maps to ErrUnauthorized", func(t *testing.T) {
		cli, _ := newTestClient(t, http.StatusUnauthorized)

		err := cli.DeleteProject(context.Background(), "p1")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestHTTPAPIClient_Health(t *testing.T) {
	cli, recorded := newTestClient(t, http.StatusOK)

	require.NoError(t, cli.Health(context.Background()))

	require.Len(t, *recorded, 1)
	assert.Equal(t, http.MethodGet, (*recorded)[0].method)
	assert.Equal(t, "/health", (*recorded)[0].path)
}
