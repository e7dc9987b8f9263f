// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Enki Somer

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/enki-somer/qs-sync/internal/config"
	"github.com/enki-somer/qs-sync/models"
)

var (
	// ErrUnauthorized is returned on HTTP 401; the application layer is
	// expected to refresh the token and trigger a new replay pass.
	ErrUnauthorized = errors.New("client unauthorized")
)

type httpAPIClient struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPAPIClient constructs the resty-backed [APIClient] for the remote
// API at cfg.BaseURL. Every request carries cfg.RequestTimeout so a hung
// call fails instead of stalling a replay pass.
func NewHTTPAPIClient(cfg config.ClientAdapter) APIClient {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = config.DefaultRequestTimeout
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.RequestTimeout)

	return &httpAPIClient{client: cli}
}

func (h *httpAPIClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpAPIClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// ── Projects ─────────────────────────────────────────────────────────────────

func (h *httpAPIClient) CreateProject(ctx context.Context, p models.Project) error {
	return h.send(ctx, http.MethodPost, "/projects", p)
}

func (h *httpAPIClient) UpdateProject(ctx context.Context, p models.Project) error {
	return h.send(ctx, http.MethodPut, "/projects/"+p.ID, p)
}

func (h *httpAPIClient) DeleteProject(ctx context.Context, id string) error {
	return h.send(ctx, http.MethodDelete, "/projects/"+id, nil)
}

// ── Invoices ─────────────────────────────────────────────────────────────────

func (h *httpAPIClient) CreateInvoice(ctx context.Context, inv models.Invoice) error {
	return h.send(ctx, http.MethodPost, "/category-invoices", inv)
}

func (h *httpAPIClient) UpdateInvoice(ctx context.Context, inv models.Invoice) error {
	return h.send(ctx, http.MethodPut, "/category-invoices/"+inv.ID, inv)
}

func (h *httpAPIClient) DeleteInvoice(ctx context.Context, id string) error {
	return h.send(ctx, http.MethodDelete, "/category-invoices/"+id, nil)
}

func (h *httpAPIClient) ApproveInvoice(ctx context.Context, payload models.ApproveInvoicePayload) error {
	return h.send(ctx, http.MethodPost, "/category-invoices/"+payload.ID+"/approve", payload)
}

// ── Contractors ──────────────────────────────────────────────────────────────

func (h *httpAPIClient) CreateContractor(ctx context.Context, c models.Contractor) error {
	return h.send(ctx, http.MethodPost, "/contractors", c)
}

func (h *httpAPIClient) UpdateContractor(ctx context.Context, c models.Contractor) error {
	return h.send(ctx, http.MethodPut, "/contractors/"+c.ID, c)
}

func (h *httpAPIClient) DeleteContractor(ctx context.Context, id string) error {
	return h.send(ctx, http.MethodDelete, "/contractors/"+id, nil)
}

// ── Safe / employees / expenses ──────────────────────────────────────────────

func (h *httpAPIClient) FundSafe(ctx context.Context, payload models.FundSafePayload) error {
	return h.send(ctx, http.MethodPost, "/safe/fund", payload)
}

func (h *httpAPIClient) CreateEmployee(ctx context.Context, e models.Employee) error {
	return h.send(ctx, http.MethodPost, "/employees", e)
}

func (h *httpAPIClient) UpdateEmployee(ctx context.Context, e models.Employee) error {
	return h.send(ctx, http.MethodPut, "/employees/"+e.ID, e)
}

func (h *httpAPIClient) CreateExpense(ctx context.Context, e models.Expense) error {
	return h.send(ctx, http.MethodPost, "/expenses", e)
}

func (h *httpAPIClient) UpdateExpense(ctx context.Context, e models.Expense) error {
	return h.send(ctx, http.MethodPut, "/expenses/"+e.ID, e)
}

func (h *httpAPIClient) Health(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get("/health")
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}

	return mapHTTPError(resp)
}

// send issues one JSON request and maps the response status. body may be nil
// for DELETE calls.
func (h *httpAPIClient) send(ctx context.Context, method, path string, body any) error {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	return mapHTTPError(resp)
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
}
