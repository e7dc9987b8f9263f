// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Enki Somer

package connectivity

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/enki-somer/qs-sync/internal/config"
)

//go:generate mockgen -source=prober.go -destination=../mock/mock_prober.go -package=mock

// Prober performs a single reachability check. A nil return means the
// network path to the backend is believed to be usable right now.
type Prober interface {
	Probe(ctx context.Context) error
}

// httpProber issues a lightweight GET against a well-known probe endpoint.
// When the primary probe URL fails it retries once against the backend
// health endpoint with a cache-busting query parameter, so a flaky CDN
// cannot mask a reachable server.
type httpProber struct {
	client    *resty.Client
	probeURL  string
	healthURL string
}

func NewHTTPProber(cfg config.ClientAdapter) Prober {
	cli := resty.New().
		SetTimeout(cfg.ProbeTimeout).
		SetHeader("Cache-Control", "no-cache")

	return &httpProber{
		client:    cli,
		probeURL:  cfg.ProbeURL,
		healthURL: strings.TrimRight(cfg.HealthURL, "/"),
	}
}

func (p *httpProber) Probe(ctx context.Context) error {
	if err := p.get(ctx, p.probeURL); err == nil {
		return nil
	}

	bust := fmt.Sprintf("%s?t=%d", p.healthURL, time.Now().UnixMilli())
	if err := p.get(ctx, bust); err != nil {
		return fmt.Errorf("probe failed: %w", err)
	}

	return nil
}

func (p *httpProber) get(ctx context.Context, url string) error {
	resp, err := p.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return err
	}
	if code := resp.StatusCode(); code >= http.StatusInternalServerError {
		return fmt.Errorf("probe endpoint returned %d", code)
	}
	return nil
}
