// Package api is the HTTP client for the external aggregation service.
// The service is opaque to the dashboard: this client only moves query
// parameters out and ordered rows back, it never computes metrics.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"noladash/internal/dashboard/domain"
	"noladash/internal/platform/config"
	"noladash/internal/platform/logger"
	"noladash/internal/risk"

	"github.com/google/uuid"
)

// Config holds the boundary client settings
type Config struct {
	BaseURL *url.URL
	Timeout time.Duration
}

// FromConfig reads the boundary settings from the NOLA_ scope
func FromConfig(cfg config.Conf) Config {
	nc := cfg.Prefix("NOLA_")
	return Config{
		BaseURL: nc.MayURL("API_URL", "http://localhost:8000"),
		Timeout: nc.MayDuration("HTTP_TIMEOUT", 15 * time.Second),
	}
}

// Client implements the dashboard and risk ports over HTTP
type Client struct {
	base *url.URL
	hc   *http.Client
	log  *logger.Logger
}

// compile-time port checks
var (
	_ domain.BoundaryPort = (*Client)(nil)
	_ risk.ReportPort     = (*Client)(nil)
)

// New constructs a boundary client
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		base: cfg.BaseURL,
		hc:   &http.Client{Timeout: timeout},
		log:  logger.Named("api"),
	}
}

// Channels fetches the channel option list
func (c *Client) Channels(ctx context.Context) ([]domain.Option, error) {
	var out []domain.Option
	if err := c.getJSON(ctx, "/api/canais", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Stores fetches the store option list
func (c *Client) Stores(ctx context.Context) ([]domain.Option, error) {
	var out []domain.Option
	if err := c.getJSON(ctx, "/api/lojas", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Weekdays fetches the weekday option list
func (c *Client) Weekdays(ctx context.Context) ([]domain.Option, error) {
	var out []domain.Option
	if err := c.getJSON(ctx, "/api/dias-semana", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Analytics fetches one ordered aggregation result
func (c *Client) Analytics(ctx context.Context, params url.Values) ([]domain.ResultRow, error) {
	var out []domain.ResultRow
	if err := c.getJSON(ctx, "/api/analytics", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExportCSV fetches the CSV representation of the same query
func (c *Client) ExportCSV(ctx context.Context, params url.Values) ([]byte, error) {
	res, err := c.get(ctx, "/api/exportar-csv", params)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close() //nolint:errcheck
	return io.ReadAll(res.Body)
}

// RiskCustomers fetches the fixed at-risk customers report
func (c *Client) RiskCustomers(ctx context.Context) ([]risk.Customer, error) {
	var out []risk.Customer
	if err := c.getJSON(ctx, "/api/clientes-em-risco", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// getJSON issues a GET and decodes the JSON body into out
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	res, err := c.get(ctx, path, params)
	if err != nil {
		return err
	}
	defer res.Body.Close() //nolint:errcheck
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// get issues a request with a fresh request id and checks for a 2xx status.
// Non-2xx bodies are drained and discarded; the boundary is opaque and its
// error detail carries no structure the client can use.
func (c *Client) get(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if params != nil {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)
	req.Header.Set("Accept", "application/json, text/csv")

	log := logger.C(logger.WithRequest(ctx, reqID))
	start := time.Now()
	res, err := c.hc.Do(req)
	if err != nil {
		log.Debug().Str("path", path).Err(err).Msg("boundary request failed")
		return nil, err
	}
	log.Debug().
		Str("path", path).
		Int("status", res.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("boundary request done")

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4096))
		_ = res.Body.Close()
		return nil, fmt.Errorf("GET %s: unexpected status %d", path, res.StatusCode)
	}
	return res, nil
}
