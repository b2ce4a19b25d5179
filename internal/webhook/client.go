// Package webhook provides a client for the appointment webhook backend that
// owns appointment persistence, calendar integration, and the scheduling bot.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dentalspace/clinic-admin-api/internal/observability/metrics"
	"github.com/dentalspace/clinic-admin-api/pkg/logging"
)

// Endpoint path suffixes on the webhook base URL.
const (
	pathGetAppointments = "/get-appointments"
	pathToggleBot       = "/toggle-bot"
	pathDashboardAction = "/dashboard-action"
)

// Client is an HTTP client for the appointment webhook backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
	metrics    *metrics.WebhookMetrics
}

// ClientOption is a functional option for configuring the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics enables request instrumentation.
func WithMetrics(m *metrics.WebhookMetrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithTimeout overrides the default per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a new webhook backend client. baseURL is the webhook base
// URL without a trailing slash.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logging.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetAppointments fetches the full appointment list. The response may carry
// the authoritative bot state.
func (c *Client) GetAppointments(ctx context.Context) (*ListResponse, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathGetAppointments, nil)
	if err != nil {
		return nil, fmt.Errorf("webhook: create list request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe("get-appointments", "error", start)
		return nil, fmt.Errorf("webhook: list request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.observe("get-appointments", "error", start)
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("webhook: list failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result ListResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.observe("get-appointments", "error", start)
		return nil, fmt.Errorf("webhook: decode list response: %w", err)
	}

	c.observe("get-appointments", "ok", start)
	c.logger.Debug("appointments fetched", "count", len(result.Data))
	return &result, nil
}

// ToggleBot sets the scheduling bot state on the backend.
func (c *Client) ToggleBot(ctx context.Context, active bool) error {
	start := time.Now()
	if err := c.post(ctx, pathToggleBot, ToggleRequest{Active: active}); err != nil {
		c.observe("toggle-bot", "error", start)
		return err
	}
	c.observe("toggle-bot", "ok", start)
	c.logger.Info("bot state pushed", "active", active)
	return nil
}

// SubmitAction performs a dashboard mutation (create/update/delete/hard_delete).
func (c *Client) SubmitAction(ctx context.Context, action ActionRequest) error {
	start := time.Now()
	if err := c.post(ctx, pathDashboardAction, action); err != nil {
		c.observe("dashboard-action", "error", start)
		return err
	}
	c.observe("dashboard-action", "ok", start)
	c.logger.Info("dashboard action submitted", "action", action.Action, "id", action.Data.ID)
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("webhook: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook: %s failed with status %d: %s", path, resp.StatusCode, string(respBody))
	}

	return nil
}

func (c *Client) observe(endpoint, status string, start time.Time) {
	c.metrics.ObserveRequest(endpoint, status, time.Since(start).Seconds())
}
