// Package client is a thin wrapper over the HTTP API: one method per
// operation, each returning the envelope's data or an error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Dibbotcf/Legacyscript/model"
)

// APIError is returned for non-2xx responses and for envelopes with success=false.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// envelope is the {success, data, error} wrapper every API route returns.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// ShareResult is the outcome of sharing an invoice.
type ShareResult struct {
	ShareID string        `json:"shareId"`
	URL     string        `json:"url"`
	Invoice model.Invoice `json:"invoice"`
}

// LoginResult carries an admin session token.
type LoginResult struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
	Username  string `json:"username"`
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New returns a client for the API rooted at baseURL (including the base
// path, e.g. "https://host/api"). token is sent as a bearer credential and may
// be the public site key or an admin session token.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer credential.
func (c *Client) SetToken(token string) {
	c.token = token
}

// do sends the request and returns the raw response body for 2xx replies.
func (c *Client) do(ctx context.Context, method, path string, in any) ([]byte, error) {
	var reqBody io.Reader
	if in != nil {
		jsonData, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var env envelope
		if json.Unmarshal(body, &env) == nil && env.Error != "" {
			apiErr.Message = env.Error
		} else {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return nil, apiErr
	}

	return body, nil
}

// call runs an enveloped request and decodes data into out (when out is non-nil).
func (c *Client) call(ctx context.Context, method, path string, in, out any) error {
	body, err := c.do(ctx, method, path, in)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("failed to parse response: %w, body: %s", err, string(body))
	}
	if !env.Success {
		return &APIError{StatusCode: http.StatusOK, Message: env.Error}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to parse data: %w", err)
	}
	return nil
}

func escape(segment string) string {
	return url.PathEscape(segment)
}

// Health calls the liveness probe.
func (c *Client) Health(ctx context.Context) error {
	body, err := c.do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}

	var result struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if result.Status != "ok" {
		return fmt.Errorf("unexpected health status %q", result.Status)
	}
	return nil
}

// DBHealth returns the store connectivity report.
func (c *Client) DBHealth(ctx context.Context) (*model.DBHealth, error) {
	body, err := c.do(ctx, http.MethodGet, "/db-health", nil)
	if err != nil {
		return nil, err
	}

	var report model.DBHealth
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &report, nil
}

// Login exchanges admin credentials for a session token. The client keeps
// using its current credential; call SetToken to switch.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var result LoginResult
	err := c.call(ctx, http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListSubmissions(ctx context.Context) ([]model.Submission, error) {
	submissions := []model.Submission{}
	if err := c.call(ctx, http.MethodGet, "/submissions", nil, &submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}

func (c *Client) CreateSubmission(ctx context.Context, sub model.Submission) (*model.Submission, error) {
	var created model.Submission
	if err := c.call(ctx, http.MethodPost, "/submissions", sub, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) DeleteSubmission(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/submissions/"+escape(id), nil, nil)
}

func (c *Client) ListInvoices(ctx context.Context) ([]model.Invoice, error) {
	invoices := []model.Invoice{}
	if err := c.call(ctx, http.MethodGet, "/invoices", nil, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// GetSharedInvoice resolves a public share token.
func (c *Client) GetSharedInvoice(ctx context.Context, shareID string) (*model.Invoice, error) {
	var inv model.Invoice
	if err := c.call(ctx, http.MethodGet, "/invoices/shared/"+escape(shareID), nil, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// SaveInvoice creates or replaces the invoice under inv.ID.
func (c *Client) SaveInvoice(ctx context.Context, inv model.Invoice) (*model.Invoice, error) {
	var saved model.Invoice
	if err := c.call(ctx, http.MethodPost, "/invoices", inv, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// UpdateInvoice replaces the invoice at id.
func (c *Client) UpdateInvoice(ctx context.Context, id string, inv model.Invoice) (*model.Invoice, error) {
	var saved model.Invoice
	if err := c.call(ctx, http.MethodPut, "/invoices/"+escape(id), inv, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) DeleteInvoice(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/invoices/"+escape(id), nil, nil)
}

// ShareInvoice asks the server for the invoice's share token and public link.
func (c *Client) ShareInvoice(ctx context.Context, id string) (*ShareResult, error) {
	var result ShareResult
	if err := c.call(ctx, http.MethodPost, "/invoices/"+escape(id)+"/share", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
