// Package leadsapi is a typed HTTP client for the leads backend REST API.
//
// The client is stateless with respect to credentials: every authenticated
// call takes the bearer token explicitly, and the caller owns where that
// token is kept (see package session).
package leadsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"leadsweb/models"

	"github.com/google/uuid"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// DefaultTimeout bounds every request unless overridden
const DefaultTimeout = 30 * time.Second

// Client talks to one leads backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (tests, custom transports)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New creates a client for the backend at baseURL (scheme and host, optional path prefix).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root the client was configured with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login posts credentials to /api/auth/login and returns the issued token.
// An OK response without a token is reported as a 401 so callers treat it
// like any other refused login.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}

	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, "login", http.MethodPost, "/api/auth/login", "", body, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", &StatusError{Op: "login", StatusCode: http.StatusUnauthorized, Message: "response missing token"}
	}
	return out.Token, nil
}

// ListLeads fetches one page of leads
func (c *Client) ListLeads(ctx context.Context, token string, page, limit int) (*models.LeadPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	out := &models.LeadPage{}
	if err := c.do(ctx, "list leads", http.MethodGet, "/api/leads?"+q.Encode(), token, nil, out); err != nil {
		return nil, err
	}
	out.Normalize()
	return out, nil
}

// CreateLead posts a new lead and returns the stored record
func (c *Client) CreateLead(ctx context.Context, token string, in models.LeadInput) (*models.Lead, error) {
	out := &models.Lead{}
	if err := c.do(ctx, "create lead", http.MethodPost, "/api/leads", token, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateLead replaces all editable fields of a lead
func (c *Client) UpdateLead(ctx context.Context, token string, id models.LeadID, in models.LeadInput) (*models.Lead, error) {
	out := &models.Lead{}
	if err := c.do(ctx, "update lead", http.MethodPut, leadPath(id), token, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteLead removes a lead
func (c *Client) DeleteLead(ctx context.Context, token string, id models.LeadID) error {
	return c.do(ctx, "delete lead", http.MethodDelete, leadPath(id), token, nil, nil)
}

func leadPath(id models.LeadID) string {
	return "/api/leads/" + url.PathEscape(id.String())
}

// do sends one request and decodes a JSON response into out (when non-nil).
// Non-2xx responses come back as *StatusError, unwrapped; transport and
// decode failures are wrapped with serr.
func (c *Client) do(ctx context.Context, op, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return serr.Wrap(err, "failed to marshal "+op+" request")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return serr.Wrap(err, "failed to create "+op+" request")
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return serr.Wrap(err, op+" request failed")
	}
	defer resp.Body.Close()

	logger.Debug("Backend request",
		"op", op,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody+1))
		return newStatusError(op, resp.StatusCode, data)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return serr.Wrap(err, "failed to decode "+op+" response")
	}
	return nil
}
