// Package client is a typed Go client for the dashboard's REST API. Every
// mutation returns a Result; LocalState folds those results into a cached
// list and re-lists from the server when a mutation is refused.
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

	"go.uber.org/zap"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
)

const maxResponseBytes = 4 << 20

type Config struct {
	// BaseURL is the server root, e.g. "http://localhost:8080". The /api/v1
	// prefix is added by the client.
	BaseURL string
	Token   string
	// BrandID is sent as X-Brand-ID on every request when set.
	BrandID    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

type Client struct {
	baseURL    string
	token      string
	brandID    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("bpr client: BaseURL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("bpr client: invalid BaseURL %q: %w", cfg.BaseURL, err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/") + "/api/v1",
		token:      cfg.Token,
		brandID:    cfg.BrandID,
		httpClient: httpClient,
		log:        log,
	}, nil
}

// WithBrand returns a copy of c that acts on brandID.
func (c *Client) WithBrand(brandID string) *Client {
	cp := *c
	cp.brandID = brandID
	return &cp
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("bpr client: encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("bpr client: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.brandID != "" {
		req.Header.Set("X-Brand-ID", c.brandID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bpr client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("bpr client: read response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}
	var envelope struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &envelope) == nil && envelope.Error != "" {
		apiErr.Message = envelope.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	c.log.Debug("api request refused",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("error", apiErr.Message))
	return nil, apiErr
}

// call performs a request and decodes the value stored under key in the
// response envelope.
func call[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any, key string) (T, error) {
	var out T
	data, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return out, err
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return out, fmt.Errorf("bpr client: decode response: %w", err)
	}
	raw, ok := envelope[key]
	if !ok {
		return out, fmt.Errorf("bpr client: response has no %q field", key)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("bpr client: decode %s: %w", key, err)
	}
	return out, nil
}

func mutate[T any](ctx context.Context, c *Client, method, path string, body any, key string) Result[T] {
	v, err := call[T](ctx, c, method, path, nil, body, key)
	if err != nil {
		return Err[T](err)
	}
	return Ok(v)
}

func (c *Client) Me(ctx context.Context) (domain.Actor, error) {
	data, err := c.do(ctx, http.MethodGet, "/users/me", nil, nil)
	if err != nil {
		return domain.Actor{}, err
	}
	var me struct {
		UserID  string `json:"user_id"`
		BrandID string `json:"brand_id"`
		IsAdmin bool   `json:"is_admin"`
	}
	if err := json.Unmarshal(data, &me); err != nil {
		return domain.Actor{}, fmt.Errorf("bpr client: decode response: %w", err)
	}
	return domain.Actor{UserID: me.UserID, BrandID: me.BrandID, IsAdmin: me.IsAdmin}, nil
}

func (c *Client) IncrementPowerMove(ctx context.Context, id string, amount int) Result[domain.PowerMove] {
	body := map[string]any{"id": id, "amount": amount}
	return mutate[domain.PowerMove](ctx, c, http.MethodPost, "/power-moves/increment", body, "power_move")
}

func (c *Client) ToggleCommitment(ctx context.Context, id string) Result[domain.Commitment] {
	return mutate[domain.Commitment](ctx, c, http.MethodPut, "/commitments/toggle", map[string]string{"id": id}, "commitment")
}

func (c *Client) DepartmentScore(ctx context.Context, department string) (domain.DepartmentScore, error) {
	q := url.Values{"department": {department}}
	return call[domain.DepartmentScore](ctx, c, http.MethodGet, "/dashboard/department", q, nil, "score")
}

func (c *Client) CompanyScore(ctx context.Context) (domain.CompanyScore, error) {
	return call[domain.CompanyScore](ctx, c, http.MethodGet, "/dashboard/company", nil, nil, "company")
}

// History lists weekly snapshots for department inside period around anchor.
// A zero anchor means today on the server.
func (c *Client) History(ctx context.Context, department string, period domain.Period, anchor time.Time) ([]domain.WeeklySnapshot, error) {
	q := url.Values{"department": {department}, "period": {string(period)}}
	if !anchor.IsZero() {
		q.Set("anchor", anchor.Format(time.DateOnly))
	}
	return call[[]domain.WeeklySnapshot](ctx, c, http.MethodGet, "/dashboard/history", q, nil, "history")
}
