// ABOUTME: HTTP client for the tenant pool sizer API
// ABOUTME: Wraps API calls with proper error handling for CLI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/markalston/tenant-pool-sizer/backend/models"
)

// Client is the API client for the pool sizer backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError is a non-2xx response from the backend
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend error: %s", e.Message)
}

// Rejected reports whether the backend refused the input itself, as opposed
// to failing to process it.
func (e *APIError) Rejected() bool {
	return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
}

// IsRejected reports whether err is an input rejection from the backend.
func IsRejected(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Rejected()
}

// Health calls GET /api/v1/health
func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	var health models.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Bytes calls POST /api/v1/units/bytes
func (c *Client) Bytes(ctx context.Context, req models.BytesRequest) (uint64, error) {
	var resp models.BytesResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/units/bytes", req, &resp); err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(resp.Bytes, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid response from backend: %w", err)
	}
	return n, nil
}

// Human calls POST /api/v1/units/human
func (c *Client) Human(ctx context.Context, req models.HumanRequest) (string, error) {
	var resp models.HumanResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/units/human", req, &resp); err != nil {
		return "", err
	}
	return resp.Human, nil
}

// SizeMemory calls POST /api/v1/memory/sizing
func (c *Client) SizeMemory(ctx context.Context, req models.MemorySizingRequest) (models.MemorySizing, error) {
	var resp models.MemorySizingResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/memory/sizing", req, &resp); err != nil {
		return models.MemorySizing{}, err
	}
	return models.MemorySizing{Request: resp.Request, Limit: resp.Limit}, nil
}

// Distribute calls POST /api/v1/pool/distribution
func (c *Client) Distribute(ctx context.Context, req models.DistributionRequest) (models.StorageDistribution, error) {
	var resp models.DistributionResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/pool/distribution", req, &resp); err != nil {
		return models.StorageDistribution{}, err
	}
	return resp.StorageDistribution, nil
}

// ErasureCode calls POST /api/v1/pool/erasure-code
func (c *Client) ErasureCode(ctx context.Context, req models.ErasureCodeRequest) (models.ErasureCodeResponse, error) {
	var resp models.ErasureCodeResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/pool/erasure-code", req, &resp); err != nil {
		return models.ErasureCodeResponse{}, err
	}
	return resp, nil
}

// ParityLevels calls GET /api/v1/pool/parity
func (c *Client) ParityLevels(ctx context.Context, nodes, drivesPerNode int) ([]string, error) {
	query := url.Values{}
	query.Set("nodes", strconv.Itoa(nodes))
	query.Set("drives_per_node", strconv.Itoa(drivesPerNode))

	var resp models.ParityResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/pool/parity?"+query.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.ParityLevels, nil
}

// Plan calls POST /api/v1/pool/plan
func (c *Client) Plan(ctx context.Context, req models.PlanRequest) (models.PlanResponse, error) {
	var resp models.PlanResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/pool/plan", req, &resp); err != nil {
		return models.PlanResponse{}, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal input: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("request canceled")
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses. Sizing endpoints put a
// message string in "error"; the erasure-code endpoint uses a 0/1 flag.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var errResp struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		return apiErr
	}

	var message string
	if err := json.Unmarshal(errResp.Error, &message); err == nil {
		apiErr.Message = message
	} else if string(errResp.Error) == "1" {
		apiErr.Message = "no erasure code parity levels available"
	}
	return apiErr
}
