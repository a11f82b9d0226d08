package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/ebalakin/cartsync/internal/api"
	"github.com/ebalakin/cartsync/internal/common"
)

// HTTPClient talks JSON over HTTP to the cartsync server. The access token
// obtained by Login is attached to every subsequent request.
type HTTPClient struct {
	baseURL     string
	client      *http.Client
	accessToken string
}

// NewHTTPClient returns a client for the given base URL, e.g.
// "http://127.0.0.1:8080".
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set(common.AuthHeaderName, "Bearer "+c.accessToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		return common.ErrAccessDenied
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %s", common.ErrUnavailable, resp.Status)
	case resp.StatusCode >= 400:
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request failed: %s: %s", resp.Status, string(b))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
		}
	}
	return nil
}

// Register creates a new account.
func (c *HTTPClient) Register(ctx context.Context, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/register", api.RegisterRequest{Email: email, Password: password}, nil)
}

// Login exchanges credentials for an access token and remembers it for
// subsequent calls.
func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	var resp api.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", api.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return err
	}
	c.accessToken = resp.AccessToken
	return nil
}

// CreateList creates a list owned by the authenticated caller.
func (c *HTTPClient) CreateList(ctx context.Context, name string) (string, error) {
	var resp api.CreateListResponse
	if err := c.do(ctx, http.MethodPost, "/api/lists", api.CreateListRequest{Name: name}, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// ShareList grants another account collaborator access to a list.
func (c *HTTPClient) ShareList(ctx context.Context, listID, email string) error {
	return c.do(ctx, http.MethodPost, "/api/lists/"+listID+"/share", api.ShareListRequest{Email: email}, nil)
}

// Sync posts one batched request for a list. Connection-level failures are
// retried a few times with fibonacci backoff inside the call; anything still
// failing surfaces as common.ErrUnavailable and the caller's queue stays
// intact for the next cycle. Retransmission is safe: the server applies the
// batch as idempotent upserts by id.
func (c *HTTPClient) Sync(ctx context.Context, listID string, req *api.SyncRequest) (*api.SyncResponse, error) {
	var resp api.SyncResponse

	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp = api.SyncResponse{}
		err := c.do(ctx, http.MethodPost, "/api/lists/"+listID+"/sync", req, &resp)
		if errors.Is(err, common.ErrUnavailable) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Ping checks server liveness.
func (c *HTTPClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return c.do(ctx, http.MethodGet, "/api/ping", nil, nil)
}

// Close releases client resources.
func (c *HTTPClient) Close() error {
	c.client.CloseIdleConnections()
	return nil
}
