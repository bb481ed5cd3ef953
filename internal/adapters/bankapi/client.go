package bankapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bnema/bank-session-cli/internal/domain"
	"github.com/bnema/bank-session-cli/internal/ports"
)

const maxResponseBytes = 1 << 20

// StatusError reports a non-2xx service response that is not the recoverable
// 403. 403 itself is surfaced as domain.ErrForbidden so callers can branch
// with errors.Is.
type StatusError struct {
	Path   string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Path, e.Status)
}

// Client talks to the remote account service: JSON both ways, and the
// ambient session credential carried by the http.Client's cookie jar.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ ports.AccountService = (*Client)(nil)

func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("service base url is required")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{baseURL: baseURL, http: httpClient}, nil
}

func (c *Client) CreateUser(ctx context.Context, profile domain.NewUserProfile) (domain.User, error) {
	return c.userCall(ctx, http.MethodPost, "/addUser", profile)
}

func (c *Client) SignIn(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	return c.userCall(ctx, http.MethodPost, "/signIn", creds)
}

func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	return c.userCall(ctx, http.MethodGet, "/getUser", nil)
}

func (c *Client) Withdraw(ctx context.Context, user string, sum float64) (domain.User, error) {
	return c.userCall(ctx, http.MethodPost, "/withdraw", ledgerRequest{User: user, Sum: sum})
}

func (c *Client) Deposit(ctx context.Context, user string, sum float64) (domain.User, error) {
	return c.userCall(ctx, http.MethodPost, "/deposit", ledgerRequest{User: user, Sum: sum})
}

// Logout posts the logout and ignores the response entirely; only a
// transport failure is an error.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, "/logout", nil)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
	return nil
}

type ledgerRequest struct {
	User string  `json:"user"`
	Sum  float64 `json:"sum"`
}

func (c *Client) userCall(ctx context.Context, method, path string, body any) (domain.User, error) {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return domain.User{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusForbidden {
		return domain.User{}, fmt.Errorf("%s: %w", path, domain.ErrForbidden)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return domain.User{}, &StatusError{Path: path, Status: resp.StatusCode}
	}

	var user domain.User
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&user); err != nil {
		return domain.User{}, fmt.Errorf("decode %s response: %w", path, err)
	}

	return user, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", path, err)
	}

	return resp, nil
}
