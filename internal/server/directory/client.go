// Package directory is the typed gateway to the remote user-directory, the
// service of record for user profile data. Calls are at-most-once with a
// bounded timeout; this package never retries.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/julinuzzo19/ecommerce-auth-service/internal/common"
)

// secretHeader authenticates this service to the directory's gateway.
const secretHeader = "x-gateway-secret"

// User is the directory's representation of a profile. This service only
// reads it; it never persists user data locally.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// NewUser is the profile payload sent on user creation.
type NewUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Client talks to the remote user-directory over HTTP.
type Client struct {
	baseURL string
	secret  string
	http    *http.Client
}

// NewClient constructs a directory client. timeout bounds every request,
// including connection setup and body read.
func NewClient(baseURL, secret string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		http:    &http.Client{Timeout: timeout},
	}
}

// FindByEmail looks a user up by email. A missing user is a normal outcome
// and returns common.ErrorNotFound; any transport failure or unexpected
// status returns common.ErrDirectoryUnavailable so callers never mistake an
// outage for absence.
func (c *Client) FindByEmail(ctx context.Context, email string) (*User, error) {
	u := c.baseURL + "/users/by-email?email=" + url.QueryEscape(email)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDirectoryUnavailable, err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDirectoryUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, common.ErrorNotFound
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		user := &User{}
		if err := json.NewDecoder(resp.Body).Decode(user); err != nil {
			return nil, fmt.Errorf("%w: decoding response: %v", common.ErrDirectoryUnavailable, err)
		}
		return user, nil
	default:
		return nil, fmt.Errorf("%w: unexpected status %d", common.ErrDirectoryUnavailable, resp.StatusCode)
	}
}

// Create asks the directory to create a new profile and returns the
// directory-assigned user id. Remote validation and conflict rejections are
// surfaced as their typed errors, distinct from transport failures.
func (c *Client) Create(ctx context.Context, profile NewUser) (string, error) {
	body, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("encoding profile: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/users", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrDirectoryUnavailable, err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrDirectoryUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusConflict:
		return "", common.ErrEmailInUse
	case resp.StatusCode == http.StatusBadRequest:
		return "", fmt.Errorf("%w: rejected by directory", common.ErrInvalidInput)
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		created := &User{}
		if err := json.NewDecoder(resp.Body).Decode(created); err != nil {
			return "", fmt.Errorf("%w: decoding response: %v", common.ErrDirectoryUnavailable, err)
		}
		if created.ID == "" {
			return "", fmt.Errorf("%w: response missing user id", common.ErrDirectoryUnavailable)
		}
		return created.ID, nil
	default:
		return "", fmt.Errorf("%w: unexpected status %d", common.ErrDirectoryUnavailable, resp.StatusCode)
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(secretHeader, c.secret)
}
